package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"supportarchive/internal/infrastructure/persistence/models"
	"supportarchive/internal/infrastructure/repository"
	"supportarchive/internal/shared/logger"
	"supportarchive/internal/shared/services/render"
	"supportarchive/internal/shared/utils"
)

// HelpHandler serves the help-center views.
type HelpHandler struct {
	repo     *repository.HelpRepository
	renderer render.RenderService
	logger   logger.Interface
}

func NewHelpHandler(repo *repository.HelpRepository, renderer render.RenderService, logger logger.Interface) *HelpHandler {
	return &HelpHandler{
		repo:     repo,
		renderer: renderer,
		logger:   logger,
	}
}

type helpArticleDTO struct {
	*models.HelpArticleModel
	Slug string                 `json:"slug"`
	Prev *repository.ArticleRef `json:"prev"`
	Next *repository.ArticleRef `json:"next"`
}

// List handles GET /help/articles
func (h *HelpHandler) List(c *gin.Context) {
	params := repository.HelpListParams{
		Search: strings.TrimSpace(c.Query("q")),
		SortBy: c.Query("sort_by"),
		Order:  c.Query("order"),
	}

	articles, total, err := h.repo.List(c.Request.Context(), params)
	if err != nil {
		h.logger.Errorw("failed to list help articles", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"items": articles,
		"total": total,
	})
}

// Detail handles GET /help/articles/:id
func (h *HelpHandler) Detail(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "article")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.respondWithArticle(c, id)
}

// DetailBySlug handles GET /help/a/*slug. Only the numeric suffix
// matters; the decorative path may be stale.
func (h *HelpHandler) DetailBySlug(c *gin.Context) {
	slug := strings.TrimPrefix(c.Param("slug"), "/")
	id, err := utils.ParseSlugID(slug)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	h.respondWithArticle(c, id)
}

func (h *HelpHandler) respondWithArticle(c *gin.Context, id int64) {
	article, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	article.Body = h.renderer.ArticleHTML(article.Body)

	prev, next, err := h.repo.Neighbors(c.Request.Context(), id)
	if err != nil {
		h.logger.Errorw("failed to load article neighbors", "article_id", id, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", helpArticleDTO{
		HelpArticleModel: article,
		Slug:             utils.ArticleSlug(article.Breadcrumbs, article.ID),
		Prev:             prev,
		Next:             next,
	})
}

// Navigation handles GET /help/navigation
func (h *HelpHandler) Navigation(c *gin.Context) {
	groups, err := h.repo.Navigation(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to build help navigation", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", groups)
}

// Search handles GET /help/search
func (h *HelpHandler) Search(c *gin.Context) {
	results, err := h.repo.Search(c.Request.Context(), strings.TrimSpace(c.Query("q")))
	if err != nil {
		h.logger.Errorw("help search failed", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", results)
}
