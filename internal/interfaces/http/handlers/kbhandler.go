package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"supportarchive/internal/infrastructure/repository"
	"supportarchive/internal/shared/logger"
	"supportarchive/internal/shared/services/render"
	"supportarchive/internal/shared/utils"
)

// KBHandler serves the standalone knowledge-base views.
type KBHandler struct {
	repo     *repository.KBRepository
	renderer render.RenderService
	logger   logger.Interface
}

func NewKBHandler(repo *repository.KBRepository, renderer render.RenderService, logger logger.Interface) *KBHandler {
	return &KBHandler{
		repo:     repo,
		renderer: renderer,
		logger:   logger,
	}
}

// List handles GET /kb/articles
func (h *KBHandler) List(c *gin.Context) {
	params := repository.KBListParams{
		Search:   strings.TrimSpace(c.Query("q")),
		Category: c.Query("category"),
		SortBy:   c.Query("sort_by"),
		Order:    c.Query("order"),
		Limit:    utils.ParseQueryInt(c, "limit", 0),
		Offset:   utils.ParseQueryInt(c, "offset", 0),
	}

	articles, total, err := h.repo.List(c.Request.Context(), params)
	if err != nil {
		h.logger.Errorw("failed to list kb articles", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"items": articles,
		"total": total,
	})
}

// Detail handles GET /kb/articles/:id
func (h *KBHandler) Detail(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id", "article")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	article, err := h.repo.FindByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	article.Body = h.renderer.ArticleHTML(article.Body)

	utils.SuccessResponse(c, http.StatusOK, "", article)
}

// Categories handles GET /kb/categories
func (h *KBHandler) Categories(c *gin.Context) {
	categories, err := h.repo.Categories(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to list kb categories", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", categories)
}
