package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"supportarchive/internal/browse"
	"supportarchive/internal/infrastructure/repository"
	"supportarchive/internal/shared/errors"
	"supportarchive/internal/shared/logger"
	"supportarchive/internal/shared/utils"
)

// BrowseHandler serves the unified ticket + knowledge-base browse view.
type BrowseHandler struct {
	repo   *repository.BrowseRepository
	logger logger.Interface
}

func NewBrowseHandler(repo *repository.BrowseRepository, logger logger.Interface) *BrowseHandler {
	return &BrowseHandler{
		repo:   repo,
		logger: logger,
	}
}

// List handles GET /browse
func (h *BrowseHandler) List(c *gin.Context) {
	filters, err := parseFilters(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	pagination := utils.ParsePagination(c)

	result, err := h.repo.Browse(c.Request.Context(), filters, pagination.Page, pagination.PageSize)
	if err != nil {
		h.logger.Errorw("failed to browse archive", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// Facets handles GET /browse/facets
func (h *BrowseHandler) Facets(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", browse.Facets)
}

// parseFilters maps query parameters onto the browse filter set. Facet
// parameters repeat for multi-select; date windows arrive as a preset
// name or a custom start/end pair.
func parseFilters(c *gin.Context) (browse.Filters, error) {
	filters := browse.Filters{
		Search:        strings.TrimSpace(c.Query("q")),
		Agents:        utils.QueryList(c, "agent"),
		Statuses:      utils.QueryList(c, "status"),
		Categories:    utils.QueryList(c, "category"),
		Subcategories: utils.QueryList(c, "subcategory"),
		Customers:     utils.QueryList(c, "customer"),
	}

	created, err := parseWindow(c, "created")
	if err != nil {
		return browse.Filters{}, err
	}
	filters.Created = created

	modified, err := parseWindow(c, "modified")
	if err != nil {
		return browse.Filters{}, err
	}
	filters.Modified = modified

	return filters, nil
}

func parseWindow(c *gin.Context, facet string) (browse.DateWindow, error) {
	preset := c.Query(facet)
	start := c.Query(facet + "_start")
	end := c.Query(facet + "_end")

	if start != "" || end != "" {
		return browse.DateWindow{Preset: browse.WindowCustom, Start: start, End: end}, nil
	}
	if preset == "" {
		return browse.DateWindow{}, nil
	}

	switch preset {
	case browse.WindowToday, browse.Window7Days, browse.Window30Days,
		browse.WindowThisWeek, browse.WindowThisMonth:
		return browse.DateWindow{Preset: preset}, nil
	}
	return browse.DateWindow{}, errors.NewValidationError("unknown " + facet + " window " + preset)
}
