package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supportarchive/internal/infrastructure/repository"
	"supportarchive/internal/shared/logger"
	"supportarchive/internal/shared/utils"
)

// AnalyticsHandler serves the dashboard aggregates.
type AnalyticsHandler struct {
	repo   *repository.AnalyticsRepository
	logger logger.Interface
}

func NewAnalyticsHandler(repo *repository.AnalyticsRepository, logger logger.Interface) *AnalyticsHandler {
	return &AnalyticsHandler{
		repo:   repo,
		logger: logger,
	}
}

// Summary handles GET /analytics/summary
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	summary, err := h.repo.Summary(c.Request.Context(), c.Query("range"))
	if err != nil {
		h.logger.Errorw("failed to compute analytics summary", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", summary)
}

// TicketsByCustomer handles GET /analytics/tickets-by-customer
func (h *AnalyticsHandler) TicketsByCustomer(c *gin.Context) {
	limit := utils.ParseQueryInt(c, "limit", 0)

	counts, err := h.repo.TicketsByCustomer(c.Request.Context(), c.Query("range"), limit)
	if err != nil {
		h.logger.Errorw("failed to compute tickets by customer", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", counts)
}

// CategoryBreakdown handles GET /analytics/category-breakdown
func (h *AnalyticsHandler) CategoryBreakdown(c *gin.Context) {
	counts, err := h.repo.CategoryBreakdown(c.Request.Context(), c.Query("range"), c.Query("customer"))
	if err != nil {
		h.logger.Errorw("failed to compute category breakdown", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", counts)
}

// SourceDistribution handles GET /analytics/source-distribution
func (h *AnalyticsHandler) SourceDistribution(c *gin.Context) {
	counts, err := h.repo.SourceDistribution(c.Request.Context(), c.Query("range"))
	if err != nil {
		h.logger.Errorw("failed to compute source distribution", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", counts)
}
