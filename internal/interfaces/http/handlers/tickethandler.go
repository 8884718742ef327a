package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"supportarchive/internal/browse"
	"supportarchive/internal/infrastructure/persistence/models"
	"supportarchive/internal/infrastructure/repository"
	"supportarchive/internal/shared/logger"
	"supportarchive/internal/shared/services/render"
	"supportarchive/internal/shared/utils"
)

// TicketHandler serves single-ticket detail views.
type TicketHandler struct {
	repo     *repository.TicketRepository
	renderer render.RenderService
	logger   logger.Interface
}

func NewTicketHandler(repo *repository.TicketRepository, renderer render.RenderService, logger logger.Interface) *TicketHandler {
	return &TicketHandler{
		repo:     repo,
		renderer: renderer,
		logger:   logger,
	}
}

type ticketMessageDTO struct {
	ID                uint    `json:"id"`
	ActionCreatorName string  `json:"action_creator_name"`
	ActionType        string  `json:"action_type"`
	Role              string  `json:"role"`
	DateActionCreated *string `json:"date_action_created"`
	render.MessageView
}

type ticketDetailDTO struct {
	Ticket         *models.TicketModel `json:"ticket"`
	StatusCategory string              `json:"status_category"`
	Messages       []ticketMessageDTO  `json:"messages"`
}

// Detail handles GET /tickets/:number
func (h *TicketHandler) Detail(c *gin.Context) {
	number, err := utils.ParseIDParam(c, "number", "ticket")
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	ticket, err := h.repo.FindByNumber(c.Request.Context(), number)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	messages, err := h.repo.FindMessages(c.Request.Context(), number)
	if err != nil {
		h.logger.Errorw("failed to load ticket messages", "ticket_number", number, "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	detail := ticketDetailDTO{
		Ticket:         ticket,
		StatusCategory: browse.StatusCategory(ticket.Status),
		Messages:       make([]ticketMessageDTO, 0, len(messages)),
	}
	for _, m := range messages {
		detail.Messages = append(detail.Messages, ticketMessageDTO{
			ID:                m.ID,
			ActionCreatorName: m.ActionCreatorName,
			ActionType:        m.ActionType,
			Role:              m.Role,
			DateActionCreated: m.DateActionCreated,
			MessageView:       h.renderer.Message(m.CleanedDescription),
		})
	}

	utils.SuccessResponse(c, http.StatusOK, "", detail)
}
