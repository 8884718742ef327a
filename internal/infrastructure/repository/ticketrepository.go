package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"supportarchive/internal/infrastructure/persistence/models"
	apperrors "supportarchive/internal/shared/errors"
)

// TicketRepository reads ticket summaries and their ordered messages
// from the archive store.
type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// FindByNumber returns one ticket summary row.
func (r *TicketRepository) FindByNumber(ctx context.Context, number int64) (*models.TicketModel, error) {
	var ticket models.TicketModel
	err := r.db.WithContext(ctx).
		Where("ticket_number = ?", number).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("ticket %d not found", number))
		}
		return nil, fmt.Errorf("failed to find ticket %d: %w", number, err)
	}
	return &ticket, nil
}

// FindMessages returns a ticket's visible actions in chronological
// order.
func (r *TicketRepository) FindMessages(ctx context.Context, number int64) ([]models.MessageModel, error) {
	var messages []models.MessageModel
	err := r.db.WithContext(ctx).
		Where("ticket_number = ?", number).
		Order("date_action_created ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load messages for ticket %d: %w", number, err)
	}
	return messages, nil
}
