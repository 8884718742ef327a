package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"supportarchive/internal/infrastructure/persistence/models"
	apperrors "supportarchive/internal/shared/errors"
)

func TestTicketFindByNumber(t *testing.T) {
	repo := NewTicketRepository(setupStores(t))

	ticket, err := repo.FindByNumber(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Printer down", ticket.TicketName)
	assert.Equal(t, "Acme Labs (1001)", ticket.Customers)
}

func TestTicketFindByNumberNotFound(t *testing.T) {
	repo := NewTicketRepository(setupStores(t))

	_, err := repo.FindByNumber(context.Background(), 99999)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestTicketFindMessagesChronological(t *testing.T) {
	db := setupStores(t)
	require.NoError(t, db.Create(&models.MessageModel{
		TicketNumber: 1, ActionCreatorName: "Nadia Clark", ActionType: "Reply",
		DateActionCreated: ptr("2024-02-28 10:30:00"),
		ActionDescription: "Looking into it", CleanedDescription: "Looking into it",
		Role: "Agent",
	}).Error)
	repo := NewTicketRepository(db)

	messages, err := repo.FindMessages(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "Description", messages[0].ActionType)
	assert.Equal(t, "Reply", messages[1].ActionType)
}

func TestTicketFindMessagesEmpty(t *testing.T) {
	repo := NewTicketRepository(setupStores(t))

	messages, err := repo.FindMessages(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, messages)
}
