package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"supportarchive/internal/infrastructure/database"
	"supportarchive/internal/infrastructure/persistence/models"
	apperrors "supportarchive/internal/shared/errors"
)

func setupHelpStore(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenReadWrite(filepath.Join(t.TempDir(), "help_articles.db"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.HelpArticleModel{}))

	articles := []models.HelpArticleModel{
		{Title: "Getting Started", Breadcrumbs: "Support Home > Basics > Getting Started", Body: "<p>Welcome.</p>", BodyText: "Welcome."},
		{Title: "Managing Cores", Breadcrumbs: "Support Home > Core Facilities > Managing Cores", Body: "<p>Cores.</p>", BodyText: "Cores."},
		{Title: "Billing Setup", Breadcrumbs: "Support Home > Basics > Billing Setup", Body: "<p>Billing.</p>", BodyText: "Billing."},
		{Title: "Orphan Page", Breadcrumbs: "Orphan Page", Body: "<p>Lost.</p>", BodyText: "Lost."},
	}
	require.NoError(t, db.Create(&articles).Error)
	return db
}

func TestHelpListParamsNormalize(t *testing.T) {
	p := HelpListParams{SortBy: "body", Order: "sideways"}
	p.normalize()
	assert.Equal(t, "id", p.SortBy)
	assert.Equal(t, "asc", p.Order)

	p = HelpListParams{SortBy: "breadcrumbs", Order: "desc"}
	p.normalize()
	assert.Equal(t, "breadcrumbs", p.SortBy)
	assert.Equal(t, "desc", p.Order)
}

func TestCategoryFromBreadcrumbs(t *testing.T) {
	tests := []struct {
		name        string
		breadcrumbs string
		want        string
	}{
		{"segment after root", "Support Home > Core Facilities > Managing Cores", "Core Facilities"},
		{"two segments", "Support Home > Basics", "Basics"},
		{"single segment", "Orphan Page", ""},
		{"empty", "", ""},
		{"extra whitespace", "Support Home >  Billing  > Refunds", "Billing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryFromBreadcrumbs(tt.breadcrumbs))
		})
	}
}

func TestHelpListSortedByTitle(t *testing.T) {
	repo := NewHelpRepository(setupHelpStore(t))

	articles, total, err := repo.List(context.Background(), HelpListParams{SortBy: "title", Order: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	require.Len(t, articles, 4)
	assert.Equal(t, "Billing Setup", articles[0].Title)
	assert.Equal(t, "Orphan Page", articles[3].Title)
}

func TestHelpNavigationGroupsByCategory(t *testing.T) {
	repo := NewHelpRepository(setupHelpStore(t))

	groups, err := repo.Navigation(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 3)

	// Sections are title-sorted; articles without a recognizable
	// category land in General.
	assert.Equal(t, "Basics", groups[0].Title)
	assert.Len(t, groups[0].Links, 2)
	assert.Equal(t, "Core Facilities", groups[1].Title)
	assert.Equal(t, "General", groups[2].Title)
	require.Len(t, groups[2].Links, 1)
	assert.Equal(t, "Orphan Page", groups[2].Links[0].Title)
}

func TestHelpNeighbors(t *testing.T) {
	repo := NewHelpRepository(setupHelpStore(t))

	prev, next, err := repo.Neighbors(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, prev)
	require.NotNil(t, next)
	assert.Equal(t, int64(1), prev.ID)
	assert.Equal(t, int64(3), next.ID)

	prev, _, err = repo.Neighbors(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, prev)

	_, next, err = repo.Neighbors(context.Background(), 4)
	require.NoError(t, err)
	assert.Nil(t, next)
}

func TestHelpFindByID(t *testing.T) {
	repo := NewHelpRepository(setupHelpStore(t))

	article, err := repo.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Managing Cores", article.Title)

	_, err = repo.FindByID(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestHelpDegradesWithoutStore(t *testing.T) {
	repo := NewHelpRepository(nil)

	articles, total, err := repo.List(context.Background(), HelpListParams{})
	require.NoError(t, err)
	assert.Empty(t, articles)
	assert.Zero(t, total)

	groups, err := repo.Navigation(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)

	_, err = repo.FindByID(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailableError(err))
}
