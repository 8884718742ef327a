package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "supportarchive/internal/shared/errors"
)

func TestKBListParamsNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   KBListParams
		want KBListParams
	}{
		{
			name: "defaults",
			in:   KBListParams{},
			want: KBListParams{SortBy: "date_modified", Order: "desc", Limit: 50},
		},
		{
			name: "unlisted sort field rejected",
			in:   KBListParams{SortBy: "body; DROP TABLE", Order: "asc", Limit: 10},
			want: KBListParams{SortBy: "date_modified", Order: "asc", Limit: 10},
		},
		{
			name: "limit capped",
			in:   KBListParams{SortBy: "title", Order: "asc", Limit: 500, Offset: -3},
			want: KBListParams{SortBy: "title", Order: "asc", Limit: 50},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.normalize()
			assert.Equal(t, tt.want, tt.in)
		})
	}
}

func TestKBListWithoutSearch(t *testing.T) {
	repo := NewKBRepository(setupStores(t), true)

	articles, total, err := repo.List(context.Background(), KBListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, articles, 1)
	assert.Equal(t, "Globex onboarding checklist", articles[0].Title)
}

func TestKBListCategoryFilter(t *testing.T) {
	repo := NewKBRepository(setupStores(t), true)

	articles, total, err := repo.List(context.Background(), KBListParams{Category: "Accounts"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, articles, 1)

	articles, _, err = repo.List(context.Background(), KBListParams{Category: "Networking"})
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestKBFindByID(t *testing.T) {
	repo := NewKBRepository(setupStores(t), true)

	article, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Nadia Clark", article.Author)

	_, err = repo.FindByID(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestKBCategories(t *testing.T) {
	repo := NewKBRepository(setupStores(t), true)

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Accounts"}, categories)
}

func TestKBDegradesWhenNotAttached(t *testing.T) {
	repo := NewKBRepository(setupStores(t), false)

	articles, total, err := repo.List(context.Background(), KBListParams{})
	require.NoError(t, err)
	assert.Empty(t, articles)
	assert.Zero(t, total)

	categories, err := repo.Categories(context.Background())
	require.NoError(t, err)
	assert.Empty(t, categories)

	_, err = repo.FindByID(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailableError(err))
}
