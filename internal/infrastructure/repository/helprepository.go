package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"supportarchive/internal/infrastructure/persistence/models"
	"supportarchive/internal/shared/constants"
	apperrors "supportarchive/internal/shared/errors"
	appLogger "supportarchive/internal/shared/logger"
)

var allowedHelpSortFields = map[string]bool{
	"id":          true,
	"title":       true,
	"breadcrumbs": true,
}

// HelpListParams are the help-article list options.
type HelpListParams struct {
	Search string
	SortBy string
	Order  string
}

func (p *HelpListParams) normalize() {
	if !allowedHelpSortFields[p.SortBy] {
		p.SortBy = "id"
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "asc"
	}
}

// NavLink is one article entry in the navigation tree.
type NavLink struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// NavGroup is one top-level navigation section, keyed by the first
// breadcrumb segment after the fixed root label.
type NavGroup struct {
	Title string    `json:"title"`
	Links []NavLink `json:"links"`
}

// ArticleRef is a compact prev/next or search-hit reference.
type ArticleRef struct {
	ID          int64  `gorm:"column:id" json:"id"`
	Title       string `gorm:"column:title" json:"title"`
	Breadcrumbs string `gorm:"column:breadcrumbs" json:"breadcrumbs"`
}

// HelpRepository serves the help-center views from their own store.
// A nil connection (store absent at startup) degrades every query to
// an empty result; detail lookups report unavailability.
type HelpRepository struct {
	db *gorm.DB
}

func NewHelpRepository(db *gorm.DB) *HelpRepository {
	return &HelpRepository{db: db}
}

func (r *HelpRepository) available() bool {
	return r.db != nil
}

// List returns all articles matching the search, relevance-ordered via
// FTS when searching and sorted by the whitelisted field otherwise.
func (r *HelpRepository) List(ctx context.Context, params HelpListParams) ([]models.HelpArticleModel, int64, error) {
	if !r.available() {
		return nil, 0, nil
	}
	params.normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.HelpArticleModel{}).Count(&total).Error; err != nil {
		appLogger.Warn("help count failed, degrading to empty", "error", err)
		return nil, 0, nil
	}

	var (
		sql  string
		args []interface{}
	)
	if params.Search != "" {
		sql = `
			SELECT help_articles.* FROM help_articles
			INNER JOIN help_articles_fts ON help_articles.id = help_articles_fts.rowid
			WHERE help_articles_fts MATCH ?`
		args = append(args, params.Search)
	} else {
		sql = "SELECT * FROM help_articles"
	}
	sql += fmt.Sprintf(" ORDER BY %s %s", params.SortBy, strings.ToUpper(params.Order))

	var articles []models.HelpArticleModel
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&articles).Error; err != nil {
		appLogger.Warn("help list query failed, degrading to empty", "error", err)
		return nil, 0, nil
	}
	return articles, total, nil
}

// FindByID returns one article.
func (r *HelpRepository) FindByID(ctx context.Context, id int64) (*models.HelpArticleModel, error) {
	if !r.available() {
		return nil, apperrors.NewUnavailableError("help store not available")
	}

	var article models.HelpArticleModel
	err := r.db.WithContext(ctx).First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("article %d not found", id))
		}
		return nil, fmt.Errorf("failed to find help article %d: %w", id, err)
	}
	return &article, nil
}

// Navigation groups every article by the breadcrumb segment following
// the root label, with a "General" fallback, sections sorted by title.
func (r *HelpRepository) Navigation(ctx context.Context) ([]NavGroup, error) {
	if !r.available() {
		return nil, nil
	}

	var rows []ArticleRef
	err := r.db.WithContext(ctx).
		Raw("SELECT id, title, breadcrumbs FROM help_articles ORDER BY breadcrumbs, title").
		Scan(&rows).Error
	if err != nil {
		appLogger.Warn("help navigation query failed, degrading to empty", "error", err)
		return nil, nil
	}

	grouped := make(map[string][]NavLink)
	for _, row := range rows {
		category := CategoryFromBreadcrumbs(row.Breadcrumbs)
		if category == "" {
			category = "General"
		}
		grouped[category] = append(grouped[category], NavLink{ID: row.ID, Title: row.Title})
	}

	titles := make([]string, 0, len(grouped))
	for title := range grouped {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	navigation := make([]NavGroup, 0, len(titles))
	for _, title := range titles {
		navigation = append(navigation, NavGroup{Title: title, Links: grouped[title]})
	}
	return navigation, nil
}

// Neighbors returns the by-id previous and next articles; either may
// be nil at the ends of the range.
func (r *HelpRepository) Neighbors(ctx context.Context, id int64) (prev, next *ArticleRef, err error) {
	if !r.available() {
		return nil, nil, nil
	}

	var prevRows []ArticleRef
	err = r.db.WithContext(ctx).
		Raw("SELECT id, title, breadcrumbs FROM help_articles WHERE id < ? ORDER BY id DESC LIMIT 1", id).
		Scan(&prevRows).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find previous article: %w", err)
	}

	var nextRows []ArticleRef
	err = r.db.WithContext(ctx).
		Raw("SELECT id, title, breadcrumbs FROM help_articles WHERE id > ? ORDER BY id ASC LIMIT 1", id).
		Scan(&nextRows).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find next article: %w", err)
	}

	if len(prevRows) > 0 {
		prev = &prevRows[0]
	}
	if len(nextRows) > 0 {
		next = &nextRows[0]
	}
	return prev, next, nil
}

// Search returns the ten most relevant FTS matches.
func (r *HelpRepository) Search(ctx context.Context, query string) ([]ArticleRef, error) {
	if !r.available() || strings.TrimSpace(query) == "" {
		return nil, nil
	}

	var results []ArticleRef
	err := r.db.WithContext(ctx).
		Raw(`SELECT help_articles.id, help_articles.title, help_articles.breadcrumbs
			FROM help_articles
			INNER JOIN help_articles_fts ON help_articles.id = help_articles_fts.rowid
			WHERE help_articles_fts MATCH ?
			LIMIT 10`, query).
		Scan(&results).Error
	if err != nil {
		appLogger.Warn("help search failed, degrading to empty", "error", err)
		return nil, nil
	}
	return results, nil
}

// CategoryFromBreadcrumbs extracts the navigation category: the
// segment after the fixed root label in a " > " separated path.
func CategoryFromBreadcrumbs(breadcrumbs string) string {
	if breadcrumbs == "" {
		return ""
	}
	parts := strings.Split(breadcrumbs, ">")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) > 1 && parts[0] == constants.HelpRootLabel {
		return parts[1]
	}
	if len(parts) > 1 {
		return parts[1]
	}
	return ""
}
