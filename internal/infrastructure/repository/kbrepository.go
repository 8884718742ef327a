package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"supportarchive/internal/infrastructure/persistence/models"
	apperrors "supportarchive/internal/shared/errors"
	appLogger "supportarchive/internal/shared/logger"
)

// allowedKBSortFields whitelists ORDER BY columns for the article list.
var allowedKBSortFields = map[string]bool{
	"ticket_number": true,
	"title":         true,
	"author":        true,
	"date_modified": true,
	"date_created":  true,
}

// KBListParams are the standalone knowledge-base list options.
type KBListParams struct {
	Search   string
	Category string
	SortBy   string
	Order    string
	Limit    int
	Offset   int
}

func (p *KBListParams) normalize() {
	if !allowedKBSortFields[p.SortBy] {
		p.SortBy = "date_modified"
	}
	if p.Order != "asc" && p.Order != "desc" {
		p.Order = "desc"
	}
	if p.Limit <= 0 || p.Limit > 200 {
		p.Limit = 50
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// KBRepository serves the standalone knowledge-base views over the
// attached kb schema. When the store was unavailable at startup every
// query degrades to an empty result.
type KBRepository struct {
	db         *gorm.DB
	kbAttached bool
}

func NewKBRepository(db *gorm.DB, kbAttached bool) *KBRepository {
	return &KBRepository{db: db, kbAttached: kbAttached}
}

// List returns one lazily loaded slice of articles. A free-text search
// narrows the set through the FTS index; ordering always follows the
// requested sort field.
func (r *KBRepository) List(ctx context.Context, params KBListParams) ([]models.KBArticleModel, int64, error) {
	if !r.kbAttached {
		return nil, 0, nil
	}
	params.normalize()

	var total int64
	if err := r.db.WithContext(ctx).Table("kb.kb_articles").Count(&total).Error; err != nil {
		appLogger.Warn("kb count failed, degrading to empty", "error", err)
		return nil, 0, nil
	}

	var (
		sql  string
		args []interface{}
	)
	if params.Search != "" {
		sql = `
			SELECT kb_articles.* FROM kb.kb_articles AS kb_articles
			INNER JOIN kb.kb_articles_fts AS fts ON kb_articles.id = fts.rowid
			WHERE fts.kb_articles_fts MATCH ?`
		args = append(args, params.Search)
		if params.Category != "" {
			sql += " AND kb_articles.category_name = ?"
			args = append(args, params.Category)
		}
	} else {
		sql = "SELECT * FROM kb.kb_articles WHERE 1=1"
		if params.Category != "" {
			sql += " AND category_name = ?"
			args = append(args, params.Category)
		}
	}
	sql += fmt.Sprintf(" ORDER BY %s %s LIMIT ? OFFSET ?", params.SortBy, params.Order)
	args = append(args, params.Limit, params.Offset)

	var articles []models.KBArticleModel
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&articles).Error; err != nil {
		appLogger.Warn("kb list query failed, degrading to empty", "error", err)
		return nil, 0, nil
	}
	return articles, total, nil
}

// FindByID returns one article.
func (r *KBRepository) FindByID(ctx context.Context, id int64) (*models.KBArticleModel, error) {
	if !r.kbAttached {
		return nil, apperrors.NewUnavailableError("knowledge-base store not available")
	}

	var article models.KBArticleModel
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM kb.kb_articles WHERE id = ?", id).
		First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("article %d not found", id))
		}
		return nil, fmt.Errorf("failed to find kb article %d: %w", id, err)
	}
	return &article, nil
}

// Categories returns the distinct article categories for the filter
// dropdown.
func (r *KBRepository) Categories(ctx context.Context) ([]string, error) {
	if !r.kbAttached {
		return nil, nil
	}

	var categories []string
	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT category_name FROM kb.kb_articles
			WHERE category_name IS NOT NULL AND category_name != ''
			ORDER BY category_name`).
		Scan(&categories).Error
	if err != nil {
		appLogger.Warn("kb categories query failed, degrading to empty", "error", err)
		return nil, nil
	}
	return categories, nil
}
