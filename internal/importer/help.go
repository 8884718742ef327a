package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"supportarchive/internal/infrastructure/persistence/models"
	"supportarchive/internal/shared/constants"
	appLogger "supportarchive/internal/shared/logger"
)

var helpFTSStatements = []string{
	`CREATE VIRTUAL TABLE IF NOT EXISTS help_articles_fts USING fts5(
		title, body_text, breadcrumbs, intended_users,
		content='help_articles',
		content_rowid='id'
	)`,
	`CREATE TRIGGER IF NOT EXISTS help_articles_ai AFTER INSERT ON help_articles BEGIN
		INSERT INTO help_articles_fts(rowid, title, body_text, breadcrumbs, intended_users)
		VALUES (new.id, new.title, new.body_text, new.breadcrumbs, new.intended_users);
	END`,
	`CREATE TRIGGER IF NOT EXISTS help_articles_ad AFTER DELETE ON help_articles BEGIN
		DELETE FROM help_articles_fts WHERE rowid = old.id;
	END`,
	`CREATE TRIGGER IF NOT EXISTS help_articles_au AFTER UPDATE ON help_articles BEGIN
		DELETE FROM help_articles_fts WHERE rowid = old.id;
		INSERT INTO help_articles_fts(rowid, title, body_text, breadcrumbs, intended_users)
		VALUES (new.id, new.title, new.body_text, new.breadcrumbs, new.intended_users);
	END`,
}

// helpDocument is the JSON shape of one exported help article. The
// audience field appears both as a list and as a plain string in the
// wild.
type helpDocument struct {
	ArticleTitle  string          `json:"article_title"`
	Breadcrumbs   string          `json:"breadcrumbs"`
	IntendedUsers json.RawMessage `json:"intended_users"`
	Path          string          `json:"path"`
	ArticleBody   string          `json:"article_body"`
}

func (d *helpDocument) audience() string {
	if len(d.IntendedUsers) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(d.IntendedUsers, &list); err == nil {
		return strings.Join(list, ", ")
	}
	var single string
	if err := json.Unmarshal(d.IntendedUsers, &single); err == nil {
		return single
	}
	return ""
}

// ImportHelp rebuilds the help store from a directory of one-JSON-per
// -article documents. Files missing a title or body, or failing to
// parse, are skipped and counted; an empty directory is fatal.
func ImportHelp(db *gorm.DB, dir string, batchSize int) (*ArticlesResult, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if err := ensureFTS5(db); err != nil {
		return nil, err
	}

	articles, skipped, err := loadHelpDocuments(dir)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("no valid articles found in %s", dir)
	}

	if err := replaceHelpStore(db, articles, batchSize); err != nil {
		return nil, err
	}

	appLogger.Info("help-article import complete",
		"articles", len(articles), "skipped", skipped)
	return &ArticlesResult{Imported: len(articles), Skipped: skipped}, nil
}

func loadHelpDocuments(dir string) ([]models.HelpArticleModel, int, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return nil, 0, fmt.Errorf("no article documents found in %s", dir)
	}
	sort.Strings(paths)

	now := time.Now().Format(constants.TimestampLayout)

	var (
		articles []models.HelpArticleModel
		skipped  int
	)
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			appLogger.Warn("skipping unreadable article", "path", path, "error", err)
			skipped++
			continue
		}

		var doc helpDocument
		if err := json.Unmarshal(data, &doc); err != nil {
			appLogger.Warn("skipping malformed article", "path", path, "error", err)
			skipped++
			continue
		}

		title := strings.TrimSpace(doc.ArticleTitle)
		body := strings.TrimSpace(doc.ArticleBody)
		if title == "" || body == "" {
			appLogger.Warn("skipping article missing title or body", "path", path)
			skipped++
			continue
		}

		articles = append(articles, models.HelpArticleModel{
			Title:         title,
			Breadcrumbs:   strings.TrimSpace(doc.Breadcrumbs),
			IntendedUsers: doc.audience(),
			Path:          strings.TrimSpace(doc.Path),
			Body:          body,
			BodyText:      ExtractText(body),
			Filename:      filepath.Base(path),
			CreatedAt:     now,
			UpdatedAt:     now,
		})
	}
	return articles, skipped, nil
}

func replaceHelpStore(db *gorm.DB, articles []models.HelpArticleModel, batchSize int) error {
	drops := []string{
		"DROP TRIGGER IF EXISTS help_articles_ai",
		"DROP TRIGGER IF EXISTS help_articles_ad",
		"DROP TRIGGER IF EXISTS help_articles_au",
		"DROP TABLE IF EXISTS help_articles_fts",
		"DROP TABLE IF EXISTS help_articles",
	}
	for _, stmt := range drops {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to drop help schema: %w", err)
		}
	}

	if err := db.AutoMigrate(&models.HelpArticleModel{}); err != nil {
		return fmt.Errorf("failed to create help schema: %w", err)
	}
	for _, stmt := range helpFTSStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create help full-text index: %w", err)
		}
	}

	if err := db.CreateInBatches(articles, batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert help articles: %w", err)
	}

	for _, stmt := range []string{"VACUUM", "ANALYZE"} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to run %s: %w", stmt, err)
		}
	}
	return nil
}
