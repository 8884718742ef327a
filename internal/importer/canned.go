package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"supportarchive/internal/infrastructure/persistence/models"
	appLogger "supportarchive/internal/shared/logger"
)

// kbFTSStatements create the FTS5 index over kb_articles and the
// triggers that keep it consistent. Virtual tables and triggers sit
// outside gorm's migration surface, so this is raw DDL.
var kbFTSStatements = []string{
	`CREATE VIRTUAL TABLE IF NOT EXISTS kb_articles_fts USING fts5(
		title, body_text, category_name, parent_category_name,
		content='kb_articles',
		content_rowid='id'
	)`,
	`CREATE TRIGGER IF NOT EXISTS kb_articles_ai AFTER INSERT ON kb_articles BEGIN
		INSERT INTO kb_articles_fts(rowid, title, body_text, category_name, parent_category_name)
		VALUES (new.id, new.title, new.body_text, new.category_name, new.parent_category_name);
	END`,
	`CREATE TRIGGER IF NOT EXISTS kb_articles_ad AFTER DELETE ON kb_articles BEGIN
		DELETE FROM kb_articles_fts WHERE rowid = old.id;
	END`,
	`CREATE TRIGGER IF NOT EXISTS kb_articles_au AFTER UPDATE ON kb_articles BEGIN
		DELETE FROM kb_articles_fts WHERE rowid = old.id;
		INSERT INTO kb_articles_fts(rowid, title, body_text, category_name, parent_category_name)
		VALUES (new.id, new.title, new.body_text, new.category_name, new.parent_category_name);
	END`,
}

// ArticlesResult summarizes a KB or help-article import run.
type ArticlesResult struct {
	Imported int
	Skipped  int
}

// ImportCanned rebuilds the knowledge-base store from the tabular
// canned-response export. The field delimiter is sniffed from the
// file; rows missing a title or body are skipped and counted.
func ImportCanned(db *gorm.DB, path string, batchSize int) (*ArticlesResult, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if err := ensureFTS5(db); err != nil {
		return nil, err
	}

	articles, skipped, err := loadCannedExport(path)
	if err != nil {
		return nil, err
	}
	if len(articles) == 0 {
		return nil, fmt.Errorf("no valid articles found in %s", path)
	}

	if err := replaceKBStore(db, articles, batchSize); err != nil {
		return nil, err
	}

	appLogger.Info("knowledge-base import complete",
		"articles", len(articles), "skipped", skipped)
	return &ArticlesResult{Imported: len(articles), Skipped: skipped}, nil
}

func loadCannedExport(path string) ([]models.KBArticleModel, int, error) {
	delimiter, err := sniffDelimiter(path)
	if err != nil {
		return nil, 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to open export %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var (
		articles []models.KBArticleModel
		skipped  int
	)
	for {
		record, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			appLogger.Warn("skipping malformed row", "path", path, "error", err)
			skipped++
			continue
		}

		title := field(record, "Ticket Name")
		body := field(record, "Action Description")
		if title == "" || body == "" {
			skipped++
			continue
		}

		var ticketNumber *int64
		if raw := field(record, "Ticket Number"); raw != "" {
			if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
				ticketNumber = &n
			}
		}

		articles = append(articles, models.KBArticleModel{
			TicketNumber:       ticketNumber,
			Title:              title,
			Body:               body,
			BodyText:           ExtractText(body),
			Author:             field(record, "Action Creator Name"),
			CategoryName:       field(record, "Knowledge Base Category Name"),
			ParentCategoryName: field(record, "Knowledge Base Parent Category Name"),
			DateCreated:        parseSourceTimestamp(field(record, "Date Ticket Created")),
			DateModified:       parseSourceTimestamp(field(record, "Date Modified")),
		})
	}
	return articles, skipped, nil
}

// replaceKBStore rebuilds the store with the FTS index and triggers in
// place before the bulk insert so the triggers populate the index.
func replaceKBStore(db *gorm.DB, articles []models.KBArticleModel, batchSize int) error {
	drops := []string{
		"DROP TRIGGER IF EXISTS kb_articles_ai",
		"DROP TRIGGER IF EXISTS kb_articles_ad",
		"DROP TRIGGER IF EXISTS kb_articles_au",
		"DROP TABLE IF EXISTS kb_articles_fts",
		"DROP TABLE IF EXISTS kb_articles",
	}
	for _, stmt := range drops {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to drop kb schema: %w", err)
		}
	}

	if err := db.AutoMigrate(&models.KBArticleModel{}); err != nil {
		return fmt.Errorf("failed to create kb schema: %w", err)
	}
	for _, stmt := range kbFTSStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create kb full-text index: %w", err)
		}
	}

	if err := db.CreateInBatches(articles, batchSize).Error; err != nil {
		return fmt.Errorf("failed to insert kb articles: %w", err)
	}

	for _, stmt := range []string{"VACUUM", "ANALYZE"} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to run %s: %w", stmt, err)
		}
	}
	return nil
}

// sniffDelimiter picks the most frequent candidate delimiter in the
// file's first 4KB, defaulting to comma.
func sniffDelimiter(path string) (rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open export %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, 4096)
	n, err := f.Read(buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to sample export %s: %w", path, err)
	}
	sample := string(buf[:n])

	best := ','
	bestCount := 0
	for _, candidate := range []rune{',', '\t', ';', '|'} {
		count := strings.Count(sample, string(candidate))
		if count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best, nil
}
