// Package importer implements the offline ETL pipelines that build the
// archive stores from periodic bulk exports: ticket-action CSV dumps,
// the canned-response knowledge-base export, and per-article help
// documents. Each run replaces its target store wholesale; the
// importer is the single writer and never runs concurrently with the
// serving process against the same file.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"supportarchive/internal/infrastructure/persistence/models"
	"supportarchive/internal/shared/constants"
	appLogger "supportarchive/internal/shared/logger"
	"supportarchive/internal/textclean"
)

const defaultBatchSize = 500

// actionRow is one parsed ticket-action record, keyed off the export's
// header names.
type actionRow struct {
	TicketNumber      int64
	TicketName        string
	Status            string
	Subcategory       string
	DateActionCreated *string
	DateTicketCreated *string
	DateClosed        *string
	TicketType        string
	Customers         string
	AssignedTo        string
	TicketSource      string
	ActionCreatorName string
	ActionType        string
	ActionDescription string
}

// ActionsResult summarizes one ticket-action import run.
type ActionsResult struct {
	FilesLoaded     int
	FilesMissing    int
	RowsLoaded      int
	RowsVisible     int
	RowsSkipped     int
	TicketsWritten  int
	MessagesWritten int
}

// ImportActions runs the full ticket/message pipeline: load every
// configured CSV (missing files are skipped and reported; zero
// loadable files is fatal), keep only externally visible rows, derive
// per-row roles and per-ticket owners, aggregate one summary row per
// ticket, and atomically replace the archive store.
func ImportActions(db *gorm.DB, paths []string, batchSize int) (*ActionsResult, error) {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	result := &ActionsResult{}
	var rows []actionRow

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			appLogger.Warn("source file missing, skipping", "path", path)
			result.FilesMissing++
			continue
		}
		loaded, skipped, err := loadActionCSV(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
		appLogger.Info("loaded source file", "path", path, "rows", len(loaded), "skipped", skipped)
		result.FilesLoaded++
		result.RowsLoaded += len(loaded) + skipped
		result.RowsSkipped += skipped
		rows = append(rows, loaded...)
	}

	if result.FilesLoaded == 0 {
		return nil, fmt.Errorf("no source files found among %d configured paths", len(paths))
	}
	result.RowsVisible = len(rows)

	tickets, messages := buildTicketsAndMessages(rows)
	result.TicketsWritten = len(tickets)
	result.MessagesWritten = len(messages)

	if err := replaceArchiveStore(db, tickets, messages, batchSize); err != nil {
		return nil, err
	}

	appLogger.Info("ticket import complete",
		"tickets", result.TicketsWritten,
		"messages", result.MessagesWritten,
		"files_loaded", result.FilesLoaded,
		"files_missing", result.FilesMissing)
	return result, nil
}

// loadActionCSV reads one export file, keeping only rows flagged as
// visible on the hub. Malformed rows are counted and skipped.
func loadActionCSV(path string) ([]actionRow, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"Ticket Number", "Is Visible on Hub"} {
		if _, ok := col[required]; !ok {
			return nil, 0, fmt.Errorf("missing required column %q", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	var rows []actionRow
	skipped := 0
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

		if !isTruthy(field(record, "Is Visible on Hub")) {
			continue
		}

		number, err := strconv.ParseInt(strings.TrimSpace(field(record, "Ticket Number")), 10, 64)
		if err != nil {
			appLogger.Warn("skipping row with bad ticket number",
				"path", path, "value", field(record, "Ticket Number"))
			skipped++
			continue
		}

		rows = append(rows, actionRow{
			TicketNumber:      number,
			TicketName:        field(record, "Ticket Name"),
			Status:            field(record, "Status"),
			Subcategory:       field(record, "Subcategory"),
			DateActionCreated: parseSourceTimestamp(field(record, "Date Action Created")),
			DateTicketCreated: parseSourceTimestamp(field(record, "Date Ticket Created")),
			DateClosed:        parseSourceTimestamp(field(record, "Date Closed")),
			TicketType:        field(record, "Ticket Type"),
			Customers:         field(record, "Customers"),
			AssignedTo:        field(record, "Assigned To"),
			TicketSource:      field(record, "Ticket Source"),
			ActionCreatorName: field(record, "Action Creator Name"),
			ActionType:        field(record, "Action Type"),
			ActionDescription: field(record, "Action Description"),
		})
	}
	return rows, skipped, nil
}

func isTruthy(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// parseSourceTimestamp converts the export's MM/DD/YYYY hh:mm AM/PM
// form into the storage layout. Unparseable values become nil rather
// than failing the row.
func parseSourceTimestamp(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.Parse(constants.SourceTimestampLayout, value)
	if err != nil {
		return nil
	}
	formatted := t.Format(constants.TimestampLayout)
	return &formatted
}

// buildTicketsAndMessages derives per-row roles, per-ticket owners and
// the one-summary-row-per-ticket aggregation, preserving input order.
func buildTicketsAndMessages(rows []actionRow) ([]models.TicketModel, []models.MessageModel) {
	type aggregate struct {
		ticket models.TicketModel
		owner  string
	}

	var order []int64
	byTicket := make(map[int64]*aggregate)
	messages := make([]models.MessageModel, 0, len(rows))

	for _, row := range rows {
		// Role compares against this row's own assigned-to value, so a
		// reassignment mid-ticket flips the derivation per action.
		role := constants.RoleCustomer
		if row.ActionCreatorName == row.AssignedTo {
			role = constants.RoleAgent
		}

		messages = append(messages, models.MessageModel{
			TicketNumber:       row.TicketNumber,
			ActionCreatorName:  row.ActionCreatorName,
			ActionType:         row.ActionType,
			DateActionCreated:  row.DateActionCreated,
			ActionDescription:  row.ActionDescription,
			CleanedDescription: textclean.Clean(row.ActionDescription),
			Role:               role,
		})

		agg, ok := byTicket[row.TicketNumber]
		if !ok {
			// First occurrence supplies the "first" aggregates.
			agg = &aggregate{ticket: models.TicketModel{
				TicketNumber:      row.TicketNumber,
				TicketName:        row.TicketName,
				Status:            row.Status,
				Subcategory:       row.Subcategory,
				DateActionCreated: row.DateActionCreated,
				DateTicketCreated: row.DateTicketCreated,
				DateClosed:        row.DateClosed,
				TicketType:        row.TicketType,
				Customers:         row.Customers,
				AssignedTo:        row.AssignedTo,
				TicketSource:      row.TicketSource,
			}}
			byTicket[row.TicketNumber] = agg
			order = append(order, row.TicketNumber)
		} else if later(row.DateActionCreated, agg.ticket.DateActionCreated) {
			agg.ticket.DateActionCreated = row.DateActionCreated
		}

		if agg.owner == "" && row.ActionType == "Description" {
			agg.owner = row.ActionCreatorName
		}
	}

	tickets := make([]models.TicketModel, 0, len(order))
	for _, number := range order {
		agg := byTicket[number]
		agg.ticket.TicketOwner = agg.owner
		if agg.ticket.TicketOwner == "" {
			agg.ticket.TicketOwner = constants.UnknownOwner
		}
		tickets = append(tickets, agg.ticket)
	}
	return tickets, messages
}

// later reports whether a sorts after b; the storage layout makes the
// string comparison a chronological one. nil never wins.
func later(a, b *string) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a > *b
}

// replaceArchiveStore drops and recreates the schema, bulk-inserts the
// new rows, then compacts and refreshes planner statistics.
func replaceArchiveStore(db *gorm.DB, tickets []models.TicketModel, messages []models.MessageModel, batchSize int) error {
	if err := db.Migrator().DropTable(&models.MessageModel{}, &models.TicketModel{}); err != nil {
		return fmt.Errorf("failed to drop tables: %w", err)
	}
	if err := db.AutoMigrate(&models.TicketModel{}, &models.MessageModel{}); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if len(tickets) > 0 {
		if err := db.CreateInBatches(tickets, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert tickets: %w", err)
		}
	}
	if len(messages) > 0 {
		if err := db.CreateInBatches(messages, batchSize).Error; err != nil {
			return fmt.Errorf("failed to insert messages: %w", err)
		}
	}

	for _, stmt := range []string{"VACUUM", "ANALYZE"} {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to run %s: %w", stmt, err)
		}
	}
	return nil
}
