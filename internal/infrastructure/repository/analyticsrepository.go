package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"supportarchive/internal/browse"
	"supportarchive/internal/shared/constants"
)

// AnalyticsRange names. Every analytics query runs under the global
// customer exclusion plus one of these ticket-creation windows.
var analyticsRanges = map[string]func(time.Time) time.Time{
	"7d":  func(now time.Time) time.Time { return now.AddDate(0, 0, -7) },
	"30d": func(now time.Time) time.Time { return now.AddDate(0, 0, -30) },
	"90d": func(now time.Time) time.Time { return now.AddDate(0, 0, -90) },
	"12m": func(now time.Time) time.Time { return now.AddDate(-1, 0, 0) },
	"2y":  func(now time.Time) time.Time { return now.AddDate(-2, 0, 0) },
	"5y":  func(now time.Time) time.Time { return now.AddDate(-5, 0, 0) },
}

// Summary is the dashboard KPI block.
type Summary struct {
	TotalCustomers     int64   `json:"total_customers"`
	ActiveCustomers    int64   `json:"active_customers"`
	AvgResponseHours   float64 `json:"avg_response_hours"`
	AvgResolutionHours float64 `json:"avg_resolution_hours"`
	TotalTickets       int64   `json:"total_tickets"`
}

// CustomerCount is one tickets-by-customer entry.
type CustomerCount struct {
	Customer string `gorm:"column:customers" json:"customer"`
	Count    int64  `gorm:"column:count" json:"count"`
}

// LabelCount is one category- or source-distribution entry.
type LabelCount struct {
	Label string `gorm:"column:label" json:"label"`
	Count int64  `gorm:"column:count" json:"count"`
}

// AnalyticsRepository computes dashboard aggregates over the archive
// store.
type AnalyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// globalFilter renders the baseline customer exclusion, shared with
// the browse view, plus the optional creation-date range.
func globalFilter(rangeName string, now time.Time) (string, []interface{}) {
	where, args := browse.BuildClauses(browse.Filters{}, now).Where(browse.RelationTicket)
	if resolve, ok := analyticsRanges[rangeName]; ok {
		where += " AND date_ticket_created >= ?"
		args = append(args, resolve(now).Format(constants.TimestampLayout))
	}
	return where, args
}

// Summary computes the KPI block. Active customers always use a fixed
// 30-day window; the other metrics honor the requested range.
func (r *AnalyticsRepository) Summary(ctx context.Context, rangeName string) (*Summary, error) {
	now := time.Now()
	where, args := globalFilter(rangeName, now)
	summary := &Summary{}

	err := r.db.WithContext(ctx).
		Raw("SELECT COUNT(DISTINCT customers) FROM tickets WHERE "+where, args...).
		Scan(&summary.TotalCustomers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}

	activeWhere, activeArgs := globalFilter("30d", now)
	err = r.db.WithContext(ctx).
		Raw("SELECT COUNT(DISTINCT customers) FROM tickets WHERE "+activeWhere, activeArgs...).
		Scan(&summary.ActiveCustomers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count active customers: %w", err)
	}

	// First response: agent actions other than the opening description.
	joinWhere, joinArgs := globalFilter(rangeName, now)
	var avgResponse sql.NullFloat64
	err = r.db.WithContext(ctx).
		Raw(`SELECT AVG(CAST((julianday(m.date_action_created) - julianday(t.date_ticket_created)) * 24 AS REAL))
			FROM tickets t
			JOIN messages m ON t.ticket_number = m.ticket_number
			WHERE `+qualify(joinWhere)+` AND m.role = ? AND m.action_type != 'Description'`,
			append(joinArgs, constants.RoleAgent)...).
		Scan(&avgResponse).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute response time: %w", err)
	}
	if avgResponse.Valid {
		summary.AvgResponseHours = round1(avgResponse.Float64)
	}

	var avgResolution sql.NullFloat64
	err = r.db.WithContext(ctx).
		Raw(`SELECT AVG(CAST((julianday(date_closed) - julianday(date_ticket_created)) * 24 AS REAL))
			FROM tickets
			WHERE date_closed IS NOT NULL AND status IN ('Closed', 'Resolved') AND `+where, args...).
		Scan(&avgResolution).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute resolution time: %w", err)
	}
	if avgResolution.Valid {
		summary.AvgResolutionHours = round1(avgResolution.Float64)
	}

	err = r.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM tickets WHERE "+where, args...).
		Scan(&summary.TotalTickets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}
	return summary, nil
}

// TicketsByCustomer returns the top-N customers by ticket volume.
func (r *AnalyticsRepository) TicketsByCustomer(ctx context.Context, rangeName string, limit int) ([]CustomerCount, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	where, args := globalFilter(rangeName, time.Now())

	var counts []CustomerCount
	err := r.db.WithContext(ctx).
		Raw(`SELECT customers, COUNT(*) AS count FROM tickets
			WHERE `+where+`
			GROUP BY customers
			ORDER BY count DESC
			LIMIT ?`, append(args, limit)...).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute tickets by customer: %w", err)
	}
	return counts, nil
}

// CategoryBreakdown returns ticket counts per category, optionally
// narrowed to one customer.
func (r *AnalyticsRepository) CategoryBreakdown(ctx context.Context, rangeName, customer string) ([]LabelCount, error) {
	where, args := globalFilter(rangeName, time.Now())
	sql := `SELECT ticket_type AS label, COUNT(*) AS count FROM tickets
		WHERE ticket_type IS NOT NULL AND ticket_type != '' AND ` + where
	if customer != "" {
		sql += " AND customers = ?"
		args = append(args, customer)
	}
	sql += " GROUP BY ticket_type ORDER BY count DESC"

	var counts []LabelCount
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&counts).Error; err != nil {
		return nil, fmt.Errorf("failed to compute category breakdown: %w", err)
	}
	return counts, nil
}

// SourceDistribution returns ticket counts per intake source.
func (r *AnalyticsRepository) SourceDistribution(ctx context.Context, rangeName string) ([]LabelCount, error) {
	where, args := globalFilter(rangeName, time.Now())

	var counts []LabelCount
	err := r.db.WithContext(ctx).
		Raw(`SELECT ticket_source AS label, COUNT(*) AS count FROM tickets
			WHERE ticket_source IS NOT NULL AND ticket_source != '' AND `+where+`
			GROUP BY ticket_source
			ORDER BY count DESC`, args...).
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute source distribution: %w", err)
	}
	return counts, nil
}

// qualify prefixes the shared filter's ticket columns for queries that
// join tickets under the alias t.
func qualify(where string) string {
	return strings.NewReplacer(
		"customers", "t.customers",
		"date_ticket_created", "t.date_ticket_created",
	).Replace(where)
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
