package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"supportarchive/internal/browse"
	"supportarchive/internal/shared/constants"
	appLogger "supportarchive/internal/shared/logger"
)

// facetColumns maps each facet to its unified-CTE column and value cap.
// The columns are fixed internal names, never user input.
var facetColumns = map[string]struct {
	column string
	limit  int
}{
	browse.FacetAgent:       {"agent", 50},
	browse.FacetStatus:      {"status", 50},
	browse.FacetCategory:    {"category", 50},
	browse.FacetSubcategory: {"subcategory", 50},
	browse.FacetCustomer:    {"customer", 20},
}

const ticketUnifiedSelect = `
	SELECT
		assigned_to AS agent,
		status,
		ticket_type AS category,
		subcategory,
		customers AS customer,
		date_action_created AS date_val,
		0 AS is_kb
	FROM tickets
	WHERE %s`

const kbUnifiedSelect = `
	SELECT
		author AS agent,
		'` + constants.KBStatus + `' AS status,
		parent_category_name AS category,
		category_name AS subcategory,
		'' AS customer,
		COALESCE(date_modified, date_created) AS date_val,
		1 AS is_kb
	FROM kb.kb_articles
	WHERE %s`

const ticketPageSelect = `
	SELECT
		ticket_number,
		ticket_name,
		status,
		subcategory,
		date_action_created,
		assigned_to,
		customers,
		ticket_owner,
		0 AS is_kb,
		ticket_number AS real_id,
		date_ticket_created,
		date_closed
	FROM tickets
	WHERE %s`

const kbPageSelect = `
	SELECT
		COALESCE(ticket_number, id) AS ticket_number,
		title AS ticket_name,
		'` + constants.KBStatus + `' AS status,
		category_name AS subcategory,
		COALESCE(date_modified, date_created) AS date_action_created,
		author AS assigned_to,
		'' AS customers,
		'KB' AS ticket_owner,
		1 AS is_kb,
		id AS real_id,
		date_created AS date_ticket_created,
		NULL AS date_closed
	FROM kb.kb_articles
	WHERE %s`

// browseRow is the raw scan target for the unified page query.
type browseRow struct {
	TicketNumber      int64   `gorm:"column:ticket_number"`
	TicketName        string  `gorm:"column:ticket_name"`
	Status            string  `gorm:"column:status"`
	Subcategory       string  `gorm:"column:subcategory"`
	DateActionCreated *string `gorm:"column:date_action_created"`
	AssignedTo        string  `gorm:"column:assigned_to"`
	Customers         string  `gorm:"column:customers"`
	TicketOwner       string  `gorm:"column:ticket_owner"`
	IsKB              int     `gorm:"column:is_kb"`
	RealID            int64   `gorm:"column:real_id"`
	DateTicketCreated *string `gorm:"column:date_ticket_created"`
	DateClosed        *string `gorm:"column:date_closed"`
}

func (r browseRow) project() browse.Row {
	row := browse.Row{
		TicketNumber:      r.TicketNumber,
		TicketName:        r.TicketName,
		Status:            r.Status,
		Subcategory:       r.Subcategory,
		DateActionCreated: r.DateActionCreated,
		AssignedTo:        r.AssignedTo,
		Customers:         r.Customers,
		TicketOwner:       r.TicketOwner,
		IsKB:              r.IsKB != 0,
		RealID:            r.RealID,
		DateTicketCreated: r.DateTicketCreated,
		DateClosed:        r.DateClosed,
	}
	if row.IsKB {
		row.TicketType = constants.KBStatus
		row.TicketSource = constants.KBSourceLabel
	} else {
		row.TicketType = "Ticket"
		row.TicketSource = "Email"
	}
	return row
}

// BrowseRepository serves the unified ticket + knowledge-base listing.
// The KB store is an attached schema on the same connection; when it
// was unavailable at startup, or a query against it fails, results
// degrade to tickets only.
type BrowseRepository struct {
	db         *gorm.DB
	kbAttached bool
}

func NewBrowseRepository(db *gorm.DB, kbAttached bool) *BrowseRepository {
	return &BrowseRepository{db: db, kbAttached: kbAttached}
}

// Browse executes one full listing request: unfiltered and filtered
// totals, the clamped page of unified rows, and per-facet value counts
// computed with each facet's own clauses removed.
func (r *BrowseRepository) Browse(ctx context.Context, f browse.Filters, page, pageSize int) (*browse.Result, error) {
	set := browse.BuildClauses(f, time.Now())
	pageSize = browse.NormalizePageSize(pageSize)

	total, err := r.totalCount(ctx)
	if err != nil {
		return nil, err
	}
	filtered, err := r.filteredCount(ctx, set)
	if err != nil {
		return nil, err
	}

	page = browse.ClampPage(page, filtered, pageSize)
	items, err := r.pageRows(ctx, set, page, pageSize)
	if err != nil {
		return nil, err
	}

	facets, err := r.facetCounts(ctx, set)
	if err != nil {
		return nil, err
	}

	return &browse.Result{
		Items:      items,
		Total:      total,
		Filtered:   filtered,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: browse.TotalPages(filtered, pageSize),
		Facets:     facets,
	}, nil
}

func (r *BrowseRepository) totalCount(ctx context.Context) (int64, error) {
	var tickets int64
	if err := r.db.WithContext(ctx).Table("tickets").Count(&tickets).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var kb int64
	if r.kbAttached {
		if err := r.db.WithContext(ctx).Table("kb.kb_articles").Count(&kb).Error; err != nil {
			appLogger.Warn("kb count failed, degrading to tickets only", "error", err)
			kb = 0
		}
	}
	return tickets + kb, nil
}

func (r *BrowseRepository) filteredCount(ctx context.Context, set *browse.ClauseSet) (int64, error) {
	tWhere, tArgs := set.Where(browse.RelationTicket)

	var tickets int64
	err := r.db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM tickets WHERE "+tWhere, tArgs...).
		Scan(&tickets).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count filtered tickets: %w", err)
	}

	var kb int64
	if r.kbAttached {
		kWhere, kArgs := set.Where(browse.RelationKB)
		err := r.db.WithContext(ctx).
			Raw("SELECT COUNT(*) FROM kb.kb_articles WHERE "+kWhere, kArgs...).
			Scan(&kb).Error
		if err != nil {
			appLogger.Warn("kb filtered count failed, degrading to tickets only", "error", err)
			kb = 0
		}
	}
	return tickets + kb, nil
}

func (r *BrowseRepository) pageRows(ctx context.Context, set *browse.ClauseSet, page, pageSize int) ([]browse.Row, error) {
	offset := (page - 1) * pageSize
	tWhere, tArgs := set.Where(browse.RelationTicket)

	var (
		raw  []browseRow
		err  error
		args []interface{}
	)
	if r.kbAttached {
		kWhere, kArgs := set.Where(browse.RelationKB)
		sql := fmt.Sprintf(`
			SELECT * FROM (%s UNION ALL %s)
			ORDER BY date_action_created DESC
			LIMIT ? OFFSET ?`,
			fmt.Sprintf(ticketPageSelect, tWhere),
			fmt.Sprintf(kbPageSelect, kWhere))
		args = append(append(append(args, tArgs...), kArgs...), pageSize, offset)
		err = r.db.WithContext(ctx).Raw(sql, args...).Scan(&raw).Error
		if err != nil {
			appLogger.Warn("unified page query failed, degrading to tickets only", "error", err)
		}
	}

	if !r.kbAttached || err != nil {
		sql := fmt.Sprintf(ticketPageSelect, tWhere) +
			" ORDER BY date_action_created DESC LIMIT ? OFFSET ?"
		args = append(append([]interface{}{}, tArgs...), pageSize, offset)
		raw = nil
		if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&raw).Error; err != nil {
			return nil, fmt.Errorf("failed to query ticket page: %w", err)
		}
	}

	items := make([]browse.Row, 0, len(raw))
	for _, row := range raw {
		items = append(items, row.project())
	}
	return items, nil
}

// facetCounts computes each facet's value list with that facet's own
// clauses excluded, so a selection never hides its sibling values.
func (r *BrowseRepository) facetCounts(ctx context.Context, set *browse.ClauseSet) (browse.FacetSet, error) {
	facets := make(browse.FacetSet, len(browse.Facets))
	for _, facet := range browse.Facets {
		spec := facetColumns[facet]
		values, err := r.groupCounts(ctx, set, facet, spec.column, spec.limit)
		if err != nil {
			return nil, fmt.Errorf("failed to compute %s facet: %w", facet, err)
		}
		facets[facet] = values
	}
	return facets, nil
}

func (r *BrowseRepository) groupCounts(ctx context.Context, set *browse.ClauseSet, facet, column string, limit int) ([]browse.FacetValue, error) {
	tWhere, tArgs := set.Where(browse.RelationTicket, facet)

	cte := fmt.Sprintf(ticketUnifiedSelect, tWhere)
	args := append([]interface{}{}, tArgs...)
	if r.kbAttached {
		kWhere, kArgs := set.Where(browse.RelationKB, facet)
		cte += " UNION ALL " + fmt.Sprintf(kbUnifiedSelect, kWhere)
		args = append(args, kArgs...)
	}

	sql := fmt.Sprintf(`
		WITH unified_items AS (%s)
		SELECT %s AS value, COUNT(*) AS count
		FROM unified_items
		WHERE %s IS NOT NULL AND %s != ''
		GROUP BY %s
		ORDER BY count DESC
		LIMIT ?`, cte, column, column, column, column)
	args = append(args, limit)

	var values []browse.FacetValue
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&values).Error; err != nil {
		if r.kbAttached {
			appLogger.Warn("facet query failed with kb attached, degrading to tickets only",
				"facet", facet, "error", err)
			return r.ticketOnlyGroupCounts(ctx, set, facet, column, limit)
		}
		return nil, err
	}
	return values, nil
}

func (r *BrowseRepository) ticketOnlyGroupCounts(ctx context.Context, set *browse.ClauseSet, facet, column string, limit int) ([]browse.FacetValue, error) {
	tWhere, tArgs := set.Where(browse.RelationTicket, facet)
	sql := fmt.Sprintf(`
		WITH unified_items AS (%s)
		SELECT %s AS value, COUNT(*) AS count
		FROM unified_items
		WHERE %s IS NOT NULL AND %s != ''
		GROUP BY %s
		ORDER BY count DESC
		LIMIT ?`, fmt.Sprintf(ticketUnifiedSelect, tWhere), column, column, column, column)

	var values []browse.FacetValue
	args := append(append([]interface{}{}, tArgs...), limit)
	if err := r.db.WithContext(ctx).Raw(sql, args...).Scan(&values).Error; err != nil {
		return nil, err
	}
	return values, nil
}
