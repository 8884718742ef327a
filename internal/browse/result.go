package browse

import (
	"strings"

	"supportarchive/internal/shared/constants"
)

// Row is one entry of the unified listing. Knowledge-base articles are
// projected into the same shape as tickets with IsKB set; DisplayID is
// the origin ticket number where one exists, RealID the row's own key.
type Row struct {
	TicketNumber      int64   `json:"ticket_number"`
	TicketName        string  `json:"ticket_name"`
	Status            string  `json:"status"`
	Subcategory       string  `json:"subcategory"`
	DateActionCreated *string `json:"date_action_created"`
	AssignedTo        string  `json:"assigned_to"`
	Customers         string  `json:"customers"`
	TicketOwner       string  `json:"ticket_owner"`
	IsKB              bool    `json:"is_kb"`
	RealID            int64   `json:"real_id"`
	TicketType        string  `json:"ticket_type"`
	TicketSource      string  `json:"ticket_source"`
	DateTicketCreated *string `json:"date_ticket_created"`
	DateClosed        *string `json:"date_closed"`
}

// FacetValue is one selectable value with its count under the other
// active filters.
type FacetValue struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// FacetSet holds the per-dimension value lists.
type FacetSet map[string][]FacetValue

// Result is a complete browse response: one page of unified rows,
// the unfiltered and filtered totals, and the facet value counts.
type Result struct {
	Items      []Row    `json:"items"`
	Total      int64    `json:"total"`
	Filtered   int64    `json:"filtered"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
	Facets     FacetSet `json:"facets"`
}

// NormalizePageSize maps anything outside the allowed set to the
// default.
func NormalizePageSize(size int) int {
	if constants.AllowedPageSizes[size] {
		return size
	}
	return constants.DefaultPageSize
}

// TotalPages is ceil(filtered/size), at least 1.
func TotalPages(filtered int64, size int) int {
	pages := int((filtered + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// ClampPage forces page into [1, TotalPages(filtered, size)].
func ClampPage(page int, filtered int64, size int) int {
	if page < 1 {
		return 1
	}
	if max := TotalPages(filtered, size); page > max {
		return max
	}
	return page
}

// StatusCategory buckets a raw status value for display.
func StatusCategory(status string) string {
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "resolved") || strings.Contains(lower, "closed"):
		return "resolved"
	case strings.Contains(lower, "open") || strings.Contains(lower, "new"):
		return "open"
	case strings.Contains(lower, "pending"):
		return "pending"
	default:
		return "other"
	}
}
