package browse

import (
	"time"

	"supportarchive/internal/shared/constants"
)

// Facet tags. Clauses tagged with a facet are dropped when computing
// that facet's own value counts.
const (
	FacetAgent       = "agent"
	FacetStatus      = "status"
	FacetCategory    = "category"
	FacetSubcategory = "subcategory"
	FacetCustomer    = "customer"
	FacetCreated     = "created"
	FacetModified    = "modified"
)

// Facets lists the multi-select dimensions in display order.
var Facets = []string{FacetAgent, FacetStatus, FacetCategory, FacetSubcategory, FacetCustomer}

// CustomerDenyList names internal/placeholder organizations excluded
// from every query regardless of user-supplied filters.
var CustomerDenyList = []string{
	"Agilent Technologies (688244)",
}

const unknownCompanyPattern = "%unknown company%"

// Filters is one browse request's selection: optional free-text search
// plus multi-select facet values and two date windows.
type Filters struct {
	Search        string
	Agents        []string
	Statuses      []string
	Categories    []string
	Subcategories []string
	Customers     []string
	Created       DateWindow
	Modified      DateWindow
}

// BuildClauses turns the filters into a tagged clause set. The
// baseline customer exclusion is untagged so no facet computation can
// drop it. Asymmetric filters: customer shuts KB rows out entirely;
// selecting the synthetic KB status shuts ticket rows out, and any
// real status shuts KB rows out.
func BuildClauses(f Filters, now time.Time) *ClauseSet {
	set := &ClauseSet{}

	baseline := &Predicate{
		SQL:  "customers IS NOT NULL AND customers != '' AND LOWER(customers) NOT LIKE ?",
		Args: []interface{}{unknownCompanyPattern},
	}
	if len(CustomerDenyList) > 0 {
		deny := in("customers", CustomerDenyList)
		baseline.SQL += " AND NOT (" + deny.SQL + ")"
		baseline.Args = append(baseline.Args, deny.Args...)
	}
	set.Add(Clause{Ticket: baseline})

	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		set.Add(Clause{
			Ticket: &Predicate{
				SQL:  "(CAST(ticket_number AS TEXT) LIKE ? OR LOWER(ticket_name) LIKE LOWER(?))",
				Args: []interface{}{pattern, pattern},
			},
			KB: &Predicate{
				SQL:  "(LOWER(title) LIKE LOWER(?) OR CAST(ticket_number AS TEXT) LIKE ?)",
				Args: []interface{}{pattern, pattern},
			},
		})
	}

	if len(f.Agents) > 0 {
		set.Add(Clause{
			Facet:  FacetAgent,
			Ticket: in("assigned_to", f.Agents),
			KB:     in("author", f.Agents),
		})
	}

	if len(f.Statuses) > 0 {
		set.Add(statusClause(f.Statuses))
	}

	if len(f.Categories) > 0 {
		set.Add(Clause{
			Facet:  FacetCategory,
			Ticket: in("ticket_type", f.Categories),
			KB:     in("parent_category_name", f.Categories),
		})
	}

	if len(f.Subcategories) > 0 {
		set.Add(Clause{
			Facet:  FacetSubcategory,
			Ticket: in("subcategory", f.Subcategories),
			KB:     in("category_name", f.Subcategories),
		})
	}

	if len(f.Customers) > 0 {
		set.Add(Clause{
			Facet:  FacetCustomer,
			Ticket: in("customers", f.Customers),
			KB:     excludeAll(),
		})
	}

	if p := windowPredicate("date_ticket_created", f.Created, now); p != nil {
		set.Add(Clause{
			Facet:  FacetCreated,
			Ticket: p,
			KB:     windowPredicate("date_created", f.Created, now),
		})
	}

	if p := windowPredicate("date_action_created", f.Modified, now); p != nil {
		set.Add(Clause{
			Facet:  FacetModified,
			Ticket: p,
			KB:     windowPredicate("COALESCE(date_modified, date_created)", f.Modified, now),
		})
	}

	return set
}

// statusClause partitions the selection around the synthetic KB
// status. Every KB row carries that status, so selecting it includes
// the whole KB relation; real statuses never match KB rows.
func statusClause(statuses []string) Clause {
	var real []string
	includeKB := false
	for _, s := range statuses {
		if s == constants.KBStatus {
			includeKB = true
			continue
		}
		real = append(real, s)
	}

	c := Clause{Facet: FacetStatus}
	switch {
	case includeKB && len(real) == 0:
		c.Ticket = excludeAll()
	case includeKB:
		c.Ticket = in("status", real)
	default:
		c.Ticket = in("status", real)
		c.KB = excludeAll()
	}
	return c
}
