// Package browse implements the faceted query model for the unified
// ticket + knowledge-base listing: tagged filter clauses that render
// independently against either relation, wall-clock date windows, and
// the result shapes the repository layer fills in.
package browse

import "strings"

// Relation selects which store a clause set is rendered against.
type Relation int

const (
	RelationTicket Relation = iota
	RelationKB
)

// Predicate is one SQL condition with its bound arguments. Values are
// always bound, never interpolated into the fragment.
type Predicate struct {
	SQL  string
	Args []interface{}
}

// Clause is one filter, tagged with the facet that owns it. A nil
// predicate means the clause puts no constraint on that relation; use
// excludeAll to shut a relation out entirely.
type Clause struct {
	Facet  string
	Ticket *Predicate
	KB     *Predicate
}

// excludeAll renders as a constant-false condition.
func excludeAll() *Predicate {
	return &Predicate{SQL: "1=0"}
}

// in builds a bound IN predicate over the given column.
func in(column string, values []string) *Predicate {
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(values)), ",")
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return &Predicate{
		SQL:  column + " IN (" + placeholders + ")",
		Args: args,
	}
}

// ClauseSet is an ordered list of clauses that renders to a WHERE body
// for one relation, optionally with some facets' clauses removed. That
// removal is what gives facet counts their own-filter exclusion.
type ClauseSet struct {
	clauses []Clause
}

func (s *ClauseSet) Add(c Clause) {
	s.clauses = append(s.clauses, c)
}

// Where renders the conjunction of all clauses for rel, skipping any
// clause owned by a facet in exclude. With nothing to render it
// returns a constant-true condition so callers can always append it.
func (s *ClauseSet) Where(rel Relation, exclude ...string) (string, []interface{}) {
	excluded := make(map[string]bool, len(exclude))
	for _, facet := range exclude {
		excluded[facet] = true
	}

	var (
		conditions []string
		args       []interface{}
	)
	for _, c := range s.clauses {
		if c.Facet != "" && excluded[c.Facet] {
			continue
		}
		p := c.Ticket
		if rel == RelationKB {
			p = c.KB
		}
		if p == nil {
			continue
		}
		conditions = append(conditions, p.SQL)
		args = append(args, p.Args...)
	}

	if len(conditions) == 0 {
		return "1=1", nil
	}
	return strings.Join(conditions, " AND "), args
}
