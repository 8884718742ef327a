package browse

import (
	"time"

	"supportarchive/internal/shared/constants"
)

// Named relative date windows. Relative windows resolve against
// wall-clock time when the query runs, never at import time.
const (
	WindowToday     = "today"
	Window7Days     = "7d"
	Window30Days    = "30d"
	WindowThisWeek  = "this_week"
	WindowThisMonth = "this_month"
	WindowCustom    = "custom"
)

// DateWindow is either a named relative window or a custom start/end
// pair of YYYY-MM-DD dates (either side may be open).
type DateWindow struct {
	Preset string
	Start  string
	End    string
}

func (w DateWindow) IsZero() bool {
	return w.Preset == "" || (w.Preset == WindowCustom && w.Start == "" && w.End == "")
}

// Bounds resolves the window to inclusive storage-format bounds. An
// empty bound means that side is open. ok is false for unknown presets
// and empty windows.
func (w DateWindow) Bounds(now time.Time) (start, end string, ok bool) {
	if w.IsZero() {
		return "", "", false
	}

	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch w.Preset {
	case WindowToday:
		return midnight.Format(constants.TimestampLayout), "", true
	case Window7Days:
		return midnight.AddDate(0, 0, -7).Format(constants.TimestampLayout), "", true
	case Window30Days:
		return midnight.AddDate(0, 0, -30).Format(constants.TimestampLayout), "", true
	case WindowThisWeek:
		// Weeks start on Monday.
		offset := (int(midnight.Weekday()) + 6) % 7
		return midnight.AddDate(0, 0, -offset).Format(constants.TimestampLayout), "", true
	case WindowThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return first.Format(constants.TimestampLayout), "", true
	case WindowCustom:
		if w.Start != "" {
			start = w.Start + " 00:00:00"
		}
		if w.End != "" {
			end = w.End + " 23:59:59"
		}
		return start, end, true
	default:
		return "", "", false
	}
}

// windowPredicate renders the window as a bound range condition over
// expr, which may be a column or an expression such as a COALESCE.
func windowPredicate(expr string, w DateWindow, now time.Time) *Predicate {
	start, end, ok := w.Bounds(now)
	if !ok {
		return nil
	}
	switch {
	case start != "" && end != "":
		return &Predicate{SQL: expr + " >= ? AND " + expr + " <= ?", Args: []interface{}{start, end}}
	case start != "":
		return &Predicate{SQL: expr + " >= ?", Args: []interface{}{start}}
	case end != "":
		return &Predicate{SQL: expr + " <= ?", Args: []interface{}{end}}
	default:
		return nil
	}
}
