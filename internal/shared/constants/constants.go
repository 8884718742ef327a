package constants

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// AllowedPageSizes is the fixed set of page sizes the browse view accepts.
// Anything else falls back to DefaultPageSize.
var AllowedPageSizes = map[int]bool{
	10:  true,
	20:  true,
	25:  true,
	50:  true,
	100: true,
}

const (
	// KBStatus is the synthetic status knowledge-base rows carry in the
	// unified browse view. Selecting it as a status filter excludes all
	// real tickets.
	KBStatus = "Canned Response"

	// KBSourceLabel is the fixed source label for knowledge-base rows.
	KBSourceLabel = "Knowledge Base"

	// UnknownOwner is assigned to tickets with no opening "Description"
	// action.
	UnknownOwner = "Unknown"

	// HelpRootLabel is the fixed first segment of help-article
	// breadcrumb paths; navigation groups by the segment after it.
	HelpRootLabel = "Support Home"
)

// RoleAgent and RoleCustomer classify message authors per action row.
const (
	RoleAgent    = "Agent"
	RoleCustomer = "Customer"
)

// TimestampLayout is the storage format for all timestamps. It sorts
// lexicographically.
const TimestampLayout = "2006-01-02 15:04:05"

// SourceTimestampLayout is the format ticket-action exports use.
const SourceTimestampLayout = "1/2/2006 3:04 PM"
