package models

// TicketModel is one aggregated summary row per distinct ticket.
// Timestamps are stored as fixed-format strings (YYYY-MM-DD HH:MM:SS)
// so they sort lexicographically; unparseable source values are NULL.
type TicketModel struct {
	TicketNumber      int64   `gorm:"column:ticket_number;primaryKey" json:"ticket_number"`
	TicketName        string  `gorm:"column:ticket_name;type:text;index:idx_tickets_name" json:"ticket_name"`
	Status            string  `gorm:"column:status;size:50;index" json:"status"`
	Subcategory       string  `gorm:"column:subcategory;size:100" json:"subcategory"`
	DateActionCreated *string `gorm:"column:date_action_created;size:19;index:idx_tickets_last_action,sort:desc" json:"date_action_created"`
	DateTicketCreated *string `gorm:"column:date_ticket_created;size:19" json:"date_ticket_created"`
	DateClosed        *string `gorm:"column:date_closed;size:19" json:"date_closed"`
	TicketType        string  `gorm:"column:ticket_type;size:100" json:"ticket_type"`
	Customers         string  `gorm:"column:customers;size:200" json:"customers"`
	AssignedTo        string  `gorm:"column:assigned_to;size:100" json:"assigned_to"`
	TicketSource      string  `gorm:"column:ticket_source;size:50" json:"ticket_source"`
	TicketOwner       string  `gorm:"column:ticket_owner;size:100" json:"ticket_owner"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (TicketModel) TableName() string {
	return "tickets"
}

// MessageModel is one externally visible action row. CleanedDescription
// is the normalizer output, computed once at import time.
type MessageModel struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	TicketNumber       int64   `gorm:"column:ticket_number;not null;index" json:"ticket_number"`
	ActionCreatorName  string  `gorm:"column:action_creator_name;size:100" json:"action_creator_name"`
	ActionType         string  `gorm:"column:action_type;size:50" json:"action_type"`
	DateActionCreated  *string `gorm:"column:date_action_created;size:19" json:"date_action_created"`
	ActionDescription  string  `gorm:"column:action_description;type:text" json:"-"`
	CleanedDescription string  `gorm:"column:cleaned_description;type:text" json:"-"`
	Role               string  `gorm:"column:role;size:20" json:"role"`
}

func (MessageModel) TableName() string {
	return "messages"
}
