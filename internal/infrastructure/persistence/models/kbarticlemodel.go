package models

// KBArticleModel is one canned-response knowledge-base article,
// imported from the tabular KB export into its own store file. A
// companion FTS5 index over title/body text/categories is maintained
// by triggers; both are created with raw DDL at import time since
// virtual tables are outside gorm's migration surface.
type KBArticleModel struct {
	ID                 int64   `gorm:"primaryKey" json:"id"`
	TicketNumber       *int64  `gorm:"column:ticket_number;index" json:"ticket_number"`
	Title              string  `gorm:"column:title;type:text;not null" json:"title"`
	Body               string  `gorm:"column:body;type:text;not null" json:"body"`
	BodyText           string  `gorm:"column:body_text;type:text" json:"-"`
	Author             string  `gorm:"column:author;size:100" json:"author"`
	CategoryName       string  `gorm:"column:category_name;size:100;index" json:"category_name"`
	ParentCategoryName string  `gorm:"column:parent_category_name;size:100;index" json:"parent_category_name"`
	DateCreated        *string `gorm:"column:date_created;size:19" json:"date_created"`
	DateModified       *string `gorm:"column:date_modified;size:19" json:"date_modified"`
}

func (KBArticleModel) TableName() string {
	return "kb_articles"
}
