package models

// HelpArticleModel is one imported help-center document. Breadcrumbs
// is a " > " separated path whose first segment is the fixed root
// label; IntendedUsers is the comma-joined audience list from the
// source document. BodyText is the plain-text extraction of Body used
// by the FTS index.
type HelpArticleModel struct {
	ID            int64  `gorm:"primaryKey" json:"id"`
	Title         string `gorm:"column:title;type:text;not null;index" json:"title"`
	Breadcrumbs   string `gorm:"column:breadcrumbs;type:text" json:"breadcrumbs"`
	IntendedUsers string `gorm:"column:intended_users;size:200" json:"intended_users"`
	Path          string `gorm:"column:path;type:text;index" json:"path"`
	Body          string `gorm:"column:body;type:text;not null" json:"body"`
	BodyText      string `gorm:"column:body_text;type:text" json:"-"`
	Filename      string `gorm:"column:filename;size:255" json:"filename"`
	CreatedAt     string `gorm:"column:created_at;size:19" json:"created_at"`
	UpdatedAt     string `gorm:"column:updated_at;size:19" json:"updated_at"`
}

func (HelpArticleModel) TableName() string {
	return "help_articles"
}
