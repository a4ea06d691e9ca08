package models

// Category mirrors the categories table.
type Category struct {
	CategoryID string
	UserID     string
	Key        string
	NameEn     string
	NameEs     string
	Color      string
	Icon       string
	AuditFields
}
