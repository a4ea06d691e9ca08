package domain

// CategoryName holds the multilingual display names of a category.
type CategoryName struct {
	En string `json:"en"`
	Es string `json:"es"`
}

// Category is a user-scoped grouping for ledger entries, addressed by its
// human key (e.g. "food") within the owning user's scope.
type Category struct {
	CategoryID string       `json:"categoryID"`
	UserID     string       `json:"-"`
	Key        string       `json:"key"`
	Name       CategoryName `json:"name"`
	Color      string       `json:"color"`
	Icon       string       `json:"icon"`
	AuditFields
}
