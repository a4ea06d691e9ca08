package query

// ResourceSpec configures the composer for one search surface. The
// counterparty field is named differently per resource ("payee" for expenses,
// "source" for incomes); carrying the name here keeps the composer
// resource-agnostic without reflection.
type ResourceSpec struct {
	ResponseKey       string
	CounterpartyField string
	SortFields        []string
	DefaultSortBy     string

	// HasMoreFromReturned selects the returned-count pagination variant used
	// by the unified transactions resource.
	HasMoreFromReturned bool
}

// Sort is a validated sort selection.
type Sort struct {
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// sortColumns maps API sort field names to ledger_entries columns. Only
// fields present here may ever reach ORDER BY.
var sortColumns = map[string]string{
	"date":      "entry_date",
	"amount":    "amount",
	"title":     "title",
	"createdAt": "created_at",
}

// ParseSort validates sortBy against the resource's allow-list, silently
// falling back to the spec default; order defaults to descending.
func ParseSort(sortBy, sortOrder string, spec ResourceSpec) Sort {
	field := spec.DefaultSortBy
	for _, allowed := range spec.SortFields {
		if sortBy == allowed {
			field = sortBy
			break
		}
	}
	order := "desc"
	if sortOrder == "asc" {
		order = "asc"
	}
	return Sort{SortBy: field, SortOrder: order}
}

// OrderBySQL renders the ORDER BY clause for a validated sort.
func (s Sort) OrderBySQL() string {
	return s.OrderBySQLPrefixed("")
}

// OrderBySQLPrefixed renders the ORDER BY clause with a table alias prefix on
// the column, for queries that wrap the filtered table in a join.
func (s Sort) OrderBySQLPrefixed(prefix string) string {
	column, ok := sortColumns[s.SortBy]
	if !ok {
		column = "entry_date"
	}
	direction := "DESC"
	if s.SortOrder == "asc" {
		direction = "ASC"
	}
	return " ORDER BY " + prefix + column + " " + direction
}
