package handlers

import (
	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/finledger/finledger/internal/query"
	"github.com/gin-gonic/gin"
)

// expenseSpec names the counterparty parameter "payee" on the expense
// resource.
var expenseSpec = query.ResourceSpec{
	ResponseKey:       "expenses",
	CounterpartyField: "payee",
	SortFields:        []string{"date", "amount", "title", "createdAt"},
	DefaultSortBy:     "date",
}

// registerExpenseRoutes registers the typed expense search.
//
// searchExpenses godoc
// @Summary Search expenses
// @Description Searches the caller's expense entries with the common filter set; the counterparty filter is named "payee" here
// @Tags expenses
// @Produce json
// @Param title query string false "Substring match on title"
// @Param description query string false "Substring match on description"
// @Param dateFrom query string false "Inclusive start date"
// @Param dateTo query string false "Inclusive end date"
// @Param amountMin query number false "Inclusive lower amount bound"
// @Param amountMax query number false "Inclusive upper amount bound"
// @Param currency query string false "Exact currency match"
// @Param category query string false "Category key"
// @Param payee query string false "Counterparty key"
// @Param periodicity query string false "Recurrence filter"
// @Param tags query []string false "Tag keys, any-match"
// @Param sortBy query string false "date, amount, title or createdAt"
// @Param sortOrder query string false "asc or desc"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param includeTotal query bool false "Also total amount over the full filter set"
// @Success 200 {object} map[string]interface{} "expenses, pagination, filters, sort, totalAmount?"
// @Failure 400 {object} map[string]string "Invalid filters or unknown reference"
// @Security BearerAuth
// @Router /expenses/search [get]
func registerExpenseRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	expenses := rg.Group("/expenses")
	{
		expenses.GET("/search", searchEntries(ledgerService, expenseSpec, "expense"))
	}
}
