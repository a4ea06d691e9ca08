package handlers

import (
	portssvc "github.com/finledger/finledger/internal/core/ports/services"
	"github.com/finledger/finledger/internal/query"
	"github.com/gin-gonic/gin"
)

// incomeSpec names the counterparty parameter "source" on the income
// resource.
var incomeSpec = query.ResourceSpec{
	ResponseKey:       "incomes",
	CounterpartyField: "source",
	SortFields:        []string{"date", "amount", "title", "createdAt"},
	DefaultSortBy:     "date",
}

// registerIncomeRoutes registers the typed income search.
//
// searchIncomes godoc
// @Summary Search incomes
// @Description Searches the caller's income entries with the common filter set; the counterparty filter is named "source" here
// @Tags incomes
// @Produce json
// @Param source query string false "Counterparty key"
// @Param sortBy query string false "date, amount, title or createdAt"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Param includeTotal query bool false "Also total amount over the full filter set"
// @Success 200 {object} map[string]interface{} "incomes, pagination, filters, sort, totalAmount?"
// @Failure 400 {object} map[string]string "Invalid filters or unknown reference"
// @Security BearerAuth
// @Router /incomes/search [get]
func registerIncomeRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	incomes := rg.Group("/incomes")
	{
		incomes.GET("/search", searchEntries(ledgerService, incomeSpec, "income"))
	}
}
