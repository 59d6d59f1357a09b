/*
queries.go - SuiteQL text for the lookup pipeline

PURPOSE:
  All query text in one place. Queries never embed ORDER BY; ordering is
  passed separately to the transport so pagination stays deterministic
  (fetch order is ascending FullName, which is what makes name resolution
  ties deterministic).

SEE ALSO:
  - mapper.go: Row decoding for these result shapes
  - service.go: Cache-backed execution
*/
package netsuite

import "strings"

// =============================================================================
// LOOKUP QUERIES
// =============================================================================

const (
	querySubsidiaries = `SELECT s.id, s.name, s.fullname, s.parent, c.name AS currencycode, c.symbol AS currencysymbol
FROM subsidiary s
LEFT JOIN currency c ON c.id = s.currency
WHERE s.isinactive = 'F'`

	queryDepartments = `SELECT id, name, fullname, parent FROM department WHERE isinactive = 'F'`

	queryClasses = `SELECT id, name, fullname, parent FROM classification WHERE isinactive = 'F'`

	queryLocations = `SELECT id, name, fullname, parent FROM location WHERE isinactive = 'F'`

	queryAccountingBooks = `SELECT id, name, isprimary FROM accountingbook`

	queryBudgetCategories = `SELECT id, name FROM budgetcategory`

	queryCurrencies = `SELECT id, name, symbol FROM currency WHERE isinactive = 'F'`
)

// queryBookSubsidiaries lists subsidiaries configured on one accounting book
// via the book-subsidiary sublist.
const queryBookSubsidiaries = `SELECT s.id, s.name, s.fullname, s.parent, c.name AS currencycode, c.symbol AS currencysymbol
FROM accountingbooksubsidiaries abs
JOIN subsidiary s ON s.id = abs.subsidiary
LEFT JOIN currency c ON c.id = s.currency
WHERE abs.accountingbook = `

// =============================================================================
// SQL HELPERS
// =============================================================================

// escapeSQL doubles single quotes; the only quoting the backend understands.
func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
