/*
accounts.go - Free-text account search

PURPOSE:
  Translates user-supplied account patterns into SuiteQL predicates:

  Number pattern:
    "4*"   -> acctnumber LIKE '4%'
    "*"    -> every active account
    "100"  -> acctnumber LIKE '100%'   (bare input gets an implicit
                                        trailing wildcard: prefix match)

  Type pattern:
    exact account type ("AcctRec")    -> accttype = 'AcctRec'
    category keyword ("BALANCE")      -> accttype IN (...)
    partial category ("liab")         -> union of matching categories
    anything else                     -> UPPER(accttype) LIKE pattern

  Only active accounts are searched.

SEE ALSO:
  - queries.go: escapeSQL
  - mapper.go: mapAccountRows
*/
package netsuite

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/finsheet/dimension-engine/dimension"
)

// =============================================================================
// TYPE CATEGORY KEYWORDS
// =============================================================================

// accountTypeCategories maps reporting keywords to the backend's account
// type names. BALANCE/BALANCESHEET intentionally share one list.
var accountTypeCategories = map[string][]string{
	"INCOME": {"Income", "OthIncome", "COGS", "Cost of Goods Sold", "Expense", "OthExpense"},
	"BALANCE": {"Bank", "AcctRec", "OthCurrAsset", "FixedAsset", "OthAsset", "DeferExpense", "UnbilledRec",
		"AcctPay", "CredCard", "OthCurrLiab", "LongTermLiab", "DeferRevenue",
		"Equity", "RetainedEarnings"},
	"BALANCESHEET": {"Bank", "AcctRec", "OthCurrAsset", "FixedAsset", "OthAsset", "DeferExpense", "UnbilledRec",
		"AcctPay", "CredCard", "OthCurrLiab", "LongTermLiab", "DeferRevenue",
		"Equity", "RetainedEarnings"},
	"EXPENSE":   {"Expense", "OthExpense"},
	"COGS":      {"COGS", "Cost of Goods Sold"},
	"ASSET":     {"Bank", "AcctRec", "OthCurrAsset", "FixedAsset", "OthAsset", "DeferExpense", "UnbilledRec"},
	"LIABILITY": {"AcctPay", "CredCard", "OthCurrLiab", "LongTermLiab", "DeferRevenue"},
	"EQUITY":    {"Equity", "RetainedEarnings"},
}

// =============================================================================
// SEARCH
// =============================================================================

const queryAccountsBase = `SELECT a.id, a.acctnumber, a.accountsearchdisplaynamecopy AS displayname, a.fullname, a.accttype, a.sspecacct, p.acctnumber AS parentnumber
FROM account a
LEFT JOIN account p ON p.id = a.parent
WHERE a.isinactive = 'F'`

// SearchAccounts returns active accounts matching the given number and/or
// type patterns. Empty patterns are unconstrained.
func (s *LookupService) SearchAccounts(ctx context.Context, numberPattern, typePattern string) ([]dimension.AccountItem, error) {
	query := queryAccountsBase
	if clause := numberClause(numberPattern); clause != "" {
		query += " AND " + clause
	}
	if clause := typeClause(typePattern); clause != "" {
		query += " AND " + clause
	}

	rows, err := s.client.QueryPaginated(ctx, query, "a.acctnumber")
	if err != nil {
		s.log.WithField("lookup", "accounts").WithError(err).Error("account search failed")
		return nil, fmt.Errorf("search accounts: %w", err)
	}
	return mapAccountRows(rows), nil
}

// numberClause builds the acctnumber predicate. "*" alone matches everything
// and produces no clause.
func numberClause(pattern string) string {
	p := strings.TrimSpace(pattern)
	if p == "" {
		return ""
	}
	like := wildcardToLike(p)
	if like == "%" {
		return ""
	}
	return fmt.Sprintf("a.acctnumber LIKE '%s'", escapeSQL(like))
}

// wildcardToLike maps "*" to "%"; bare input gets an implicit trailing
// wildcard so "100" means prefix match.
func wildcardToLike(p string) string {
	if !strings.Contains(p, "*") {
		return p + "%"
	}
	return strings.ReplaceAll(p, "*", "%")
}

// typeClause builds the accttype predicate, preferring exact type names,
// then category keywords, then partial category matches, with a LIKE
// fallback for anything unrecognized.
func typeClause(pattern string) string {
	p := strings.ToUpper(strings.TrimSpace(strings.ReplaceAll(pattern, "*", "")))
	if p == "" {
		return ""
	}

	// Exact type names beat category keywords: "Income" and "Expense" are
	// both, and a literal type name means that type alone.
	if exact, ok := exactAccountType(p); ok {
		return fmt.Sprintf("a.accttype = '%s'", escapeSQL(exact))
	}

	if types, ok := accountTypeCategories[p]; ok {
		return inClause(types)
	}

	var partial []string
	seen := map[string]bool{}
	for category, types := range accountTypeCategories {
		if strings.HasPrefix(category, p) || strings.Contains(category, p) {
			for _, t := range types {
				if !seen[t] {
					seen[t] = true
					partial = append(partial, t)
				}
			}
		}
	}
	if len(partial) > 0 {
		sort.Strings(partial) // map iteration order is random; keep SQL stable
		return inClause(partial)
	}

	like := wildcardToLike(strings.ToUpper(strings.TrimSpace(pattern)))
	return fmt.Sprintf("UPPER(a.accttype) LIKE '%s'", escapeSQL(like))
}

// exactAccountType finds a backend type name equal to p, case-insensitively.
func exactAccountType(p string) (string, bool) {
	for _, types := range accountTypeCategories {
		for _, t := range types {
			if strings.EqualFold(t, p) {
				return t, true
			}
		}
	}
	return "", false
}

func inClause(types []string) string {
	escaped := make([]string, len(types))
	for i, t := range types {
		escaped[i] = escapeSQL(t)
	}
	return fmt.Sprintf("a.accttype IN ('%s')", strings.Join(escaped, "','"))
}
