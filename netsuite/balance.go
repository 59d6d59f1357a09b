/*
balance.go - Account balance summary for a period/subsidiary/book

PURPOSE:
  Three-step pipeline mirroring how reporting balances are assembled:
    1. resolve the accounting period row by name (id + end date),
    2. resolve the subsidiary through the name/id resolver,
    3. sum posted accounting lines for the account, book, and subsidiary
       through the period end, flipping sign for income-side accounts.

  Sums use decimal arithmetic; balances must never pick up float error.

SEE ALSO:
  - service.go: resolveSubsidiary
  - queries.go: escapeSQL
*/
package netsuite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finsheet/dimension-engine/dimension"
)

// ErrPeriodNotFound is returned when no accounting period matches the
// requested name.
var ErrPeriodNotFound = errors.New("accounting period not found")

// =============================================================================
// TYPES
// =============================================================================

// PeriodInfo is one accounting period row.
type PeriodInfo struct {
	ID        string
	Name      string
	StartDate string
	EndDate   string // YYYY-MM-DD
}

// BalanceSummary is the computed balance for one account/period/subsidiary/
// book combination.
type BalanceSummary struct {
	AccountNumber    string
	PeriodName       string
	SubsidiaryID     string
	AccountingBook   string
	Balance          decimal.Decimal
	TransactionCount int
}

// =============================================================================
// PERIOD RESOLUTION
// =============================================================================

// GetPeriod resolves an accounting period by its exact name.
func (s *LookupService) GetPeriod(ctx context.Context, periodName string) (*PeriodInfo, error) {
	query := fmt.Sprintf(
		`SELECT id, periodname, startdate, enddate FROM accountingperiod WHERE periodname = '%s' FETCH FIRST 1 ROWS ONLY`,
		escapeSQL(strings.TrimSpace(periodName)))

	rows, err := s.client.QueryRows(ctx, query)
	if err != nil {
		s.log.WithField("lookup", "period").WithError(err).Error("period query failed")
		return nil, fmt.Errorf("fetch period %q: %w", periodName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrPeriodNotFound, periodName)
	}

	r := rows[0]
	return &PeriodInfo{
		ID:        r.GetString("id"),
		Name:      r.GetString("periodname"),
		StartDate: isoDate(r.GetString("startdate")),
		EndDate:   isoDate(r.GetString("enddate")),
	}, nil
}

// isoDate trims a timestamp like "2025-05-31T00:00:00Z" to its date part.
func isoDate(s string) string {
	if i := strings.IndexByte(s, 'T'); i > 0 {
		return s[:i]
	}
	return s
}

// =============================================================================
// BALANCE
// =============================================================================

// GetBalance sums posted accounting lines for accountNumber through the end
// of the named period, scoped to one subsidiary and accounting book.
func (s *LookupService) GetBalance(ctx context.Context, accountNumber, periodName, subsidiary, book string) (*BalanceSummary, error) {
	if !dimension.IsNumericID(book) {
		return nil, fmt.Errorf("invalid accounting book id %q", book)
	}

	period, err := s.GetPeriod(ctx, periodName)
	if err != nil {
		return nil, err
	}

	subID, err := s.resolveSubsidiary(ctx, subsidiary)
	if err != nil {
		return nil, err
	}
	if !dimension.IsNumericID(subID) {
		return nil, fmt.Errorf("subsidiary %q did not resolve to an id", subsidiary)
	}

	query := fmt.Sprintf(`SELECT SUM(CASE WHEN a.accttype IN ('Income', 'OthIncome') THEN -tal.amount ELSE tal.amount END) AS balance,
COUNT(*) AS transactioncount
FROM transactionaccountingline tal
JOIN transaction t ON t.id = tal.transaction
JOIN account a ON a.id = tal.account
JOIN transactionline tl ON t.id = tl.transaction AND tal.transactionline = tl.id
WHERE t.posting = 'T'
  AND tal.posting = 'T'
  AND a.acctnumber = '%s'
  AND a.isinactive = 'F'
  AND tal.accountingbook = %s
  AND tl.subsidiary = %s
  AND t.trandate <= TO_DATE('%s', 'YYYY-MM-DD')`,
		escapeSQL(strings.TrimSpace(accountNumber)), book, subID, escapeSQL(period.EndDate))

	rows, err := s.client.QueryRows(ctx, query)
	if err != nil {
		s.log.WithField("lookup", "balance").WithError(err).Error("balance query failed")
		return nil, fmt.Errorf("fetch balance for account %s: %w", accountNumber, err)
	}

	summary := &BalanceSummary{
		AccountNumber:  strings.TrimSpace(accountNumber),
		PeriodName:     period.Name,
		SubsidiaryID:   subID,
		AccountingBook: book,
		Balance:        decimal.Zero,
	}
	if len(rows) == 0 {
		return summary, nil
	}

	r := rows[0]
	if raw := r.GetString("balance"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("unparseable balance %q: %w", raw, err)
		}
		summary.Balance = amount
	}
	summary.TransactionCount = r.GetInt("transactioncount")
	return summary, nil
}
