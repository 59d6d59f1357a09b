/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON shapes for the lookup API. These types decouple the internal
  dimension model from the wire contract: the NodeKind tag flattens to
  the boolean isConsolidated clients expect, and fullName/parent
  serialize as omitted fields when the backend reported no value.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - dimension/types.go: Source shapes
*/
package api

import (
	"github.com/finsheet/dimension-engine/dimension"
	"github.com/finsheet/dimension-engine/netsuite"
)

// =============================================================================
// LOOKUP DTOS
// =============================================================================

// DimensionDTO represents a flat dimension item (department, class, location).
type DimensionDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"full_name,omitempty"`
	Parent   string `json:"parent,omitempty"`
}

// SubsidiaryDTO represents one subsidiary tree node.
type SubsidiaryDTO struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	FullName       string `json:"full_name,omitempty"`
	Parent         string `json:"parent,omitempty"`
	Currency       string `json:"currency,omitempty"`
	CurrencySymbol string `json:"currency_symbol,omitempty"`
	Depth          int    `json:"depth"`
	IsConsolidated bool   `json:"is_consolidated"`
	IsElimination  bool   `json:"is_elimination"`
}

// CurrencyDTO represents one currency. Name is the ISO code.
type CurrencyDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol,omitempty"`
}

// AccountingBookDTO represents one accounting book.
type AccountingBookDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsPrimary bool   `json:"is_primary"`
}

// BudgetCategoryDTO represents one budget category.
type BudgetCategoryDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AccountDTO represents one ledger account in search results.
type AccountDTO struct {
	ID           string `json:"id"`
	Number       string `json:"number"`
	Name         string `json:"name"`
	FullName     string `json:"full_name,omitempty"`
	Type         string `json:"type"`
	SpecialType  string `json:"special_type,omitempty"`
	ParentNumber string `json:"parent_number,omitempty"`
}

// AllLookupsDTO joins every dimension snapshot in one payload.
type AllLookupsDTO struct {
	Subsidiaries     []SubsidiaryDTO     `json:"subsidiaries"`
	Departments      []DimensionDTO      `json:"departments"`
	Classes          []DimensionDTO      `json:"classes"`
	Locations        []DimensionDTO      `json:"locations"`
	AccountingBooks  []AccountingBookDTO `json:"accounting_books"`
	BudgetCategories []BudgetCategoryDTO `json:"budget_categories"`
	Currencies       []CurrencyDTO       `json:"currencies"`
}

// =============================================================================
// RESOLUTION / CONSOLIDATION DTOS
// =============================================================================

// ResolveDTO is the answer to a name/id resolution.
type ResolveDTO struct {
	Type  string `json:"type"`
	Query string `json:"query"`
	ID    string `json:"id"`
}

// AncestorsDTO carries an ancestor chain, immediate parent first.
type AncestorsDTO struct {
	SubsidiaryID string   `json:"subsidiary_id"`
	Ancestors    []string `json:"ancestors"`
}

// DescendantsDTO carries a descendant set including the subsidiary itself.
type DescendantsDTO struct {
	SubsidiaryID string   `json:"subsidiary_id"`
	Descendants  []string `json:"descendants"`
}

// ConsolidationRootDTO names the resolved consolidation root.
type ConsolidationRootDTO struct {
	Currency     string `json:"currency"`
	SubsidiaryID string `json:"subsidiary_id"`
	RootID       string `json:"root_id"`
}

// BalanceSummaryDTO is a computed account balance. Balance is a decimal
// string so clients never round it through a float.
type BalanceSummaryDTO struct {
	Account          string `json:"account"`
	Period           string `json:"period"`
	SubsidiaryID     string `json:"subsidiary_id"`
	AccountingBook   string `json:"accounting_book"`
	Balance          string `json:"balance"`
	TransactionCount int    `json:"transaction_count"`
}

// QueryRequest is the ad-hoc query passthrough body.
type QueryRequest struct {
	Q string `json:"q"`
}

// QueryResponse wraps ad-hoc query results.
type QueryResponse struct {
	Results []map[string]any `json:"results"`
	Count   int              `json:"count"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toSubsidiaryDTOs(items []dimension.SubsidiaryItem) []SubsidiaryDTO {
	dtos := make([]SubsidiaryDTO, len(items))
	for i, s := range items {
		dtos[i] = SubsidiaryDTO{
			ID:             s.ID,
			Name:           s.Name,
			FullName:       s.FullName,
			Parent:         s.ParentID,
			Currency:       s.Currency,
			CurrencySymbol: s.CurrencySymbol,
			Depth:          s.Depth,
			IsConsolidated: s.IsConsolidated(),
			IsElimination:  s.IsElimination,
		}
	}
	return dtos
}

func toDimensionDTOs(items []dimension.DimensionItem) []DimensionDTO {
	dtos := make([]DimensionDTO, len(items))
	for i, d := range items {
		dtos[i] = DimensionDTO{ID: d.ID, Name: d.Name, FullName: d.FullName, Parent: d.ParentID}
	}
	return dtos
}

func toCurrencyDTOs(items []dimension.CurrencyItem) []CurrencyDTO {
	dtos := make([]CurrencyDTO, len(items))
	for i, c := range items {
		dtos[i] = CurrencyDTO{ID: c.ID, Name: c.Name, Symbol: c.Symbol}
	}
	return dtos
}

func toAccountingBookDTOs(items []dimension.AccountingBookItem) []AccountingBookDTO {
	dtos := make([]AccountingBookDTO, len(items))
	for i, b := range items {
		dtos[i] = AccountingBookDTO{ID: b.ID, Name: b.Name, IsPrimary: b.IsPrimary}
	}
	return dtos
}

func toBudgetCategoryDTOs(items []dimension.BudgetCategoryItem) []BudgetCategoryDTO {
	dtos := make([]BudgetCategoryDTO, len(items))
	for i, b := range items {
		dtos[i] = BudgetCategoryDTO{ID: b.ID, Name: b.Name}
	}
	return dtos
}

func toAccountDTOs(items []dimension.AccountItem) []AccountDTO {
	dtos := make([]AccountDTO, len(items))
	for i, a := range items {
		dtos[i] = AccountDTO{
			ID:           a.ID,
			Number:       a.Number,
			Name:         a.Name,
			FullName:     a.FullName,
			Type:         a.Type,
			SpecialType:  a.SpecialType,
			ParentNumber: a.ParentNumber,
		}
	}
	return dtos
}

func toAllLookupsDTO(l *netsuite.Lookups) AllLookupsDTO {
	return AllLookupsDTO{
		Subsidiaries:     toSubsidiaryDTOs(l.Subsidiaries),
		Departments:      toDimensionDTOs(l.Departments),
		Classes:          toDimensionDTOs(l.Classes),
		Locations:        toDimensionDTOs(l.Locations),
		AccountingBooks:  toAccountingBookDTOs(l.AccountingBooks),
		BudgetCategories: toBudgetCategoryDTOs(l.BudgetCategories),
		Currencies:       toCurrencyDTOs(l.Currencies),
	}
}

func toBalanceSummaryDTO(b *netsuite.BalanceSummary) BalanceSummaryDTO {
	return BalanceSummaryDTO{
		Account:          b.AccountNumber,
		Period:           b.PeriodName,
		SubsidiaryID:     b.SubsidiaryID,
		AccountingBook:   b.AccountingBook,
		Balance:          b.Balance.String(),
		TransactionCount: b.TransactionCount,
	}
}
