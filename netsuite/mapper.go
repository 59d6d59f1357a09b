/*
mapper.go - Raw query rows to typed entities

PURPOSE:
  Query rows arrive as dynamically-shaped records. Every expected field is
  decoded explicitly with a stated default: absent string -> "", absent
  flag -> false. Rows without an id are dropped; a valid row never has an
  empty id.

SEE ALSO:
  - suiteql/client.go: Row accessors
  - dimension/types.go: Target shapes
*/
package netsuite

import (
	"github.com/finsheet/dimension-engine/dimension"
	"github.com/finsheet/dimension-engine/suiteql"
)

// =============================================================================
// DIMENSION ROWS
// =============================================================================

func mapDimensionRows(rows []suiteql.Row) []dimension.DimensionItem {
	items := make([]dimension.DimensionItem, 0, len(rows))
	for _, r := range rows {
		id := r.GetString("id")
		if id == "" {
			continue
		}
		items = append(items, dimension.DimensionItem{
			ID:       id,
			Name:     r.GetString("name"),
			FullName: r.GetString("fullname"),
			ParentID: r.GetString("parent"),
		})
	}
	return items
}

func mapSubsidiaryRows(rows []suiteql.Row) []dimension.SubsidiaryItem {
	items := make([]dimension.SubsidiaryItem, 0, len(rows))
	for _, r := range rows {
		id := r.GetString("id")
		if id == "" {
			continue
		}
		items = append(items, dimension.SubsidiaryItem{
			DimensionItem: dimension.DimensionItem{
				ID:       id,
				Name:     r.GetString("name"),
				FullName: r.GetString("fullname"),
				ParentID: r.GetString("parent"),
			},
			Currency:       r.GetString("currencycode"),
			CurrencySymbol: r.GetString("currencysymbol"),
			Kind:           dimension.KindPrimary,
			// The upstream elimination flag is unreliable; default false.
			IsElimination: false,
		})
	}
	return items
}

// =============================================================================
// FLAT LOOKUP ROWS
// =============================================================================

func mapCurrencyRows(rows []suiteql.Row) []dimension.CurrencyItem {
	items := make([]dimension.CurrencyItem, 0, len(rows))
	for _, r := range rows {
		id := r.GetString("id")
		if id == "" {
			continue
		}
		items = append(items, dimension.CurrencyItem{
			ID:     id,
			Name:   r.GetString("name"),
			Symbol: r.GetString("symbol"),
		})
	}
	return items
}

func mapAccountingBookRows(rows []suiteql.Row) []dimension.AccountingBookItem {
	items := make([]dimension.AccountingBookItem, 0, len(rows))
	for _, r := range rows {
		id := r.GetString("id")
		if id == "" {
			continue
		}
		items = append(items, dimension.AccountingBookItem{
			ID:        id,
			Name:      r.GetString("name"),
			IsPrimary: r.GetBool("isprimary"),
		})
	}
	return items
}

func mapBudgetCategoryRows(rows []suiteql.Row) []dimension.BudgetCategoryItem {
	items := make([]dimension.BudgetCategoryItem, 0, len(rows))
	for _, r := range rows {
		id := r.GetString("id")
		if id == "" {
			continue
		}
		items = append(items, dimension.BudgetCategoryItem{
			ID:   id,
			Name: r.GetString("name"),
		})
	}
	return items
}

// =============================================================================
// ACCOUNT ROWS
// =============================================================================

func mapAccountRows(rows []suiteql.Row) []dimension.AccountItem {
	items := make([]dimension.AccountItem, 0, len(rows))
	for _, r := range rows {
		id := r.GetString("id")
		if id == "" {
			continue
		}
		items = append(items, dimension.AccountItem{
			ID:           id,
			Number:       r.GetString("acctnumber"),
			Name:         r.GetString("displayname"),
			FullName:     r.GetString("fullname"),
			Type:         r.GetString("accttype"),
			SpecialType:  r.GetString("sspecacct"),
			ParentNumber: r.GetString("parentnumber"),
		})
	}
	return items
}
