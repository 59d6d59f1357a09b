package main

import (
	"github.com/spf13/cobra"
)

func newQueryCmd() *cobra.Command {
	var paginate bool
	var orderBy string

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run an ad-hoc query against the backend and print rows as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := newService()
			if err != nil {
				return err
			}

			if paginate {
				rows, err := client.QueryPaginated(cmd.Context(), args[0], orderBy)
				if err != nil {
					return err
				}
				return writeJSON(rows)
			}
			rows, err := client.QueryRows(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(rows)
		},
	}

	cmd.Flags().BoolVar(&paginate, "paginate", false, "Walk every result page")
	cmd.Flags().StringVar(&orderBy, "order-by", "id", "Sort column for stable pagination (with --paginate)")
	return cmd
}

func newAccountsCmd() *cobra.Command {
	var number, accountType string

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Search active ledger accounts by number and type patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}
			accounts, err := svc.SearchAccounts(cmd.Context(), number, accountType)
			if err != nil {
				return err
			}
			return writeJSON(accounts)
		},
	}

	cmd.Flags().StringVar(&number, "number", "", "Account number pattern, * matches any run of digits")
	cmd.Flags().StringVar(&accountType, "type", "", "Account type or category keyword (Income, Expense, Balance, ...)")
	return cmd
}

func newBalanceCmd() *cobra.Command {
	var account, period, subsidiary, book string

	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Sum posted lines for an account through a period end",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}
			summary, err := svc.GetBalance(cmd.Context(), account, period, subsidiary, book)
			if err != nil {
				return err
			}
			return writeJSON(map[string]any{
				"account":           summary.AccountNumber,
				"period":            summary.PeriodName,
				"subsidiary_id":     summary.SubsidiaryID,
				"accounting_book":   summary.AccountingBook,
				"balance":           summary.Balance.String(),
				"transaction_count": summary.TransactionCount,
			})
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "Account number (required)")
	cmd.Flags().StringVar(&period, "period", "", "Accounting period name, e.g. \"May 2025\" (required)")
	cmd.Flags().StringVar(&subsidiary, "subsidiary", "", "Subsidiary name or id (required)")
	cmd.Flags().StringVar(&book, "book", "1", "Accounting book id")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("period")
	_ = cmd.MarkFlagRequired("subsidiary")
	return cmd
}
