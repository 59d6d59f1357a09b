package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/finsheet/dimension-engine/dimension"
)

func newLookupsCmd() *cobra.Command {
	var subsidiary string

	cmd := &cobra.Command{
		Use:   "lookups [type]",
		Short: "List one dimension, or all dimensions when no type is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			if len(args) == 0 {
				all, err := svc.GetAllLookups(ctx)
				if err != nil {
					return err
				}
				return writeJSON(all)
			}

			switch args[0] {
			case "subsidiaries":
				items, err := svc.GetSubsidiaries(ctx)
				if err != nil {
					return err
				}
				return writeJSON(items)
			case "departments":
				items, err := svc.GetDepartments(ctx)
				if err != nil {
					return err
				}
				return writeJSON(items)
			case "classes":
				items, err := svc.GetClasses(ctx)
				if err != nil {
					return err
				}
				return writeJSON(items)
			case "locations":
				items, err := svc.GetLocations(ctx)
				if err != nil {
					return err
				}
				return writeJSON(items)
			case "accountingbooks":
				items, err := svc.GetAccountingBooks(ctx)
				if err != nil {
					return err
				}
				return writeJSON(items)
			case "budgetcategories":
				items, err := svc.GetBudgetCategories(ctx)
				if err != nil {
					return err
				}
				return writeJSON(items)
			case "currencies":
				items, err := svc.GetCurrencies(ctx, subsidiary)
				if err != nil {
					return err
				}
				return writeJSON(items)
			default:
				return fmt.Errorf("unknown lookup type %q", args[0])
			}
		},
	}

	cmd.Flags().StringVar(&subsidiary, "subsidiary", "", "Scope currencies to one subsidiary's ancestry")
	return cmd
}

func newResolveCmd() *cobra.Command {
	var typeName string

	cmd := &cobra.Command{
		Use:   "resolve <name-or-id>",
		Short: "Resolve a dimension name or id to its canonical identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			typ, ok := dimension.ParseType(typeName)
			if !ok {
				return fmt.Errorf("unknown dimension type %q", typeName)
			}

			svc, _, err := newService()
			if err != nil {
				return err
			}

			id, found, err := svc.ResolveDimensionID(cmd.Context(), typ, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no %s matches %q", typ, args[0])
			}
			return writeJSON(map[string]string{"type": string(typ), "query": args[0], "id": id})
		},
	}

	cmd.Flags().StringVar(&typeName, "type", "subsidiary", "Dimension type (subsidiary, department, class, location)")
	return cmd
}

func newAncestorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ancestors <subsidiary>",
		Short: "Print a subsidiary's ancestor chain, immediate parent first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}
			chain, err := svc.GetSubsidiaryAncestors(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(map[string]any{"subsidiary": args[0], "ancestors": chain})
		},
	}
}

func newDescendantsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "descendants <subsidiary>",
		Short: "Print a subsidiary and everything below it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}
			ids, err := svc.GetSubsidiaryDescendants(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return writeJSON(map[string]any{"subsidiary": args[0], "descendants": ids})
		},
	}
}

func newConsolidationRootCmd() *cobra.Command {
	var currency, subsidiary string

	cmd := &cobra.Command{
		Use:   "root",
		Short: "Find the consolidation root for a currency above a subsidiary",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService()
			if err != nil {
				return err
			}
			root, ok, err := svc.ResolveCurrencyToConsolidationRoot(cmd.Context(), currency, subsidiary)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("no valid %s consolidation root above subsidiary %s", currency, subsidiary)
			}
			return writeJSON(map[string]string{
				"currency":   currency,
				"subsidiary": subsidiary,
				"root_id":    root,
			})
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "Currency code (required)")
	cmd.Flags().StringVar(&subsidiary, "subsidiary", "", "Subsidiary name or id (required)")
	_ = cmd.MarkFlagRequired("currency")
	_ = cmd.MarkFlagRequired("subsidiary")
	return cmd
}
