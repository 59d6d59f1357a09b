package main

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/finsheet/dimension-engine/cache"
	"github.com/finsheet/dimension-engine/config"
	"github.com/finsheet/dimension-engine/netsuite"
	"github.com/finsheet/dimension-engine/suiteql"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dimql",
		Short: "Query dimension lookups and run ad-hoc queries against the accounting backend",
	}
	cmd.AddCommand(newQueryCmd())
	cmd.AddCommand(newLookupsCmd())
	cmd.AddCommand(newResolveCmd())
	cmd.AddCommand(newAncestorsCmd())
	cmd.AddCommand(newDescendantsCmd())
	cmd.AddCommand(newConsolidationRootCmd())
	cmd.AddCommand(newAccountsCmd())
	cmd.AddCommand(newBalanceCmd())
	return cmd
}

func execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newService builds a lookup service with credentials from the environment.
// CLI runs are one-shot, so the cache backend is always in-process memory.
func newService() (*netsuite.LookupService, suiteql.Client, error) {
	cfg, err := config.Load(".env", ".env.local")
	if err != nil {
		return nil, nil, err
	}

	log := logrus.New()
	log.SetOutput(io.Discard) // stdout carries JSON only

	client := suiteql.NewHTTPClient(suiteql.Credentials{
		AccountID:      cfg.NetSuite.AccountID,
		ConsumerKey:    cfg.NetSuite.ConsumerKey,
		ConsumerSecret: cfg.NetSuite.ConsumerSecret,
		TokenID:        cfg.NetSuite.TokenID,
		TokenSecret:    cfg.NetSuite.TokenSecret,
	}, suiteql.WithTimeout(cfg.NetSuite.Timeout))

	svc := netsuite.NewLookupService(client, cache.New(cache.NewMemory(), time.Minute), log)
	return svc, client, nil
}

func writeJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
