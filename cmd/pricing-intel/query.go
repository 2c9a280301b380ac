// cmd/pricing-intel/query.go
package main

import (
	"context"

	"github.com/spf13/cobra"

	piq "pricing-intel/internal/workers/pricing/pricing-intel-query"
)

var (
	queryType  string
	queryLimit int
)

var queryCmd = &cobra.Command{
	Use:   "query [question]",
	Short: "Run one request against the warehouse and print the response",
	Example: `  pricing-intel query "rakip fiyat karşılaştırması"
  pricing-intel query --type campaign_analysis --limit 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &piq.Request{
			Question:  joinArgs(args),
			QueryType: queryType,
		}
		if cmd.Flags().Changed("limit") {
			req.Limit = &queryLimit
		}
		return runQuery(cmd.Context(), req)
	},
}

func init() {
	queryCmd.Flags().StringVarP(&queryType, "type", "t", "", "query type or alias, e.g. competitor_analysis")
	queryCmd.Flags().IntVarP(&queryLimit, "limit", "l", 0, "row limit (default analysis.default_limit)")
}

func runQuery(ctx context.Context, req *piq.Request) error {
	a, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer a.close(context.Background())

	hcfg, err := piq.LoadConfig(a.cfg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, hcfg.Timeout)
	defer cancel()

	env, err := a.handler.Execute(ctx, req)
	if err != nil {
		out := piq.NewErrorEnvelope(err)
		if printErr := printJSON(out); printErr != nil {
			return printErr
		}
		return exitError{code: out.ErrorType}
	}
	return printJSON(env)
}
