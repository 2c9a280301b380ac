// cmd/pricing-intel/classify.go
package main

import (
	"github.com/spf13/cobra"

	"pricing-intel/internal/pricing/intent"
)

var classifyType string

var classifyCmd = &cobra.Command{
	Use:   "classify [question]",
	Short: "Show which analysis a request would run, without touching the warehouse",
	RunE: func(cmd *cobra.Command, args []string) error {
		question := joinArgs(args)
		category, source := intent.Resolve(classifyType, question)
		return printJSON(map[string]interface{}{
			"question":   question,
			"query_type": classifyType,
			"category":   category,
			"resolvedBy": source,
			"keywords":   intent.Keywords(category),
		})
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&classifyType, "type", "t", "", "query type or alias")
}
