// cmd/pricing-intel/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "pricing-intel",
	Short: "Pricing intelligence query service",
	Long: `pricing-intel answers pricing questions from the analytical warehouse.

A request is resolved to one of four analyses (competitor tracking, campaign
performance, price elasticity, promotional calendar), executed as a single
parameterised query and returned with summary statistics, insights,
recommendations and alerts.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level")

	rootCmd.AddCommand(serveCmd, queryCmd, classifyCmd)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// exitError makes cobra exit non-zero after the command already printed its
// own output.
type exitError struct{ code string }

func (e exitError) Error() string { return fmt.Sprintf("request failed: %s", e.code) }
