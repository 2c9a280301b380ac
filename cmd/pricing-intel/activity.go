// cmd/pricing-intel/activity.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pricing-intel/internal/common/config"
	piq "pricing-intel/internal/workers/pricing/pricing-intel-query"
	"pricing-intel/pkg/registry"
)

var registryPath string

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Inspect and publish the BPMN activity descriptor",
}

var activityShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the descriptor of the pricing-intel-query job type",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := describeActivity()
		if err != nil {
			return err
		}
		return printJSON(a)
	},
}

var activitySyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Add or refresh the descriptor in the activity registry file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := describeActivity()
		if err != nil {
			return err
		}
		reg, err := registry.LoadOrCreate(registryPath)
		if err != nil {
			return err
		}
		replaced := reg.Upsert(a)
		if err := reg.Validate(); err != nil {
			return err
		}
		if err := reg.Save(registryPath); err != nil {
			return err
		}
		action := "Added"
		if replaced {
			action = "Updated"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s activity %s in %s\n", action, a.ID, registryPath)
		return nil
	},
}

var activityValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the activity registry file",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := registry.LoadRegistry(registryPath)
		if err != nil {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		if err := reg.Validate(); err != nil {
			return fmt.Errorf("registry validation failed: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
		return nil
	},
}

func init() {
	activityCmd.PersistentFlags().StringVar(&registryPath, "path", "configs/activity-registry.json", "path to the registry file")
	activityCmd.AddCommand(activityShowCmd, activitySyncCmd, activityValidateCmd)
	rootCmd.AddCommand(activityCmd)
}

// describeActivity needs the config for the timeout but not the warehouse.
func describeActivity() (registry.Activity, error) {
	cfg, err := loadConfig()
	if err != nil {
		return registry.Activity{}, err
	}
	hcfg, err := piq.LoadConfig(cfg)
	if err != nil {
		return registry.Activity{}, err
	}
	return piq.Activity(hcfg, config.GetWorkerConfig(cfg, piq.TaskType).MaxRetries)
}
