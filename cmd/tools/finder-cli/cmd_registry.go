package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"scholarship-workers/pkg/registry"
)

var now = time.Now

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Maintain the activity registry",
}

var registryValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the registry file",
	Args:  cobra.NoArgs,
	RunE:  runRegistryValidate,
}

var (
	addActivity registry.Activity

	updateID    string
	updateField string
	updateValue string
)

var registryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new activity to the registry",
	Args:  cobra.NoArgs,
	RunE:  runRegistryAdd,
}

var registryUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update a field of an existing activity",
	Args:  cobra.NoArgs,
	RunE:  runRegistryUpdate,
}

func init() {
	f := registryAddCmd.Flags()
	f.StringVar(&addActivity.ID, "id", "", "Activity ID (e.g., find-scholarships)")
	f.StringVar(&addActivity.DisplayName, "display-name", "", "Display name")
	f.StringVar(&addActivity.Description, "description", "", "Description")
	f.StringVar(&addActivity.Category, "category", "", "Category (e.g., finder)")
	f.StringVar(&addActivity.TaskType, "task-type", "", "Zeebe job type")
	f.StringVar(&addActivity.Version, "version", "1.0.0", "Version")
	f.StringVar(&addActivity.ImplementationStatus, "status", registry.StatusPlanned, "Implementation status (planned, in-progress, completed, verified)")
	f.StringVar(&addActivity.Timeout, "timeout", "10s", "Job timeout")
	for _, name := range []string{"id", "display-name", "description", "category", "task-type"} {
		_ = registryAddCmd.MarkFlagRequired(name)
	}

	u := registryUpdateCmd.Flags()
	u.StringVar(&updateID, "id", "", "Activity ID to update")
	u.StringVar(&updateField, "field", "", "Field to update (status, version, timeout, retries, ...)")
	u.StringVar(&updateValue, "value", "", "New value for the field")
	for _, name := range []string{"id", "field", "value"} {
		_ = registryUpdateCmd.MarkFlagRequired(name)
	}

	registryCmd.AddCommand(registryValidateCmd, registryAddCmd, registryUpdateCmd)
}

func runRegistryValidate(cmd *cobra.Command, args []string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Validate(); err != nil {
		return fmt.Errorf("registry validation failed: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

func runRegistryAdd(cmd *cobra.Command, args []string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = registry.New(now())
	}

	activity := addActivity
	activity.InputSchema = map[string]interface{}{}
	activity.OutputSchema = map[string]interface{}{}
	activity.ErrorCodes = []string{}
	activity.Workflows = []string{}
	activity.Tags = []string{}

	if err := reg.Add(activity, now()); err != nil {
		return err
	}
	if err := reg.Validate(); err != nil {
		return err
	}
	if err := reg.Save(registryPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added activity: %s\n", activity.ID)
	return nil
}

func runRegistryUpdate(cmd *cobra.Command, args []string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := reg.Update(updateID, updateField, updateValue, now()); err != nil {
		return err
	}
	if err := reg.Save(registryPath); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated activity %s, field %s to %s\n", updateID, updateField, updateValue)
	return nil
}
