package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roadmap-saas/roadmap-hub/internal/application/command"
)

// progressCmd groups progress operations.
var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Track your per-module completion",
}

var progressToggleCmd = &cobra.Command{
	Use:   "toggle <roadmap-id> <module-id>",
	Short: "Flip the completion flag for a module",
	Long: `Flip your completion flag for a module and persist it. Toggling
twice restores the original value. The updated aggregate percentage
for the roadmap is printed.`,
	Args: cobra.ExactArgs(2),
	RunE: runProgressToggle,
}

func init() {
	progressCmd.AddCommand(progressToggleCmd)
}

func runProgressToggle(cmd *cobra.Command, args []string) error {
	roadmapID, moduleID := args[0], args[1]

	tracker := command.NewProgressTracker(current.client, current.logger)
	if err := tracker.LoadView(cmd.Context(), roadmapID); err != nil {
		return err
	}

	completed, err := tracker.Toggle(cmd.Context(), moduleID)
	if err != nil {
		return err
	}

	modules, err := current.client.ListModules(cmd.Context(), roadmapID)
	if err != nil {
		return err
	}

	state := "not completed"
	if completed {
		state = "completed"
	}
	fmt.Printf("module %s is now %s, roadmap at %d%%\n",
		moduleID, state, tracker.Percentage(modules))
	return nil
}
