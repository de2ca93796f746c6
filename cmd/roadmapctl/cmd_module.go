package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roadmap-saas/roadmap-hub/internal/application/command"
)

var (
	moduleTitle       string
	moduleDescription string
	moduleContent     string
)

// moduleCmd groups module operations.
var moduleCmd = &cobra.Command{
	Use:   "module",
	Short: "Manage modules within a roadmap",
}

var moduleAddCmd = &cobra.Command{
	Use:   "add <roadmap-id>",
	Short: "Append a module at the end of a roadmap",
	Args:  cobra.ExactArgs(1),
	RunE:  runModuleAdd,
}

var moduleRemoveCmd = &cobra.Command{
	Use:   "remove <roadmap-id> <order>",
	Short: "Remove the module at a 1-based position",
	Long: `Remove the module at the given position. The surviving modules are
renumbered to a contiguous 1..N sequence and the corrected orders are
persisted.`,
	Args: cobra.ExactArgs(2),
	RunE: runModuleRemove,
}

func init() {
	moduleAddCmd.Flags().StringVarP(&moduleTitle, "title", "t", "", "module title")
	moduleAddCmd.Flags().StringVarP(&moduleDescription, "description", "d", "", "module description")
	moduleAddCmd.Flags().StringVar(&moduleContent, "content", "", "long-form module content")

	moduleCmd.AddCommand(moduleAddCmd, moduleRemoveCmd)
}

func runModuleAdd(cmd *cobra.Command, args []string) error {
	handler := command.NewModuleHandler(current.client, current.logger)
	mod, err := handler.Add(cmd.Context(), command.AddModuleCommand{
		RoadmapID:   args[0],
		Title:       moduleTitle,
		Description: moduleDescription,
		Content:     moduleContent,
	})
	if err != nil {
		return err
	}

	fmt.Printf("added module %s at position %d\n", mod.ID, mod.Order)
	return nil
}

func runModuleRemove(cmd *cobra.Command, args []string) error {
	order, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("order must be a number: %w", err)
	}

	handler := command.NewModuleHandler(current.client, current.logger)
	result, err := handler.Remove(cmd.Context(), command.RemoveModuleCommand{
		RoadmapID: args[0],
		Order:     order,
	})
	if err != nil {
		return err
	}

	fmt.Printf("removed %q, renumbered %d modules\n", result.Removed.Title, result.Renumbered)
	return nil
}
