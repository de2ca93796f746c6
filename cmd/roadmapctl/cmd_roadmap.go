package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roadmap-saas/roadmap-hub/internal/application/command"
	"github.com/roadmap-saas/roadmap-hub/internal/application/query"
	"github.com/roadmap-saas/roadmap-hub/internal/domain/shared"
)

var (
	createTitle       string
	createDescription string
	createPublic      bool
	createModules     []string
)

// roadmapCmd groups roadmap operations.
var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Manage your roadmaps",
}

var roadmapListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your roadmaps, newest first",
	RunE:  runRoadmapList,
}

var roadmapCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a roadmap, optionally with draft modules",
	Long: `Create a roadmap owned by you. Repeat --module to append draft
modules in order; drafts with blank titles are skipped. When module
creation fails partway, the roadmap and the modules created so far
remain persisted and are reported.`,
	RunE: runRoadmapCreate,
}

var roadmapViewCmd = &cobra.Command{
	Use:   "view <roadmap-id>",
	Short: "Show a roadmap with modules and your completion",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoadmapView,
}

var roadmapDeleteCmd = &cobra.Command{
	Use:   "delete <roadmap-id>",
	Short: "Delete a roadmap and its modules",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoadmapDelete,
}

var roadmapShareCmd = &cobra.Command{
	Use:   "share <roadmap-id>",
	Short: "Make a roadmap public and print its share token",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoadmapShare,
}

var roadmapUnshareCmd = &cobra.Command{
	Use:   "unshare <roadmap-id>",
	Short: "Make a roadmap private, invalidating its share token",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoadmapUnshare,
}

func init() {
	roadmapCreateCmd.Flags().StringVarP(&createTitle, "title", "t", "", "roadmap title")
	roadmapCreateCmd.Flags().StringVarP(&createDescription, "description", "d", "", "roadmap description")
	roadmapCreateCmd.Flags().BoolVar(&createPublic, "public", false, "make the roadmap public at creation")
	roadmapCreateCmd.Flags().StringArrayVarP(&createModules, "module", "m", nil,
		"draft module as \"Title|Description\", repeatable")

	roadmapCmd.AddCommand(roadmapListCmd, roadmapCreateCmd, roadmapViewCmd,
		roadmapDeleteCmd, roadmapShareCmd, roadmapUnshareCmd)
}

func runRoadmapList(cmd *cobra.Command, args []string) error {
	handler := query.NewListRoadmapsHandler(current.client, current.logger)
	roadmaps, err := handler.Handle(cmd.Context())
	if err != nil {
		return err
	}

	if len(roadmaps) == 0 {
		fmt.Println("no roadmaps yet")
		return nil
	}
	for _, r := range roadmaps {
		visibility := "private"
		if r.IsPublic {
			visibility = "public"
		}
		fmt.Printf("%s  %-30s  %s\n", r.ID, r.Title, visibility)
	}
	return nil
}

func runRoadmapCreate(cmd *cobra.Command, args []string) error {
	drafts := make([]command.ModuleDraft, 0, len(createModules))
	for _, raw := range createModules {
		title, description, _ := strings.Cut(raw, "|")
		drafts = append(drafts, command.ModuleDraft{Title: title, Description: description})
	}

	handler := command.NewCreateRoadmapHandler(current.client, current.logger)
	result, err := handler.Handle(cmd.Context(), command.CreateRoadmapCommand{
		Title:       createTitle,
		Description: createDescription,
		IsPublic:    createPublic,
		Modules:     drafts,
	})
	if err != nil {
		if errors.Is(err, shared.ErrPartialFailure) && result != nil {
			fmt.Printf("roadmap %s created, but only %d of %d modules were persisted\n",
				result.Roadmap.ID, len(result.Modules), len(drafts))
		}
		return err
	}

	fmt.Printf("created roadmap %s with %d modules\n", result.Roadmap.ID, len(result.Modules))
	if result.Roadmap.IsPublic {
		fmt.Printf("share token: %s\n", result.Roadmap.ShareToken)
	}
	return nil
}

func runRoadmapView(cmd *cobra.Command, args []string) error {
	handler := query.NewViewRoadmapHandler(current.client, current.logger)
	view, err := handler.Handle(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n", view.Roadmap.Title, view.Roadmap.Description)
	fmt.Printf("progress: %d%% (%d/%d)\n", view.Percentage, view.CompletedCount, len(view.Modules))
	for _, m := range view.Modules {
		mark := " "
		if view.Completion[m.ID] {
			mark = "x"
		}
		fmt.Printf("  [%s] %2d. %s  (%s)\n", mark, m.Order, m.Title, m.ID)
	}
	return nil
}

func runRoadmapDelete(cmd *cobra.Command, args []string) error {
	handler := command.NewDeleteRoadmapHandler(current.client, current.logger)
	result, err := handler.Handle(cmd.Context(), command.DeleteRoadmapCommand{RoadmapID: args[0]})
	if err != nil {
		return err
	}

	fmt.Printf("deleted roadmap %s\n", args[0])
	if result.OrphanedModulesRemaining > 0 {
		fmt.Printf("warning: %d modules could not be cleaned up\n", result.OrphanedModulesRemaining)
	}
	return nil
}

func runRoadmapShare(cmd *cobra.Command, args []string) error {
	handler := command.NewSetVisibilityHandler(current.client, current.logger)
	updated, err := handler.Handle(cmd.Context(), command.SetVisibilityCommand{
		RoadmapID: args[0], Public: true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("roadmap is public, share token: %s\n", updated.ShareToken)
	return nil
}

func runRoadmapUnshare(cmd *cobra.Command, args []string) error {
	handler := command.NewSetVisibilityHandler(current.client, current.logger)
	_, err := handler.Handle(cmd.Context(), command.SetVisibilityCommand{
		RoadmapID: args[0], Public: false,
	})
	if err != nil {
		return err
	}

	fmt.Println("roadmap is private, previous share links no longer resolve")
	return nil
}
