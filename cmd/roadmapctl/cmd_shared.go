package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roadmap-saas/roadmap-hub/internal/application/query"
)

// sharedCmd resolves a public roadmap by its share token. It works without
// a session: anyone holding the link may read the roadmap.
var sharedCmd = &cobra.Command{
	Use:   "shared <token>",
	Short: "View a public roadmap by its share token",
	Args:  cobra.ExactArgs(1),
	RunE:  runShared,
}

func runShared(cmd *cobra.Command, args []string) error {
	handler := query.NewResolveShareHandler(current.client, current.logger)
	view, err := handler.Handle(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n", view.Roadmap.Title, view.Roadmap.Description)
	for _, m := range view.Modules {
		fmt.Printf("  %2d. %s\n", m.Order, m.Title)
	}
	return nil
}
