package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roadmap-saas/roadmap-hub/internal/application/command"
	"github.com/roadmap-saas/roadmap-hub/internal/application/query"
)

var (
	adminUsername string
	adminPassword string
	adminRole     string
)

// adminCmd groups administrator operations. The role check here is only a
// courtesy: the backend rejects non-admin callers regardless.
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrator operations",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := rootCmd.PersistentPreRunE(cmd, args); err != nil {
			return err
		}
		if current.session.IsAuthenticated() && !current.session.IsAdmin() {
			fmt.Fprintln(cmd.ErrOrStderr(), "note: your session is not an admin session; the backend will likely refuse")
		}
		return nil
	},
}

var adminRoadmapsCmd = &cobra.Command{
	Use:   "roadmaps",
	Short: "List every roadmap with its owner",
	RunE:  runAdminRoadmaps,
}

var adminDeleteRoadmapCmd = &cobra.Command{
	Use:   "delete-roadmap <roadmap-id>",
	Short: "Delete any user's roadmap",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoadmapDelete,
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all accounts",
	RunE:  runAdminUsers,
}

var adminCreateUserCmd = &cobra.Command{
	Use:   "create-user",
	Short: "Create an account",
	RunE:  runAdminCreateUser,
}

var adminDeleteUserCmd = &cobra.Command{
	Use:   "delete-user <user-id>",
	Short: "Delete an account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAdminDeleteUser,
}

func init() {
	adminCreateUserCmd.Flags().StringVarP(&adminUsername, "username", "u", "", "account username")
	adminCreateUserCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "account password")
	adminCreateUserCmd.Flags().StringVarP(&adminRole, "role", "r", "student", "account role (student or admin)")

	adminCmd.AddCommand(adminRoadmapsCmd, adminDeleteRoadmapCmd,
		adminUsersCmd, adminCreateUserCmd, adminDeleteUserCmd)
}

func runAdminRoadmaps(cmd *cobra.Command, args []string) error {
	handler := query.NewListAllRoadmapsHandler(current.client, current.logger)
	owned, err := handler.Handle(cmd.Context())
	if err != nil {
		return err
	}

	for _, o := range owned {
		fmt.Printf("%s  %-30s  owner: %s\n", o.Roadmap.ID, o.Roadmap.Title, o.Owner.Username)
	}
	return nil
}

func runAdminUsers(cmd *cobra.Command, args []string) error {
	handler := query.NewListUsersHandler(current.client, current.logger)
	users, err := handler.Handle(cmd.Context())
	if err != nil {
		return err
	}

	for _, u := range users {
		fmt.Printf("%s  %-20s  %s\n", u.ID, u.Username, u.Role)
	}
	return nil
}

func runAdminCreateUser(cmd *cobra.Command, args []string) error {
	handler := command.NewUserAdminHandler(current.client, current.logger)
	created, err := handler.CreateUser(cmd.Context(), command.CreateUserCommand{
		Username: adminUsername,
		Password: adminPassword,
		Role:     adminRole,
	})
	if err != nil {
		return err
	}

	fmt.Printf("created user %s (%s)\n", created.Username, created.Role)
	return nil
}

func runAdminDeleteUser(cmd *cobra.Command, args []string) error {
	handler := command.NewUserAdminHandler(current.client, current.logger)
	if err := handler.DeleteUser(cmd.Context(), command.DeleteUserCommand{UserID: args[0]}); err != nil {
		return err
	}

	fmt.Printf("deleted user %s\n", args[0])
	return nil
}
