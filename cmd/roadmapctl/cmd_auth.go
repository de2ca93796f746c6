package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	loginUsername string
	loginPassword string

	registerUsername string
	registerPassword string
	registerConfirm  string
)

// loginCmd establishes a durable session.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and persist the session",
	Long: `Authenticate against the backend and store the session locally.
The session is reused by later invocations until it fails verification
or you run logout.`,
	RunE: runLogin,
}

// registerCmd creates a student account and logs it in.
var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a student account and log in",
	Long: `Create your own student account. The username needs at least 3
characters and the password at least 6; the confirmation must match.
On success the new session is persisted, as with login.`,
	RunE: runRegister,
}

// logoutCmd drops the durable session.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear the stored session",
	RunE:  runLogout,
}

// whoamiCmd verifies the stored session and prints the account.
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Verify the stored session and show the current account",
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "account password (prompted when omitted)")

	registerCmd.Flags().StringVarP(&registerUsername, "username", "u", "", "desired username")
	registerCmd.Flags().StringVarP(&registerPassword, "password", "p", "", "desired password (prompted when omitted)")
	registerCmd.Flags().StringVar(&registerConfirm, "confirm", "", "password confirmation (prompted when omitted)")
}

func runLogin(cmd *cobra.Command, args []string) error {
	username := loginUsername
	if username == "" {
		var err error
		username, err = promptLine("Username: ")
		if err != nil {
			return err
		}
	}

	password := loginPassword
	if password == "" {
		var err error
		password, err = promptLine("Password: ")
		if err != nil {
			return err
		}
	}

	u, err := current.session.Login(cmd.Context(), username, password)
	if err != nil {
		return err
	}

	fmt.Printf("logged in as %s (%s)\n", u.Username, u.Role)
	return nil
}

func runRegister(cmd *cobra.Command, args []string) error {
	username := registerUsername
	if username == "" {
		var err error
		username, err = promptLine("Username: ")
		if err != nil {
			return err
		}
	}

	password := registerPassword
	if password == "" {
		var err error
		password, err = promptLine("Password: ")
		if err != nil {
			return err
		}
	}

	confirm := registerConfirm
	if confirm == "" {
		var err error
		confirm, err = promptLine("Confirm password: ")
		if err != nil {
			return err
		}
	}

	u, err := current.session.Register(cmd.Context(), username, password, confirm)
	if err != nil {
		return err
	}

	fmt.Printf("account created, logged in as %s (%s)\n", u.Username, u.Role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := current.session.Logout(); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
	if !current.session.Verify(cmd.Context()) {
		fmt.Println("not logged in")
		return nil
	}

	u := current.session.CurrentUser()
	fmt.Printf("%s (%s)\n", u.Username, u.Role)
	return nil
}

func promptLine(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
