package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"teachgrab/internal/auth"
)

var loginCmd = &cobra.Command{
	Use:   "login <namespace>",
	Short: "Store credentials for a site namespace in the system keyring",
	Long: `Store an email/password pair for a site's credential namespace.
Run 'teachgrab sites' to see the namespaces of the known sites; for a
prefixed URL the namespace is the hostname.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		namespace := args[0]
		reader := bufio.NewReader(os.Stdin)

		fmt.Print("Email: ")
		email, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading email: %w", err)
		}

		fmt.Print("Password: ")
		password, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}

		creds := auth.Credentials{
			Email:    strings.TrimSpace(email),
			Password: strings.TrimSpace(password),
		}
		if creds.Email == "" || creds.Password == "" {
			return fmt.Errorf("email and password cannot be empty")
		}

		ks := auth.KeyringSource{Service: keyringService}
		if err := ks.Store(namespace, creds); err != nil {
			return err
		}

		fmt.Printf("Stored credentials for %s\n", namespace)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout <namespace>",
	Short: "Remove a site namespace's credentials from the system keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ks := auth.KeyringSource{Service: keyringService}
		if err := ks.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed credentials for %s\n", args[0])
		return nil
	},
}
