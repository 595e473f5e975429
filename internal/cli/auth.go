package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seolab/gapscout/auth"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to Google Search Console",
	Long: `Check the stored session and run the out-of-band consent flow if needed.

The consent URL is printed for the user to visit in a browser; the one-time
authorization code it produces is read from stdin (or --code) and exchanged
for a session, which is persisted for later runs.`,
	RunE: runAuth,
}

var authCode string

func init() {
	authCmd.Flags().StringVar(&authCode, "code", "", "Authorization code obtained from the consent URL")
}

func runAuth(cmd *cobra.Command, args []string) error {
	manager, err := newAuthManager()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if authCode == "" {
		if _, err := manager.GetSession(ctx); err == nil {
			fmt.Println("Session is valid, no authorization needed")
			return nil
		}
	}

	code := authCode
	if code == "" {
		fmt.Println("Visit the following URL and approve access:")
		fmt.Println()
		fmt.Println("  " + manager.AuthURL())
		fmt.Println()
		fmt.Print("Enter the authorization code: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading authorization code: %w", err)
		}
		code = strings.TrimSpace(line)
	}
	if code == "" {
		return fmt.Errorf("no authorization code supplied")
	}

	if _, err := manager.Exchange(ctx, code); err != nil {
		if errors.Is(err, auth.ErrAuthenticationFailed) {
			return fmt.Errorf("code exchange failed, obtain a fresh code and retry: %w", err)
		}
		return err
	}

	fmt.Println("Authentication successful")
	return nil
}
