package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var refreshOnly bool

// authCmd runs the authorization flow or refreshes the cached tokens
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Authorize access to your Yahoo account",
	Long: `Print the Yahoo consent URL, read the verification code and cache the
resulting tokens. With --refresh, exchange the cached refresh token instead.`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.Flags().BoolVar(&refreshOnly, "refresh", false, "refresh the cached tokens instead of re-authorizing")
}

func runAuth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if refreshOnly {
		if err := authService.RefreshTokens(ctx); err != nil {
			return err
		}
	} else if err := authService.Authorize(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Tokens saved to %s (valid until %s)\n",
		cfg.Yahoo.TokenFile, authService.ExpiresBy().Local().Format("2006-01-02 15:04"))
	return nil
}
