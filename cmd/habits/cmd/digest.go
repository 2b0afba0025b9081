package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/templui/habits/internal/app"
	"github.com/templui/habits/internal/config"
)

func DigestCmd(cfg *config.Config) *cobra.Command {
	var (
		to     string
		days   int
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Email a summary digest of the last days",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return errors.New("--days must be at least 1")
			}

			return withApp(cmd.Context(), cfg, func(ctx context.Context, a *app.App) error {
				if !dryRun && !a.EmailService.Configured() {
					return errors.New("email service not configured (missing RESEND_API_KEY)")
				}

				now := time.Now()
				digest, err := a.DigestService.Render(ctx, now.AddDate(0, 0, -(days-1)), now)
				if err != nil {
					return err
				}

				if dryRun {
					fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n\n%s\n", digest.Subject, digest.Text)
					return nil
				}

				if err := a.EmailService.SendDigest(ctx, to, digest); err != nil {
					return fmt.Errorf("failed to send digest: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "digest sent to %s (%d days)\n", to, len(digest.Lines))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "recipient email address")
	cmd.Flags().IntVar(&days, "days", 7, "number of days to include, ending today")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the digest instead of sending it")
	cmd.MarkFlagRequired("to")

	return cmd
}

func withApp(ctx context.Context, cfg *config.Config, fn func(ctx context.Context, a *app.App) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
