package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/habits/internal/app"
	"github.com/templui/habits/internal/config"
)

func ExportCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Upload the summary to object storage and print a download URL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), cfg, func(ctx context.Context, a *app.App) error {
				result, err := a.ExportService.Export(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "key: %s\nurl: %s\n", result.Key, result.URL)
				return nil
			})
		},
	}
}
