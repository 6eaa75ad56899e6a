package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/okian/podium/pkg/logger"
)

func newExportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render every chart once and write them to a directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg, log, err := setup(ctx)
			if err != nil {
				return err
			}
			svc := newService(cfg, log)
			paths, err := svc.Export(ctx, out)
			if err != nil {
				log.Error(ctx, "export failed", logger.String("dir", out), logger.Error(err))
				return err
			}
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "charts", "output directory")
	return cmd
}
