package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newExportCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write every journaled line to FILE as JSON Lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return userError(err)
			}

			j, err := openJournal(o.settings)
			if err != nil {
				return sysError(err)
			}
			defer func() {
				if err := j.Detach(); err != nil {
					o.settings.log.Warn("journal detach failed", zap.Error(err))
				}
			}()

			if err := j.Export(path); err != nil {
				return sysError(fmt.Errorf("export: %w", err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "exported journal to %s\n", path)
			return nil
		},
	}
}
