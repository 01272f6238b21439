package cli

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/kairu/internal/store"
)

func newExportCmd(a *app) *cobra.Command {
	var format, output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a snapshot of the whole store",
		Long:  "Write a snapshot of the whole store as " + strings.Join(store.Formats, ", ") + ".",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			if !slices.Contains(store.Formats, format) {
				return fmt.Errorf("export %q: %w", format, store.ErrUnknownFormat)
			}
			return a.view(cmd, func(s *session) error {
				var w io.Writer = cmd.OutOrStdout()
				if output != "" {
					f, err := os.Create(output)
					if err != nil {
						return sysError(fmt.Errorf("create export file: %w", err))
					}
					defer f.Close()
					w = f
				}
				if err := store.Export(w, s.eng.State(), format); err != nil {
					return sysError(err)
				}
				if output != "" {
					s.out.Success(fmt.Sprintf("Exported %s snapshot to %s.", format, output))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", store.FormatJSON, "json, yaml or toml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}
