package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"umlwizard/internal/render"
)

func exportCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the generated diagrams as PNG files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.LoadController()
			if err != nil {
				return err
			}
			files, err := render.ExportPNGs(c.Snapshot(), out)
			for _, f := range files {
				fmt.Fprintln(cmd.OutOrStdout(), f.Path)
			}
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no diagrams generated yet")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", ".", "directory to write the PNG files into")
	return cmd
}
