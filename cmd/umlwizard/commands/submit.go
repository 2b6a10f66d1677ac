package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func submitCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "submit [text]",
		Short: "Submit the requirements (SRS) text",
		Long: "Submit the requirements text from the argument, from --file, " +
			"or from standard input when neither is given.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readRequirements(cmd, args, file)
			if err != nil {
				return err
			}
			c, err := wire.LoadController()
			if err != nil {
				return err
			}
			if err := c.SubmitRequirements(text); err != nil {
				return err
			}
			if err := wire.SaveController(c); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Requirements saved. Next: umlwizard usecase")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the requirements from this file")
	return cmd
}

func readRequirements(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", errors.New("give the text as an argument or --file, not both")
	case len(args) == 1:
		return args[0], nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(b), "\n"), nil
}
