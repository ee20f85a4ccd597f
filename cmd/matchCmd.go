package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// matchCmd extracts every class matching a source reference into the data
// directory and prints the manifest. A partial manifest is still printed
// when the walk fails.
var matchCmd = &cobra.Command{
	Use:   "match <source-path>",
	Short: "Extract classes matching a source file from the project's jars",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireProject(); err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		matches, matchErr := svc.Match(args[0])
		if err := writeYAMLReport(cmd.OutOrStdout(), newMatchReport(args[0], matches)); err != nil {
			return fmt.Errorf("failed to write YAML report: %w", err)
		}
		return matchErr
	},
}
