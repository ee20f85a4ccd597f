package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List Java processes on the remote host",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRemote(); err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		procs, err := svc.Processes()
		if err != nil {
			return err
		}
		if err := writeYAMLReport(cmd.OutOrStdout(), newProcessReport(cfgServerIP, procs)); err != nil {
			return fmt.Errorf("failed to write YAML report: %w", err)
		}
		return nil
	},
}
