package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"poodle/hotswap"
)

// deployCmd is match followed by redefine of the last class extracted.
var deployCmd = &cobra.Command{
	Use:   "deploy <source-path> <pid>",
	Short: "Extract the class for a source file and redefine it in a remote JVM",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireProject(); err != nil {
			return err
		}
		if err := requireRemote(); err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		logger.Info("deploying", zap.String("source", args[0]), zap.String("pid", args[1]),
			zap.String("server", cfgServerIP))
		out, err := svc.Deploy(hotswap.Request{SourceIdentifier: args[0], ProcessID: args[1]})
		_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}
