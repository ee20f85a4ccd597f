package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// redefineCmd uploads an already extracted class from the data directory
// and redefines it in the given JVM. Arthas output is printed as is.
var redefineCmd = &cobra.Command{
	Use:   "redefine <class-file> <pid>",
	Short: "Upload an extracted class and redefine it in a remote JVM",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireRemote(); err != nil {
			return err
		}
		svc, err := newService()
		if err != nil {
			return err
		}
		out, err := svc.Redefine(args[0], args[1])
		_, _ = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}
