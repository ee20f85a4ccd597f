package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgSaveFrom string

// configCmd groups the persisted-configuration subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or replace config.json",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print config.json, creating it empty when missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		b, err := readConfigFile(path)
		if err != nil {
			return err
		}
		logger.Debug("config", zap.String("path", path), zap.Int("bytes", len(b)))
		_, err = cmd.OutOrStdout().Write(b)
		return err
	},
}

var configSaveCmd = &cobra.Command{
	Use:   "save [json]",
	Short: "Replace config.json with the given JSON document",
	Long:  "Replaces config.json with the JSON given as argument, read from --file, or read from stdin when neither is set.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			content []byte
			err     error
		)
		switch {
		case len(args) == 1:
			content = []byte(args[0])
		case cfgSaveFrom != "":
			content, err = os.ReadFile(cfgSaveFrom)
		default:
			content, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return fmt.Errorf("read config input: %w", err)
		}
		path := configPath()
		if err := saveConfigFile(path, content); err != nil {
			return err
		}
		logger.Info("config saved", zap.String("path", path))
		return nil
	},
}

func init() {
	configSaveCmd.Flags().StringVarP(&cfgSaveFrom, "file", "f", "", "Read the JSON document from this file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSaveCmd)
}
