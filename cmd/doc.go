// Package cmd implements the poodle command-line interface.
//
// The root command loads config.json (next to the executable, or --config),
// binds flags and POODLE_* environment variables through viper and builds the
// zap logger shared by the subcommands. match extracts classes from the
// project's jars, ps lists remote JVMs, redefine uploads a class and hands it
// to Arthas, and deploy chains match and redefine for a source reference.
//
// Start with rootCmd.go and init.go for the wiring, then newService.go for the
// bridge into the hotswap package.
package cmd
