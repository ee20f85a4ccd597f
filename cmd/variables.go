package cmd

import (
	"os"
	"time"

	"go.uber.org/zap"
)

// Version is the CLI version string injected at build time via -ldflags.
var Version = "0.1.0"

var (
	// Global configuration populated by config.json, flags and environment
	// variables. Declared here so every subcommand sees the same values.
	cfgConfigFile  string
	cfgServerIP    string
	cfgUser        string
	cfgPassword    string
	cfgProjectPath string
	cfgDataDir     string
	cfgRemoteDir   string
	cfgArthas      string
	cfgKeyPath     string
	cfgPassphrase  string
	cfgKnownHosts  string
	cfgStrictHost  bool
	cfgConnTimeout time.Duration
	cfgVerbose     bool

	// configErr holds a config.json read failure from initConfig; commands
	// that need the configuration report it.
	configErr error
)

// logger is replaced in PersistentPreRunE.
var logger = zap.NewNop()

// Allow tests to stub dialing and executable lookup
var (
	dialSessionFunc    = dialSession
	executablePathFunc = os.Executable
)
