package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys, shared by config.json, viper and POODLE_* variables.
const (
	keyConfig      = "config"
	keyServerIP    = "server_ip"
	keyUser        = "server_username"
	keyPassword    = "server_password"
	keyProjectPath = "project_path"
	keyDataDir     = "data_dir"
	keyRemoteDir   = "remote_dir"
	keyArthas      = "arthas_command"
	keyKeyPath     = "key"
	keyPassphrase  = "passphrase"
	keyKnownHosts  = "known_hosts"
	keyStrictHost  = "strict_host_key"
	keyConnTimeout = "conn_timeout"
)

const envPrefix = "POODLE"

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgConfigFile, "config", "", "Path to config.json (default: next to the executable)")
	pf.StringVarP(&cfgServerIP, "server-ip", "s", "", "Remote host or host:port")
	pf.StringVarP(&cfgUser, "user", "u", "", "SSH username")
	pf.StringVar(&cfgPassword, "password", "", "SSH password (or set POODLE_SERVER_PASSWORD)")
	pf.StringVarP(&cfgProjectPath, "project", "p", "", "Project directory searched for jars")
	pf.StringVar(&cfgDataDir, "data-dir", "", "Directory extracted classes are written to (default: <exe dir>/data)")
	pf.StringVar(&cfgRemoteDir, "remote-dir", "", "Remote directory classes are uploaded to (default /root/poodle)")
	pf.StringVar(&cfgArthas, "arthas", "", "Remote Arthas invocation (default \"java -jar /root/arthas/arthas-boot.jar\")")
	pf.StringVar(&cfgKeyPath, "key", "", "Path to SSH private key (PEM, OpenSSH)")
	pf.StringVar(&cfgPassphrase, "passphrase", "", "Private key passphrase (or set POODLE_PASSPHRASE)")
	pf.StringVar(&cfgKnownHosts, "known-hosts", "", "Path to known_hosts file (default ~/.ssh/known_hosts)")
	pf.BoolVar(&cfgStrictHost, "strict-host-key", false, "Require host key verification against known_hosts")
	pf.DurationVar(&cfgConnTimeout, "conn-timeout", 15*time.Second, "Connection timeout")
	pf.BoolVarP(&cfgVerbose, "verbose", "v", false, "Debug logging")

	bindFlags()

	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(psCmd)
	rootCmd.AddCommand(redefineCmd)
	rootCmd.AddCommand(deployCmd)
}

// bindFlags maps each persistent flag onto its config key and enables
// POODLE_<KEY> environment overrides.
func bindFlags() {
	pf := rootCmd.PersistentFlags()
	_ = viper.BindPFlag(keyConfig, pf.Lookup("config"))
	_ = viper.BindPFlag(keyServerIP, pf.Lookup("server-ip"))
	_ = viper.BindPFlag(keyUser, pf.Lookup("user"))
	_ = viper.BindPFlag(keyPassword, pf.Lookup("password"))
	_ = viper.BindPFlag(keyProjectPath, pf.Lookup("project"))
	_ = viper.BindPFlag(keyDataDir, pf.Lookup("data-dir"))
	_ = viper.BindPFlag(keyRemoteDir, pf.Lookup("remote-dir"))
	_ = viper.BindPFlag(keyArthas, pf.Lookup("arthas"))
	_ = viper.BindPFlag(keyKeyPath, pf.Lookup("key"))
	_ = viper.BindPFlag(keyPassphrase, pf.Lookup("passphrase"))
	_ = viper.BindPFlag(keyKnownHosts, pf.Lookup("known-hosts"))
	_ = viper.BindPFlag(keyStrictHost, pf.Lookup("strict-host-key"))
	_ = viper.BindPFlag(keyConnTimeout, pf.Lookup("conn-timeout"))

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
}

// initConfig reads config.json and pulls the merged values into the cfg
// variables. Flags beat environment, environment beats the file.
func initConfig() {
	if v := viper.GetString(keyConfig); v != "" {
		cfgConfigFile = v
	}
	configErr = nil
	viper.SetConfigFile(configPath())
	viper.SetConfigType("json")
	if err := readConfig(); err != nil {
		configErr = err
	}

	if v := viper.GetString(keyServerIP); v != "" {
		cfgServerIP = v
	}
	if v := viper.GetString(keyUser); v != "" {
		cfgUser = v
	}
	if v := viper.GetString(keyPassword); v != "" {
		cfgPassword = v
	}
	if v := viper.GetString(keyProjectPath); v != "" {
		cfgProjectPath = v
	}
	if v := viper.GetString(keyDataDir); v != "" {
		cfgDataDir = v
	}
	if v := viper.GetString(keyRemoteDir); v != "" {
		cfgRemoteDir = v
	}
	if v := viper.GetString(keyArthas); v != "" {
		cfgArthas = v
	}
	if v := viper.GetString(keyKeyPath); v != "" {
		cfgKeyPath = v
	}
	if v := viper.GetString(keyPassphrase); v != "" {
		cfgPassphrase = v
	}
	if v := viper.GetString(keyKnownHosts); v != "" {
		cfgKnownHosts = v
	}
	if v := viper.GetString(keyConnTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfgConnTimeout = d
		}
	}
	if viper.IsSet(keyStrictHost) {
		cfgStrictHost = viper.GetBool(keyStrictHost)
	}
}
