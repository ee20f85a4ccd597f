package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config.json"
	dataDirName    = "data"
)

var errInvalidConfig = errors.New("invalid config")

// persistedConfig is the shape of config.json. Only used to validate what
// `config save` writes; reading goes through viper.
type persistedConfig struct {
	ServerIP       string `json:"server_ip"`
	ServerUsername string `json:"server_username"`
	ServerPassword string `json:"server_password"`
	ProjectPath    string `json:"project_path"`
	DataDir        string `json:"data_dir,omitempty"`
	RemoteDir      string `json:"remote_dir,omitempty"`
	ArthasCommand  string `json:"arthas_command,omitempty"`
	Key            string `json:"key,omitempty"`
	Passphrase     string `json:"passphrase,omitempty"`
	KnownHosts     string `json:"known_hosts,omitempty"`
	StrictHostKey  bool   `json:"strict_host_key,omitempty"`
	ConnTimeout    string `json:"conn_timeout,omitempty"`
}

// exeDir is the directory holding the running binary, or "." when it cannot
// be resolved.
func exeDir() string {
	p, err := executablePathFunc()
	if err != nil {
		return "."
	}
	if r, err := filepath.EvalSymlinks(p); err == nil {
		p = r
	}
	return filepath.Dir(p)
}

func configPath() string {
	if cfgConfigFile != "" {
		return cfgConfigFile
	}
	return filepath.Join(exeDir(), configFileName)
}

func dataDir() string {
	if cfgDataDir != "" {
		return cfgDataDir
	}
	return filepath.Join(exeDir(), dataDirName)
}

func knownHostsPath() string {
	if cfgKnownHosts != "" {
		return cfgKnownHosts
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".ssh", "known_hosts")
}

// readConfig loads the file viper points at. A missing file, or one holding
// only whitespace as left behind by `config show`, is not an error.
func readConfig() error {
	b, err := os.ReadFile(viper.ConfigFileUsed())
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(bytes.TrimSpace(b)) == 0) {
		return nil
	}
	err = viper.ReadInConfig()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("read %s: %w", viper.ConfigFileUsed(), err)
}

// readConfigFile returns the raw config file, creating an empty one when it
// does not exist yet.
func readConfigFile(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	return nil, nil
}

// saveConfigFile replaces the config file with content after checking that
// it decodes as a config object.
func saveConfigFile(path string, content []byte) error {
	var pc persistedConfig
	if err := json.Unmarshal(content, &pc); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
