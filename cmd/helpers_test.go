package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"poodle/hotswap"
	"poodle/remote"
)

// writeTemp creates a temp file with content and returns its path.
func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

// writeJar writes a zip with the given members to dir/name.
func writeJar(t *testing.T, dir, name string, members map[string]string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for n, data := range members {
		w, err := zw.Create(n)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return writeTemp(t, dir, name, buf.String())
}

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// resetConfig clears global configuration so tests don't leak state. The
// executable is pretended to live in a fresh temp dir.
func resetConfig(t *testing.T) string {
	t.Helper()
	viper.Reset()
	resetFlags(rootCmd)
	cfgConfigFile = ""
	cfgServerIP = ""
	cfgUser = ""
	cfgPassword = ""
	cfgProjectPath = ""
	cfgDataDir = ""
	cfgRemoteDir = ""
	cfgArthas = ""
	cfgKeyPath = ""
	cfgPassphrase = ""
	cfgKnownHosts = ""
	cfgStrictHost = false
	cfgConnTimeout = 15 * time.Second
	cfgVerbose = false
	cfgSaveFrom = ""
	configErr = nil
	bindFlags()

	exe := filepath.Join(t.TempDir(), "poodle")
	origExe, origDial, origProgress := executablePathFunc, dialSessionFunc, progressOut
	executablePathFunc = func() (string, error) { return exe, nil }
	progressOut = io.Discard
	t.Cleanup(func() {
		executablePathFunc, dialSessionFunc, progressOut = origExe, origDial, origProgress
		logger = zap.NewNop()
	})
	return filepath.Dir(exe)
}

// runCLI executes the root command with args and returns what it printed.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

// stubRemote records what the CLI asks of the remote side.
type stubRemote struct {
	dials    int
	cfg      remote.Config
	uploads  [][2]string
	commands []string
	output   string
}

func (s *stubRemote) install() {
	dialSessionFunc = func(cfg remote.Config, _ *zap.Logger) (hotswap.Remote, error) {
		s.dials++
		s.cfg = cfg
		return s, nil
	}
}

func (s *stubRemote) Upload(localPath, remotePath string) error {
	s.uploads = append(s.uploads, [2]string{localPath, remotePath})
	return nil
}

func (s *stubRemote) Execute(command string) (string, error) {
	s.commands = append(s.commands, command)
	return s.output, nil
}

func (s *stubRemote) Close() error { return nil }
