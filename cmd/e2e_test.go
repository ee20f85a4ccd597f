package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"poodle/hotswap"
	srv "poodle/tools/sshserv"
)

// TestEndToEnd_WithLocalTestServer runs ps and deploy against the in-process
// SSH server with the real dialer, SCP upload and exec.
func TestEndToEnd_WithLocalTestServer(t *testing.T) {
	redefine := hotswap.Command(hotswap.DefaultToolInvocation, "/root/poodle/Bar.class", "4242")
	server, err := srv.Start("127.0.0.1:0", srv.Options{
		User:     "tester",
		Password: "pw",
		Responses: map[string]string{
			hotswap.ProcessListCommand: "4242 demo-app.jar\n4243 Jps\n",
			redefine:                   "redefine success, size: 1\n",
		},
	})
	if err != nil {
		t.Skipf("skipping e2e: cannot start test ssh server: %v", err)
	}
	defer server.Stop()
	t.Setenv("SSH_AUTH_SOCK", "")

	resetConfig(t)
	project := t.TempDir()
	data := t.TempDir()
	writeJar(t, project, "app.jar", map[string]string{"com/foo/Bar.class": "cafebabe"})
	cfg := writeTemp(t, t.TempDir(), "config.json", `{
  "server_ip": "`+server.Addr()+`",
  "server_username": "tester",
  "server_password": "pw",
  "project_path": "`+project+`",
  "data_dir": "`+data+`",
  "conn_timeout": "5s"
}`)

	out, err := runCLI(t, "", "--config", cfg, "ps")
	require.NoError(t, err)
	var rep processReport
	require.NoError(t, yaml.Unmarshal([]byte(out), &rep))
	require.Equal(t, []hotswap.Process{{PID: "4242", Name: "demo-app.jar"}}, rep.Processes)

	resetConfig(t)
	out, err = runCLI(t, "", "--config", cfg, "deploy", "com/foo/Bar.java:10", "4242")
	require.NoError(t, err)
	require.Equal(t, "redefine success, size: 1\n", out)

	got, mode, ok := server.File("/root/poodle/Bar.class")
	require.True(t, ok)
	require.Equal(t, "0644", mode)
	require.Equal(t, "cafebabe", string(got))

	local, err := os.ReadFile(filepath.Join(data, "Bar.class"))
	require.NoError(t, err)
	require.Equal(t, got, local)
	require.Contains(t, server.Commands(), redefine)
}
