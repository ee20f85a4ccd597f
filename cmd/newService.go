package cmd

import (
	"errors"
	"strings"

	"go.uber.org/zap"

	"poodle/hotswap"
	"poodle/remote"
)

// newService builds the orchestrator from the merged configuration.
func newService() (*hotswap.Service, error) {
	if configErr != nil {
		return nil, configErr
	}
	return hotswap.New(hotswap.Options{
		ProjectRoot:    cfgProjectPath,
		DataDir:        dataDir(),
		RemoteDir:      cfgRemoteDir,
		ToolInvocation: cfgArthas,
		Dial: func() (hotswap.Remote, error) {
			return dialSessionFunc(remoteConfig(), logger)
		},
		Log: logger,
	}), nil
}

func requireProject() error {
	if strings.TrimSpace(cfgProjectPath) == "" {
		return errors.New("--project is required (or project_path in config.json)")
	}
	return nil
}

func requireRemote() error {
	if strings.TrimSpace(cfgServerIP) == "" {
		return errors.New("--server-ip is required (or server_ip in config.json)")
	}
	if strings.TrimSpace(cfgUser) == "" {
		return errors.New("--user is required (or server_username in config.json)")
	}
	return nil
}

func remoteConfig() remote.Config {
	return remote.Config{
		Address:        cfgServerIP,
		User:           cfgUser,
		Password:       cfgPassword,
		KeyPath:        cfgKeyPath,
		Passphrase:     cfgPassphrase,
		KnownHostsPath: knownHostsPath(),
		StrictHostKey:  cfgStrictHost,
		Timeout:        cfgConnTimeout,
	}
}

// dialSession opens a remote session with an upload progress bar attached.
func dialSession(cfg remote.Config, log *zap.Logger) (hotswap.Remote, error) {
	s, err := remote.Dial(cfg, log)
	if err != nil {
		return nil, err
	}
	s.Progress = uploadProgress
	return s, nil
}
