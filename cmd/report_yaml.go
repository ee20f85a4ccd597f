package cmd

import (
	"bufio"
	"bytes"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"poodle/archive"
	"poodle/hotswap"
)

// matchReport is what `match` prints: the derived fragment and every class
// extracted for it.
type matchReport struct {
	Source    string          `yaml:"source"`
	Fragment  string          `yaml:"fragment"`
	Project   string          `yaml:"project"`
	DataDir   string          `yaml:"data_dir"`
	Generated string          `yaml:"generated"`
	Matches   []archive.Match `yaml:"matches"`
}

// processReport is what `ps` prints.
type processReport struct {
	Host      string            `yaml:"host"`
	Generated string            `yaml:"generated"`
	Processes []hotswap.Process `yaml:"processes"`
}

func newMatchReport(source string, matches []archive.Match) *matchReport {
	if matches == nil {
		matches = []archive.Match{}
	}
	return &matchReport{
		Source:    source,
		Fragment:  hotswap.Fragment(source),
		Project:   cfgProjectPath,
		DataDir:   dataDir(),
		Generated: time.Now().Format(time.RFC3339),
		Matches:   matches,
	}
}

func newProcessReport(host string, procs []hotswap.Process) *processReport {
	return &processReport{
		Host:      host,
		Generated: time.Now().Format(time.RFC3339),
		Processes: procs,
	}
}

// writeYAMLReport serializes the report to YAML with indentation and writes to
// the provided writer in a buffered manner.
func writeYAMLReport(w io.Writer, r any) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		_ = enc.Close()
		return err
	}
	_ = enc.Close()
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(buf.Bytes()); err != nil {
		return err
	}
	return bw.Flush()
}
