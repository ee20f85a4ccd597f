package hotswap

import "strings"

// ProcessListCommand lists JVMs on the remote host.
const ProcessListCommand = "jps"

// processListTool is the name jps reports for itself.
const processListTool = "Jps"

// Process is one row of the remote JVM listing.
type Process struct {
	PID  string `yaml:"java_pid" json:"java_pid"`
	Name string `yaml:"java_name" json:"java_name"`
}

// ParseProcesses reads whitespace-separated "<pid> <name>" rows, skipping
// short rows and the listing tool itself.
func ParseProcesses(text string) []Process {
	out := []Process{}
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 || fields[1] == processListTool {
			continue
		}
		out = append(out, Process{PID: fields[0], Name: fields[1]})
	}
	return out
}
