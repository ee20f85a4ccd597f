package hotswap

import "fmt"

const (
	// DefaultToolInvocation starts the Arthas boot jar on the remote host.
	DefaultToolInvocation = "java -jar /root/arthas/arthas-boot.jar"
	// DefaultRemoteDir is where uploaded classes land.
	DefaultRemoteDir = "/root/poodle"
)

// Command composes the live-patch pipeline: Arthas reads a redefine
// directive followed by stop on stdin and attaches to pid.
func Command(tool, remotePath, pid string) string {
	return fmt.Sprintf("echo -e 'redefine %s\nstop' | %s %s", remotePath, tool, pid)
}

// Command composes the live-patch pipeline using the service's tool.
func (s *Service) Command(remotePath, pid string) string {
	return Command(s.opts.ToolInvocation, remotePath, pid)
}
