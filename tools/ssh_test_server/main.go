package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	srv "poodle/tools/sshserv"
)

// A throwaway host for trying poodle against: user "poodle", password from
// POODLE_TEST_PASSWORD (default "poodle"), a canned jps listing and an echo
// of whatever the live-patch pipeline would print.
func main() {
	pass := os.Getenv("POODLE_TEST_PASSWORD")
	if pass == "" {
		pass = "poodle"
	}
	s, err := srv.Start("127.0.0.1:20222", srv.Options{
		User:     "poodle",
		Password: pass,
		Responses: map[string]string{
			"jps": "4242 demo-app.jar\n4243 Jps\n",
		},
	})
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "failed to start test ssh server:", err)
		os.Exit(1)
	}
	_, _ = fmt.Fprintln(os.Stderr, "test ssh server listening on", s.Addr())
	defer s.Stop()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
