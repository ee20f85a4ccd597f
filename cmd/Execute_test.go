package cmd

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExecute_Success_NoExit(t *testing.T) {
	resetConfig(t)
	origExit := exitFunc
	t.Cleanup(func() { exitFunc = origExit })
	calledExit := -1
	exitFunc = func(code int) { calledExit = code }

	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"config", "show"})
	Execute()
	require.Equal(t, -1, calledExit)
}

func TestExecute_ErrorExits1(t *testing.T) {
	resetConfig(t)
	origExit := exitFunc
	t.Cleanup(func() { exitFunc = origExit })
	code := 0
	exitFunc = func(c int) { code = c }

	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"match", "Bar.java"})
	Execute()
	require.Equal(t, 1, code)
}
