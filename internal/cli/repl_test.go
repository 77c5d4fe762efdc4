package cli

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) ViewResource(context.Context) error {
	f.calls = append(f.calls, "view")
	return nil
}
func (f *fakeExec) ModifyResource(context.Context) error {
	f.calls = append(f.calls, "modify")
	return nil
}
func (f *fakeExec) ViewLogs(context.Context) error {
	f.calls = append(f.calls, "logs")
	return nil
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_NumbersAndNames(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"1",
		"login",
		"3",
		"modify",
		"5",
		"",
		"LOGOUT",
		"foobar",
		"7",
		"register",
	}, "\n")

	exec := &fakeExec{}
	var prompt bytes.Buffer
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader(input)), &prompt)

	assert.Equal(t, []string{"register", "login", "view", "modify", "logs", "logout"}, exec.calls)
	assert.Contains(t, *out, "Invalid choice: foobar")
	assert.Contains(t, *out, "Bye!")
	assert.Contains(t, *out, "1. Register")
}

func TestRunREPL_StopsAtEOF(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("2\n6")), &bytes.Buffer{})

	assert.Equal(t, []string{"login", "logout"}, exec.calls)
}

func TestRunREPL_QuitAlias(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("quit\n4\n")), &bytes.Buffer{})

	assert.Empty(t, exec.calls)
}

func TestRunREPL_PromptStaysOnInputLine(t *testing.T) {
	out := captureOutput(t)

	var prompt bytes.Buffer
	runREPL(context.Background(), &fakeExec{}, func() string { return "(alice user)" },
		bufio.NewReader(strings.NewReader("exit\n")), &prompt)

	assert.Equal(t, "auth(alice user)> ", prompt.String())
	for _, l := range *out {
		assert.NotContains(t, l, "auth(")
	}
}
