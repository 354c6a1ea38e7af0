package command

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestShell_SharesSession(t *testing.T) {
	testEnv(t)
	srv := newMockServer(t)
	st := newTestState()

	var out, errOut bytes.Buffer
	app := NewApp(st)
	app.Reader = strings.NewReader("login\nwhoami\nposition 10\nshell\nexit\n")
	app.Writer = &out
	app.ErrWriter = &errOut

	args := append([]string{"skywalker-cli"}, loginArgs(srv)...)
	if err := app.RunContext(context.Background(), append(args, "shell")); err != nil {
		t.Fatalf("shell: %v", err)
	}

	mustContain(t, out.String(), "Logged in to "+srv.URL, "logged_in", "true", "20.25", "already in shell")
	if n := srv.authCalls.Load(); n != 1 {
		t.Errorf("auth calls = %d, want 1", n)
	}
	if n := srv.positionCalls.Load(); n != 1 {
		t.Errorf("position calls = %d, want 1", n)
	}

	home, _ := os.UserHomeDir()
	data, err := os.ReadFile(filepath.Join(home, ".skywalker", "history"))
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.HasPrefix(string(data), "login\nwhoami\n") {
		t.Errorf("history = %q", data)
	}
}

func TestCommandNames(t *testing.T) {
	names := commandNames(NewApp(newTestState()).Commands)
	joined := strings.Join(names, ",")
	for _, want := range []string{"login", "tags list", "tags register", "config set", "track"} {
		if !strings.Contains(joined, want) {
			t.Errorf("command names %v missing %q", names, want)
		}
	}
	for _, n := range names {
		if n == "shell" {
			t.Error("shell offered inside the shell")
		}
	}
}
