package terminal

import (
	"bytes"
	"strings"
	"testing"

	"github.com/needlesslygrim/Locket/pkg/config"
)

func newTestTerminal(input string) (*Terminal, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewWith(strings.NewReader(input), out), out
}

func TestPromptConfigAcceptsDefaults(t *testing.T) {
	term, out := newTestTerminal("\n\n")

	cfg, err := term.PromptConfig("/default/gondolin.db")
	if err != nil {
		t.Fatalf("PromptConfig() failed: %v", err)
	}
	if cfg.Path != "/default/gondolin.db" {
		t.Errorf("Path = %q, want the default", cfg.Path)
	}
	if cfg.Port != config.DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, config.DefaultPort)
	}
	if !strings.Contains(out.String(), "/default/gondolin.db") {
		t.Error("prompt did not show the suggested database path")
	}
}

func TestPromptConfigCustomValues(t *testing.T) {
	term, _ := newTestTerminal("/data/creds.db\n9001\n")

	cfg, err := term.PromptConfig("/default/gondolin.db")
	if err != nil {
		t.Fatalf("PromptConfig() failed: %v", err)
	}
	if cfg.Path != "/data/creds.db" {
		t.Errorf("Path = %q, want /data/creds.db", cfg.Path)
	}
	if cfg.Port != 9001 {
		t.Errorf("Port = %d, want 9001", cfg.Port)
	}
}

func TestPromptConfigRejectsBadPorts(t *testing.T) {
	term, out := newTestTerminal("\nnope\n70000\n0\n8081\n")

	cfg, err := term.PromptConfig("/x.db")
	if err != nil {
		t.Fatalf("PromptConfig() failed: %v", err)
	}
	if cfg.Port != 8081 {
		t.Errorf("Port = %d, want 8081", cfg.Port)
	}
	if !strings.Contains(out.String(), "between 1 and 65535") {
		t.Error("bad ports were not called out")
	}
}

func TestPromptLogin(t *testing.T) {
	term, _ := newTestTerminal("github\ngrim\nhunter2\nhttps://github.com\n")

	login, err := term.PromptLogin()
	if err != nil {
		t.Fatalf("PromptLogin() failed: %v", err)
	}
	if login.Name != "github" || login.Username != "grim" || login.Secret != "hunter2" {
		t.Errorf("PromptLogin() = %+v, want the entered values", login)
	}
	if login.URL != "https://github.com" {
		t.Errorf("URL = %q, want https://github.com", login.URL)
	}
	if login.ID == "" {
		t.Error("login has no ID")
	}
}

func TestPromptLoginOptionalURL(t *testing.T) {
	term, _ := newTestTerminal("github\ngrim\nhunter2\n\n")

	login, err := term.PromptLogin()
	if err != nil {
		t.Fatalf("PromptLogin() failed: %v", err)
	}
	if login.URL != "" {
		t.Errorf("URL = %q, want empty", login.URL)
	}
}

func TestPromptLoginReasksEmptyFields(t *testing.T) {
	term, out := newTestTerminal("\n\ngithub\ngrim\n\nhunter2\n\n")

	login, err := term.PromptLogin()
	if err != nil {
		t.Fatalf("PromptLogin() failed: %v", err)
	}
	if login.Name != "github" || login.Secret != "hunter2" {
		t.Errorf("PromptLogin() = %+v, want the non-empty values", login)
	}
	if !strings.Contains(out.String(), "cannot be empty") {
		t.Error("empty answers were not called out")
	}
}

func TestPromptLoginInputClosed(t *testing.T) {
	term, _ := newTestTerminal("github\n")

	if _, err := term.PromptLogin(); err == nil {
		t.Fatal("PromptLogin() with closed input succeeded")
	}
}

func TestPromptName(t *testing.T) {
	term, out := newTestTerminal("\ngithub\n")

	name, err := term.PromptName("Login to remove")
	if err != nil {
		t.Fatalf("PromptName() failed: %v", err)
	}
	if name != "github" {
		t.Errorf("PromptName() = %q, want github", name)
	}
	if !strings.Contains(out.String(), "Login to remove") {
		t.Error("prompt did not use the given label")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"Y\n", true},
		{"yes\n", true},
		{"n\n", false},
		{"no\n", false},
		{"\n", false},
		{"maybe\nyes\n", true},
	}
	for _, tt := range tests {
		term, _ := newTestTerminal(tt.input)
		got, err := term.Confirm("Proceed?")
		if err != nil {
			t.Fatalf("Confirm(%q) failed: %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("Confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSecretFallsBackToPlainRead(t *testing.T) {
	// The reader is not a terminal, so the secret is read as a plain
	// line rather than through the hidden-input path.
	term, _ := newTestTerminal("github\ngrim\ntops3cret\n\n")

	login, err := term.PromptLogin()
	if err != nil {
		t.Fatalf("PromptLogin() failed: %v", err)
	}
	if login.Secret != "tops3cret" {
		t.Errorf("Secret = %q, want tops3cret", login.Secret)
	}
}
