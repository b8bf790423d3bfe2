// Package terminal implements the interactive prompts the CLI uses to
// collect configuration values, new logins and confirmations. Secrets
// are read with echo disabled when stdin is a real terminal and fall
// back to plain line reads when input is piped.
package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/needlesslygrim/Locket/pkg/config"
	"github.com/needlesslygrim/Locket/pkg/store"
)

// Terminal prompts on out and reads answers from in.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
	fd  int // file descriptor of in, or -1 when in is not a file
}

// New returns a Terminal wired to stdin and stdout.
func New() *Terminal {
	return NewWith(os.Stdin, os.Stdout)
}

// NewWith returns a Terminal reading from in and writing prompts to
// out. Hidden secret entry is only available when in is a terminal.
func NewWith(in io.Reader, out io.Writer) *Terminal {
	t := &Terminal{in: bufio.NewReader(in), out: out, fd: -1}
	if f, ok := in.(*os.File); ok {
		t.fd = int(f.Fd())
	}
	return t
}

// PromptConfig asks for the database path and serve port, offering
// defaultDBPath and the default port as the values to accept.
func (t *Terminal) PromptConfig(defaultDBPath string) (config.Config, error) {
	path, err := t.promptDefault("Database path", defaultDBPath)
	if err != nil {
		return config.Config{}, err
	}

	for {
		raw, err := t.promptDefault("Serve port", strconv.Itoa(int(config.DefaultPort)))
		if err != nil {
			return config.Config{}, err
		}
		port, err := strconv.ParseUint(raw, 10, 16)
		if err != nil || port == 0 {
			fmt.Fprintln(t.out, "Please enter a port between 1 and 65535.")
			continue
		}
		return config.Config{Path: path, Port: uint16(port)}, nil
	}
}

// PromptLogin asks for the fields of a new login. Name, username and
// secret are required; the URL may be left blank.
func (t *Terminal) PromptLogin() (store.Login, error) {
	name, err := t.promptRequired("Name")
	if err != nil {
		return store.Login{}, err
	}
	username, err := t.promptRequired("Username")
	if err != nil {
		return store.Login{}, err
	}
	secret, err := t.secretRequired("Secret")
	if err != nil {
		return store.Login{}, err
	}
	url, err := t.prompt("URL (blank for none)")
	if err != nil {
		return store.Login{}, err
	}
	return store.NewLogin(name, username, secret, url), nil
}

// PromptName asks for a login name under the given label until the
// user enters something non-empty.
func (t *Terminal) PromptName(label string) (string, error) {
	return t.promptRequired(label)
}

// Confirm asks a yes/no question. Empty input and anything starting
// with n count as no; unrecognized answers are asked again.
func (t *Terminal) Confirm(question string) (bool, error) {
	for {
		fmt.Fprintf(t.out, "%s (y/N): ", question)
		line, err := t.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}
		fmt.Fprintln(t.out, "Please answer y or n.")
	}
}

func (t *Terminal) prompt(label string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", label)
	return t.readLine()
}

func (t *Terminal) promptDefault(label, def string) (string, error) {
	fmt.Fprintf(t.out, "%s [%s]: ", label, def)
	line, err := t.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

func (t *Terminal) promptRequired(label string) (string, error) {
	for {
		value, err := t.prompt(label)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		fmt.Fprintf(t.out, "%s cannot be empty.\n", label)
	}
}

// secretRequired reads a non-empty secret, hiding the input when
// stdin is a terminal.
func (t *Terminal) secretRequired(label string) (string, error) {
	for {
		value, err := t.readSecret(label)
		if err != nil {
			return "", err
		}
		if value != "" {
			return value, nil
		}
		fmt.Fprintf(t.out, "%s cannot be empty.\n", label)
	}
}

func (t *Terminal) readSecret(label string) (string, error) {
	fmt.Fprintf(t.out, "%s: ", label)
	if t.fd >= 0 && term.IsTerminal(t.fd) {
		raw, err := term.ReadPassword(t.fd)
		fmt.Fprintln(t.out)
		if err != nil {
			return "", fmt.Errorf("terminal: read secret: %w", err)
		}
		return strings.TrimSpace(string(raw)), nil
	}
	// Piped input: read a plain line instead.
	return t.readLine()
}

func (t *Terminal) readLine() (string, error) {
	line, err := t.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("terminal: read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
