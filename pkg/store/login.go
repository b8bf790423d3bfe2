package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// Login is a single stored credential. Name is the lookup key and is
// unique within a database; the comparison is done on the NFC
// normalization of the name so visually identical names cannot
// coexist.
type Login struct {
	ID        string    `yaml:"id" json:"id"`
	Name      string    `yaml:"name" json:"name"`
	Username  string    `yaml:"username" json:"username"`
	Secret    string    `yaml:"secret" json:"secret"`
	URL       string    `yaml:"url,omitempty" json:"url,omitempty"`
	CreatedAt time.Time `yaml:"created_at" json:"created_at"`
}

// NewLogin assembles a Login with a fresh ID and creation timestamp.
// The name is trimmed and NFC-normalized; url may be empty.
func NewLogin(name, username, secret, url string) Login {
	return Login{
		ID:        uuid.NewString(),
		Name:      NormalizeName(name),
		Username:  username,
		Secret:    secret,
		URL:       url,
		CreatedAt: time.Now().UTC(),
	}
}

// NormalizeName converts a user-supplied login name to its canonical
// form: surrounding whitespace removed and Unicode normalized to NFC.
func NormalizeName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
