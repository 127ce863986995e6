// ABOUTME: Remembers the last email that signed in successfully
// ABOUTME: Stores it in the XDG config directory to prefill the login form

package lastlogin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Store manages the remembered email. Only the email is kept; passwords
// and tokens are never written to disk.
type Store struct {
	configDir string
}

type lastLoginData struct {
	Email string `json:"email"`
}

// New creates a Store backed by the given config directory
func New(configDir string) *Store {
	return &Store{configDir: configDir}
}

func (s *Store) configFile() string {
	return filepath.Join(s.configDir, "lastlogin.json")
}

// Load returns the remembered email, or "" when nothing is stored
func (s *Store) Load() string {
	if s.configDir == "" {
		return ""
	}

	data, err := os.ReadFile(s.configFile())
	if err != nil {
		return ""
	}

	var last lastLoginData
	if err := json.Unmarshal(data, &last); err != nil {
		// Invalid JSON, start fresh
		return ""
	}

	return last.Email
}

// Save writes the email to disk. Blank emails clear the stored value.
func (s *Store) Save(email string) error {
	if s.configDir == "" {
		return nil
	}

	if err := os.MkdirAll(s.configDir, 0700); err != nil {
		return err
	}

	if strings.TrimSpace(email) == "" {
		if err := os.Remove(s.configFile()); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}

	data, err := json.Marshal(lastLoginData{Email: email})
	if err != nil {
		return err
	}

	return os.WriteFile(s.configFile(), data, 0600)
}
