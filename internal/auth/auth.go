package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/idilsaglam/lostfound/internal/config"
)

const sessionFileName = "session.json"

// Session is the signed-in reporter. Name and Email prefill new reports.
type Session struct {
	Token     string     `json:"token"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Source    string     `json:"source"`     // "env" | "file"
	CreatedAt time.Time  `json:"created_at"` // when we saved to file
	ExpiresAt *time.Time `json:"expires_at"` // optional
}

func sessionDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".lostfound"), nil
}

func sessionPath() (string, error) {
	dir, err := sessionDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sessionFileName), nil
}

// Get returns the current session, or nil when nobody is signed in.
// LOSTFOUND_TOKEN overrides the token stored on disk.
func Get() (*Session, error) {
	if env := strings.TrimSpace(os.Getenv(config.EnvToken)); env != "" {
		s := &Session{Token: StripBearer(env), Source: "env"}
		// name and email are optional here; an unreadable file just leaves them empty
		if fromFile, err := readFile(); err == nil && fromFile != nil {
			s.Name, s.Email = fromFile.Name, fromFile.Email
		}
		return s, nil
	}
	return readFile()
}

func readFile() (*Session, error) {
	p, err := sessionPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil // not logged in
		}
		return nil, fmt.Errorf("read session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}
	s.Token = StripBearer(s.Token)
	s.Source = "file"
	return &s, nil
}

// Set stores the session under ~/.lostfound with owner-only permissions.
func Set(s Session) error {
	s.Token = StripBearer(strings.TrimSpace(s.Token))
	s.Name = strings.TrimSpace(s.Name)
	s.Email = strings.TrimSpace(s.Email)
	if s.Token == "" {
		return fmt.Errorf("empty token")
	}
	if s.Name == "" {
		return fmt.Errorf("empty name")
	}
	dir, err := sessionDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	s.Source = "file"
	s.CreatedAt = time.Now()
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	p, _ := sessionPath()
	if err := os.WriteFile(p, b, 0o600); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

func Delete() error {
	p, err := sessionPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("remove: %w", err)
	}
	return nil
}

// Expired reports whether the session carries an expiry in the past.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

func StripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
