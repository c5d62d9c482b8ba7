package voyager

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CookieStore persists authenticated session cookies on disk, one file per
// account. The client writes the file after a successful login and loads it
// on construction; the session manager deletes it when it detects staleness.
// Nothing else touches these files.
type CookieStore struct {
	dir string
}

// SavedCookie is the on-disk representation of one cookie.
type SavedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Domain  string    `json:"domain,omitempty"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// DefaultCookieDir returns ~/.hexapuffs/cookies, falling back to a relative
// directory when the home directory cannot be determined.
func DefaultCookieDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".hexapuffs", "cookies")
	}
	return filepath.Join(home, ".hexapuffs", "cookies")
}

// NewCookieStore creates a store rooted at dir; empty dir selects the default.
func NewCookieStore(dir string) *CookieStore {
	if dir == "" {
		dir = DefaultCookieDir()
	}
	return &CookieStore{dir: dir}
}

// Path returns the cookie file path for an account identifier.
func (s *CookieStore) Path(account string) string {
	// Account identifiers are emails; keep the filename filesystem-safe.
	safe := strings.ReplaceAll(account, string(os.PathSeparator), "_")
	return filepath.Join(s.dir, safe+".json")
}

// Save writes the cookie set for an account, creating the directory as needed.
func (s *CookieStore) Save(account string, cookies []*http.Cookie) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	saved := make([]SavedCookie, 0, len(cookies))
	for _, c := range cookies {
		saved = append(saved, SavedCookie{Name: c.Name, Value: c.Value, Domain: c.Domain, Path: c.Path, Expires: c.Expires})
	}
	data, err := json.MarshalIndent(saved, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path(account), data, 0o600)
}

// Load reads the cookie set for an account. A missing file yields (nil, nil):
// absence of cached cookies is an expected state, not an error.
func (s *CookieStore) Load(account string) ([]*http.Cookie, error) {
	data, err := os.ReadFile(s.Path(account))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var saved []SavedCookie
	if err := json.Unmarshal(data, &saved); err != nil {
		return nil, err
	}
	cookies := make([]*http.Cookie, 0, len(saved))
	for _, c := range saved {
		cookies = append(cookies, &http.Cookie{Name: c.Name, Value: c.Value, Domain: c.Domain, Path: c.Path, Expires: c.Expires})
	}
	return cookies, nil
}

// Delete removes the cookie file for an account. It reports whether a file
// was actually removed.
func (s *CookieStore) Delete(account string) (bool, error) {
	err := os.Remove(s.Path(account))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
