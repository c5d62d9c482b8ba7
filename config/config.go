// Package config loads the server configuration from the environment.
//
// All settings are read once at startup. Credentials come in two forms: an
// imported browser cookie pair (li_at + JSESSIONID) or an email/password
// pair. Cookies take priority when both are present. Absence of both forms
// is a fatal configuration error.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// CredentialSource identifies which credential form a session was built from.
type CredentialSource string

const (
	// SourceCookies means the session was built from imported browser cookies.
	SourceCookies CredentialSource = "cookies"
	// SourcePassword means the session was built from an email/password login.
	SourcePassword CredentialSource = "password"
)

// Config holds every startup setting. Fields are read-only after Load.
type Config struct {
	// Email is the account identifier. Required for password login and for
	// locating the on-disk cookie cache artifact.
	Email string
	// Password is the account password. Optional when cookies are supplied.
	Password string
	// CookieLiAt and CookieJSESSIONID form the imported browser cookie pair.
	CookieLiAt       string
	CookieJSESSIONID string
	// PublicIDOverride is an operator-supplied public profile handle, used as
	// the last resort when own-identity extraction fails.
	PublicIDOverride string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is text or json.
	LogFormat string
}

// ConfigurationError reports missing or incomplete startup configuration.
// It is fatal: the server refuses to start rather than retry.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Load reads the configuration from LINKEDIN_* environment variables.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("linkedin")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	return &Config{
		Email:            v.GetString("email"),
		Password:         v.GetString("password"),
		CookieLiAt:       v.GetString("cookie_li_at"),
		CookieJSESSIONID: v.GetString("cookie_jsessionid"),
		PublicIDOverride: v.GetString("public_id"),
		LogLevel:         v.GetString("log_level"),
		LogFormat:        v.GetString("log_format"),
	}
}

// HasCookies reports whether a complete cookie pair is configured.
func (c *Config) HasCookies() bool {
	return c.CookieLiAt != "" && c.CookieJSESSIONID != ""
}

// HasPassword reports whether a complete email/password pair is configured.
func (c *Config) HasPassword() bool {
	return c.Email != "" && c.Password != ""
}

// Validate checks that at least one complete credential form is present.
func (c *Config) Validate() error {
	if !c.HasCookies() && !c.HasPassword() {
		return &ConfigurationError{
			Message: "no credentials configured: set LINKEDIN_COOKIE_LI_AT and " +
				"LINKEDIN_COOKIE_JSESSIONID, or LINKEDIN_EMAIL and LINKEDIN_PASSWORD",
		}
	}
	return nil
}

// PrimarySource returns the highest-priority credential source available.
// Cookies win over password. Callers must Validate first.
func (c *Config) PrimarySource() CredentialSource {
	if c.HasCookies() {
		return SourceCookies
	}
	return SourcePassword
}
