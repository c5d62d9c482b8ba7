// Package session owns the single process-wide upstream session: lazy
// construction, validation via the health probe, and one-shot repair when
// cached credentials turn out to be stale.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/cwikio/Hexa-Puffs/config"
	"github.com/cwikio/Hexa-Puffs/logging"
	"github.com/cwikio/Hexa-Puffs/voyager"
)

// BuildFunc constructs and authenticates an upstream client from one
// credential source. The manager calls it at most twice per source: once for
// the initial build and once for the post-repair rebuild.
type BuildFunc func(ctx context.Context, source config.CredentialSource) (voyager.Client, error)

// ArtifactStore is the slice of the cookie store the manager needs: deleting
// the cached credential artifact of one account. Satisfied by
// *voyager.CookieStore.
type ArtifactStore interface {
	Delete(account string) (bool, error)
}

// Session is the live handle handed to resolvers, extractors and tools.
// It is created once per process and mutated only by the Manager.
type Session struct {
	client   voyager.Client
	source   config.CredentialSource
	degraded bool
}

// NewSession wraps an already-authenticated client. Intended for tests;
// production sessions come from Manager.Acquire.
func NewSession(client voyager.Client, source config.CredentialSource) *Session {
	return &Session{client: client, source: source}
}

// Client returns the upstream client behind this session.
func (s *Session) Client() voyager.Client { return s.client }

// Source returns the credential source the session was built from.
func (s *Session) Source() config.CredentialSource { return s.source }

// Degraded reports whether validation failed even after the single repair
// attempt. A degraded session is still returned to callers: some endpoints
// may work, and failure should surface at the point of actual use.
func (s *Session) Degraded() bool { return s.degraded }

// Options holds optional Manager dependencies.
type Options struct {
	// Artifacts is the cached-credential store; nil disables artifact
	// deletion during repair.
	Artifacts ArtifactStore
	Logger    logging.Logger
}

// Manager produces and maintains the session. Acquire is idempotent; the
// first call builds, validates and (if needed) repairs, every later call
// returns the cached session. Safe for concurrent use: a mutex makes the
// first-time construction single-flight so concurrent callers cannot race
// into two logins.
type Manager struct {
	cfg       *config.Config
	build     BuildFunc
	artifacts ArtifactStore
	logger    logging.Logger

	mu      sync.Mutex
	current *Session
}

// NewManager creates a Manager.
func NewManager(cfg *config.Config, build BuildFunc, optFns ...func(o *Options)) *Manager {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Manager{cfg: cfg, build: build, artifacts: opts.Artifacts, logger: opts.Logger}
}

// Acquire returns the process session, building it on first use.
//
// Credential priority is cookies over password. When the cookie flow is
// rejected or stays invalid after repair and a password pair is also
// configured, the whole build/validate/repair sequence runs once more with
// the password source before the manager settles for a degraded session.
func (m *Manager) Acquire(ctx context.Context) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current != nil {
		return m.current, nil
	}
	if err := m.cfg.Validate(); err != nil {
		return nil, err
	}

	sources := []config.CredentialSource{m.cfg.PrimarySource()}
	if sources[0] == config.SourceCookies && m.cfg.HasPassword() {
		sources = append(sources, config.SourcePassword)
	}

	var (
		fallback *Session // degraded session kept while a better source is tried
		lastErr  error
	)
	for i, source := range sources {
		sess, err := m.establish(ctx, source)
		if err != nil {
			lastErr = err
			if errors.Is(err, voyager.ErrAuthRejected) && i < len(sources)-1 {
				m.logger.Warn("credential source rejected, falling back", "source", string(source))
				continue
			}
			break
		}
		if sess.degraded && i < len(sources)-1 {
			m.logger.Warn("session degraded, trying next credential source", "source", string(source))
			fallback = sess
			continue
		}
		m.current = sess
		return sess, nil
	}

	// Repair failed everywhere. A degraded session beats no session.
	if fallback != nil {
		m.current = fallback
		return fallback, nil
	}
	return nil, lastErr
}

// Reset clears the cached session. Test isolation only.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = nil
}

// establish runs the build/validate/repair sequence for one credential
// source: build, probe, and on an invalid probe delete the cached credential
// artifact, rebuild and probe exactly once more. Two probes maximum.
func (m *Manager) establish(ctx context.Context, source config.CredentialSource) (*Session, error) {
	client, err := m.build(ctx, source)
	if err != nil {
		return nil, err
	}
	if m.validate(ctx, client) {
		return &Session{client: client, source: source}, nil
	}

	m.evictArtifact()

	rebuilt, err := m.build(ctx, source)
	if err != nil {
		return nil, err
	}
	if m.validate(ctx, rebuilt) {
		m.logger.Info("re-authentication successful after credential cache reset", "source", string(source))
		return &Session{client: rebuilt, source: source}, nil
	}

	m.logger.Warn("session still invalid after retry, continuing degraded", "source", string(source))
	return &Session{client: rebuilt, source: source, degraded: true}, nil
}

// validate classifies one health probe. Transport failures count as invalid:
// the repair path handles both stale cookies and flaky probes the same way.
func (m *Manager) validate(ctx context.Context, client voyager.Client) bool {
	probe, err := client.ProbeIdentity(ctx, true)
	if err != nil {
		m.logger.Warn("session validation failed", "error", err)
		return false
	}
	if probe.Shape() == voyager.ErrorShape {
		m.logger.Warn("health probe returned error envelope, session invalid", "status", probe.Status())
		return false
	}
	return true
}

// evictArtifact deletes the cached credential file for the configured
// account, if any. The stale cache is exactly what makes the rebuilt login
// fresh instead of replaying dead cookies.
func (m *Manager) evictArtifact() {
	if m.artifacts == nil || m.cfg.Email == "" {
		return
	}
	removed, err := m.artifacts.Delete(m.cfg.Email)
	switch {
	case err != nil:
		m.logger.Warn("failed to delete credential cache", "error", err)
	case removed:
		m.logger.Warn("deleted stale credential cache, re-authenticating", "account", m.cfg.Email)
	default:
		m.logger.Warn("session invalid but no credential cache to delete")
	}
}
