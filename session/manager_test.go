package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwikio/Hexa-Puffs/config"
	"github.com/cwikio/Hexa-Puffs/voyager"
	"github.com/cwikio/Hexa-Puffs/voyager/voyagertest"
)

type fakeArtifacts struct {
	deletes int
	present bool
}

func (f *fakeArtifacts) Delete(account string) (bool, error) {
	f.deletes++
	was := f.present
	f.present = false
	return was, nil
}

func passwordConfig() *config.Config {
	return &config.Config{Email: "user@example.com", Password: "hunter2"}
}

func TestAcquire_ValidSessionFirstTry(t *testing.T) {
	builds := 0
	client := &voyagertest.Fake{
		ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
			return voyagertest.ValidProbe(), nil
		},
	}
	artifacts := &fakeArtifacts{present: true}
	m := NewManager(passwordConfig(), func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		builds++
		return client, nil
	}, func(o *Options) { o.Artifacts = artifacts })

	sess, err := m.Acquire(context.Background())
	require.NoError(t, err)
	assert.False(t, sess.Degraded())
	assert.Equal(t, config.SourcePassword, sess.Source())
	assert.Equal(t, 1, builds)
	assert.Equal(t, 1, client.Calls.Probe)
	assert.Equal(t, 0, artifacts.deletes, "no repair should run for a valid session")
}

func TestAcquire_TwoInvalidProbesDeleteArtifactOnceAndDegrade(t *testing.T) {
	builds := 0
	probes := 0
	artifacts := &fakeArtifacts{present: true}
	m := NewManager(passwordConfig(), func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		builds++
		return &voyagertest.Fake{
			ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
				probes++
				return voyagertest.InvalidProbe(), nil
			},
		}, nil
	}, func(o *Options) { o.Artifacts = artifacts })

	sess, err := m.Acquire(context.Background())
	require.NoError(t, err, "a degraded session is returned, never an error")
	assert.True(t, sess.Degraded())
	assert.Equal(t, 2, builds, "initial build plus one rebuild")
	assert.Equal(t, 2, probes, "exactly one automatic retry")
	assert.Equal(t, 1, artifacts.deletes, "exactly one cached-credential deletion")
}

func TestAcquire_RepairRecoversAfterArtifactDeletion(t *testing.T) {
	builds := 0
	artifacts := &fakeArtifacts{present: true}
	m := NewManager(passwordConfig(), func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		builds++
		attempt := builds
		return &voyagertest.Fake{
			ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
				if attempt == 1 {
					return voyagertest.InvalidProbe(), nil
				}
				return voyagertest.ValidProbe(), nil
			},
		}, nil
	}, func(o *Options) { o.Artifacts = artifacts })

	sess, err := m.Acquire(context.Background())
	require.NoError(t, err)
	assert.False(t, sess.Degraded())
	assert.Equal(t, 2, builds)
	assert.Equal(t, 1, artifacts.deletes)
}

func TestAcquire_NoCredentialsIsFatal(t *testing.T) {
	m := NewManager(&config.Config{}, func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		t.Fatal("build must not run without credentials")
		return nil, nil
	})

	_, err := m.Acquire(context.Background())
	var cfgErr *config.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestAcquire_CookieRejectionFallsBackToPassword(t *testing.T) {
	cfg := &config.Config{
		Email: "user@example.com", Password: "hunter2",
		CookieLiAt: "tok", CookieJSESSIONID: "ajax:1",
	}
	var sources []config.CredentialSource
	m := NewManager(cfg, func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		sources = append(sources, source)
		if source == config.SourceCookies {
			return nil, voyager.ErrAuthRejected
		}
		return &voyagertest.Fake{
			ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
				return voyagertest.ValidProbe(), nil
			},
		}, nil
	})

	sess, err := m.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, config.SourcePassword, sess.Source())
	assert.Equal(t, []config.CredentialSource{config.SourceCookies, config.SourcePassword}, sources)
}

func TestAcquire_DegradedCookiesThenHealthyPassword(t *testing.T) {
	cfg := &config.Config{
		Email: "user@example.com", Password: "hunter2",
		CookieLiAt: "tok", CookieJSESSIONID: "ajax:1",
	}
	m := NewManager(cfg, func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		valid := source == config.SourcePassword
		return &voyagertest.Fake{
			ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
				if valid {
					return voyagertest.ValidProbe(), nil
				}
				return voyagertest.InvalidProbe(), nil
			},
		}, nil
	})

	sess, err := m.Acquire(context.Background())
	require.NoError(t, err)
	assert.False(t, sess.Degraded())
	assert.Equal(t, config.SourcePassword, sess.Source())
}

func TestAcquire_DegradedEverywhereStillReturnsASession(t *testing.T) {
	cfg := &config.Config{
		Email: "user@example.com", Password: "hunter2",
		CookieLiAt: "tok", CookieJSESSIONID: "ajax:1",
	}
	m := NewManager(cfg, func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		if source == config.SourcePassword {
			return nil, voyager.ErrAuthRejected
		}
		return &voyagertest.Fake{
			ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
				return voyagertest.InvalidProbe(), nil
			},
		}, nil
	})

	sess, err := m.Acquire(context.Background())
	require.NoError(t, err)
	assert.True(t, sess.Degraded())
	assert.Equal(t, config.SourceCookies, sess.Source())
}

func TestAcquire_IsIdempotent(t *testing.T) {
	builds := 0
	m := NewManager(passwordConfig(), func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		builds++
		return &voyagertest.Fake{
			ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
				return voyagertest.ValidProbe(), nil
			},
		}, nil
	})

	first, err := m.Acquire(context.Background())
	require.NoError(t, err)
	second, err := m.Acquire(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, builds)
}

func TestAcquire_ConcurrentFirstCallersBuildOnce(t *testing.T) {
	builds := 0
	m := NewManager(passwordConfig(), func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		builds++
		return &voyagertest.Fake{
			ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
				return voyagertest.ValidProbe(), nil
			},
		}, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Acquire(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, builds, "first-time construction must be single-flight")
}

func TestReset_ClearsTheCachedSession(t *testing.T) {
	builds := 0
	m := NewManager(passwordConfig(), func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		builds++
		return &voyagertest.Fake{
			ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
				return voyagertest.ValidProbe(), nil
			},
		}, nil
	})

	_, err := m.Acquire(context.Background())
	require.NoError(t, err)
	m.Reset()
	_, err = m.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, builds)
}

func TestAcquire_BuildFailurePropagates(t *testing.T) {
	wantErr := errors.New("network down")
	m := NewManager(passwordConfig(), func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		return nil, wantErr
	})

	_, err := m.Acquire(context.Background())
	require.ErrorIs(t, err, wantErr)
}
