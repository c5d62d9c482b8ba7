package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwikio/Hexa-Puffs/config"
	"github.com/cwikio/Hexa-Puffs/session"
	"github.com/cwikio/Hexa-Puffs/voyager"
	"github.com/cwikio/Hexa-Puffs/voyager/voyagertest"
)

func newSession(client voyager.Client) *session.Session {
	return session.NewSession(client, config.SourcePassword)
}

func probeOf(body string) func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
	return func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
		return voyager.ParseProbe([]byte(body)), nil
	}
}

func TestOwnID_NestedContainerURNWins(t *testing.T) {
	fake := &voyagertest.Fake{
		ProbeIdentityFunc: probeOf(`{"miniProfile":{"entityUrn":"urn:li:fs_miniProfile:123"},"objectUrn":"urn:li:member:999"}`),
	}
	e := NewExtractor()

	id, err := e.OwnID(context.Background(), newSession(fake))
	require.NoError(t, err)
	assert.Equal(t, "123", id)
	assert.Equal(t, 1, fake.Calls.Probe)
	assert.Equal(t, 0, fake.Calls.GetProfile)
}

func TestOwnID_PlainNumericIDIsLastResort(t *testing.T) {
	fake := &voyagertest.Fake{
		ProbeIdentityFunc: probeOf(`{"miniProfile":{"publicIdentifier":"jane-doe"},"plainId":42}`),
	}
	e := NewExtractor()

	id, err := e.OwnID(context.Background(), newSession(fake))
	require.NoError(t, err)
	assert.Equal(t, "42", id)
}

func TestOwnID_FlatURNBeatsPlainID(t *testing.T) {
	fake := &voyagertest.Fake{
		ProbeIdentityFunc: probeOf(`{"miniProfile":{"publicIdentifier":"jane-doe"},"objectUrn":"urn:li:member:777","plainId":42}`),
	}
	e := NewExtractor()

	id, err := e.OwnID(context.Background(), newSession(fake))
	require.NoError(t, err)
	assert.Equal(t, "777", id)
}

func TestOwnID_OverrideResolvesThroughOneProfileLookup(t *testing.T) {
	fake := &voyagertest.Fake{
		// Profile-shaped but without any id-bearing field.
		ProbeIdentityFunc: probeOf(`{"miniProfile":{"publicIdentifier":"jane-doe"}}`),
		GetProfileFunc: func(ctx context.Context, publicID string) (*voyager.Profile, error) {
			return &voyager.Profile{PublicID: publicID, URNID: "urn-override"}, nil
		},
	}
	e := NewExtractor(func(o *Options) { o.Override = "jane-doe" })

	id, err := e.OwnID(context.Background(), newSession(fake))
	require.NoError(t, err)
	assert.Equal(t, "urn-override", id)
	assert.Equal(t, 1, fake.Calls.GetProfile, "exactly one profile lookup for the override")
}

func TestOwnID_ErrorProbeEvictsAndRetriesOnceWithoutCache(t *testing.T) {
	calls := 0
	fake := &voyagertest.Fake{
		ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
			calls++
			if calls == 1 {
				return voyagertest.InvalidProbe(), nil
			}
			return voyager.ParseProbe([]byte(`{"miniProfile":{"entityUrn":"urn:li:fs_miniProfile:fresh"}}`)), nil
		},
	}
	e := NewExtractor()

	id, err := e.OwnID(context.Background(), newSession(fake))
	require.NoError(t, err)
	assert.Equal(t, "fresh", id)
	assert.Equal(t, 1, fake.Calls.ProbeCached)
	assert.Equal(t, 1, fake.Calls.Evict, "cache must be evicted before the forced re-probe")
	assert.Equal(t, 1, fake.Calls.ProbeForced)
}

func TestOwnID_StillInvalidAfterRetryWithoutOverrideIsUndeterminable(t *testing.T) {
	fake := &voyagertest.Fake{
		ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
			return voyagertest.InvalidProbe(), nil
		},
	}
	e := NewExtractor()

	_, err := e.OwnID(context.Background(), newSession(fake))
	require.ErrorIs(t, err, ErrUndeterminable)
	assert.Equal(t, 2, fake.Calls.Probe, "one cached probe plus one forced re-probe, no more")
	assert.Equal(t, 1, fake.Calls.Evict)
}

func TestOwnHandle_NestedContainerFieldWins(t *testing.T) {
	fake := &voyagertest.Fake{
		ProbeIdentityFunc: probeOf(`{"miniProfile":{"publicIdentifier":"nested-handle"},"publicIdentifier":"flat-handle","vanityName":"vanity"}`),
	}
	e := NewExtractor()

	handle, err := e.OwnHandle(context.Background(), newSession(fake))
	require.NoError(t, err)
	assert.Equal(t, "nested-handle", handle)
}

func TestOwnHandle_FallsThroughLegacyFields(t *testing.T) {
	fake := &voyagertest.Fake{
		ProbeIdentityFunc: probeOf(`{"miniProfile":{"entityUrn":"urn:li:fs_miniProfile:1"},"vanityName":"vanity-handle"}`),
	}
	e := NewExtractor()

	handle, err := e.OwnHandle(context.Background(), newSession(fake))
	require.NoError(t, err)
	assert.Equal(t, "vanity-handle", handle)
}

func TestOwnHandle_OverrideCoversAnUnusableProbe(t *testing.T) {
	fake := &voyagertest.Fake{
		ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
			return voyagertest.InvalidProbe(), nil
		},
	}
	e := NewExtractor(func(o *Options) { o.Override = "operator-handle" })

	handle, err := e.OwnHandle(context.Background(), newSession(fake))
	require.NoError(t, err)
	assert.Equal(t, "operator-handle", handle)
}

func TestOwnHandle_UndeterminableNamesTheOverrideVariable(t *testing.T) {
	fake := &voyagertest.Fake{
		ProbeIdentityFunc: func(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
			return voyagertest.InvalidProbe(), nil
		},
	}
	e := NewExtractor()

	_, err := e.OwnHandle(context.Background(), newSession(fake))
	require.ErrorIs(t, err, ErrUndeterminable)
	assert.Contains(t, err.Error(), "LINKEDIN_PUBLIC_ID")
}

func TestExtractID_SkipsEmptyAndMalformedEntries(t *testing.T) {
	// An entry that exists but is empty must not stop the scan.
	probe := voyager.ParseProbe([]byte(`{"entityUrn":"","objectUrn":"urn:li:member:55"}`))
	assert.Equal(t, "55", extractID(probe))

	probe = voyager.ParseProbe([]byte(`{"unrelated":true}`))
	assert.Empty(t, extractID(probe))
}
