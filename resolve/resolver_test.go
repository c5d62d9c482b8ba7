package resolve

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

func TestResolve_CanonicalReferencePassesThroughWithZeroCalls(t *testing.T) {
	fake := &voyagertest.Fake{}
	r := NewResolver()

	id, err := r.Resolve(context.Background(), newSession(fake), "ACoAAB0v6boBDAaf")
	require.NoError(t, err)
	assert.Equal(t, "ACoAAB0v6boBDAaf", id)
	assert.Equal(t, 0, fake.Calls.SearchPeople)
	assert.Equal(t, 0, fake.Calls.GetConversations)
}

func TestResolve_CanonicalReferenceIsIdempotent(t *testing.T) {
	fake := &voyagertest.Fake{}
	r := NewResolver()
	sess := newSession(fake)

	first, err := r.Resolve(context.Background(), sess, "urn42")
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), sess, "urn42")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 0, fake.Calls.SearchPeople, "second call must issue zero additional network calls")
	assert.Equal(t, 0, fake.Calls.GetConversations)
}

func TestResolve_KeywordHitStopsTheCascade(t *testing.T) {
	fake := &voyagertest.Fake{
		SearchPeopleFunc: func(ctx context.Context, query string, filters voyager.SearchFilters) ([]voyager.SearchCandidate, error) {
			return []voyager.SearchCandidate{{URNID: "urn-jane", Name: "Jane Doe"}}, nil
		},
	}
	r := NewResolver()

	id, err := r.Resolve(context.Background(), newSession(fake), "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "urn-jane", id)
	assert.Equal(t, 1, fake.Calls.SearchPeople, "strategies 2 and 3 must not run")
	assert.Equal(t, 0, fake.Calls.GetConversations, "strategy 4 must not run")
}

func TestResolve_TopCandidateWithoutIDDoesNotCount(t *testing.T) {
	calls := 0
	fake := &voyagertest.Fake{
		SearchPeopleFunc: func(ctx context.Context, query string, filters voyager.SearchFilters) ([]voyager.SearchCandidate, error) {
			calls++
			if calls == 1 {
				// Top-ranked hit lacks an id; lower ranks are never consulted.
				return []voyager.SearchCandidate{{Name: "Jane Doe"}, {URNID: "urn-lower", Name: "Jane Doe"}}, nil
			}
			return []voyager.SearchCandidate{{URNID: "urn-structured"}}, nil
		},
	}
	r := NewResolver()

	id, err := r.Resolve(context.Background(), newSession(fake), "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "urn-structured", id)
	assert.Equal(t, 2, fake.Calls.SearchPeople)
}

func TestResolve_ConversationScanIsolation(t *testing.T) {
	fake := &voyagertest.Fake{
		GetConversationsFunc: func(ctx context.Context) ([]voyager.Conversation, error) {
			return []voyager.Conversation{
				{
					ID: "conv1",
					Participants: []voyager.Participant{
						{URNID: "urn-bob", FirstName: "Bob", LastName: "Smith"},
						{URNID: "urn-tomasz", FirstName: "Tomasz", LastName: "Cwik"},
					},
				},
			}, nil
		},
	}
	r := NewResolver()

	id, err := r.Resolve(context.Background(), newSession(fake), "  tomasz   CWIK ")
	require.NoError(t, err)
	assert.Equal(t, "urn-tomasz", id)
	assert.Equal(t, 3, fake.Calls.SearchPeople, "all three search strategies ran empty first")
	assert.Equal(t, 1, fake.Calls.GetConversations)
}

func TestResolve_ExhaustedCascadeIsNotFound(t *testing.T) {
	fake := &voyagertest.Fake{
		GetConversationsFunc: func(ctx context.Context) ([]voyager.Conversation, error) {
			return []voyager.Conversation{
				{ID: "conv1", Participants: []voyager.Participant{{URNID: "urn-x", FirstName: "Alice", LastName: "Jones"}}},
			}, nil
		},
	}
	r := NewResolver()

	_, err := r.Resolve(context.Background(), newSession(fake), "Nobody Here")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 3, fake.Calls.SearchPeople)
	assert.Equal(t, 1, fake.Calls.GetConversations)
}

func TestResolve_EmptyReferenceIsNotFound(t *testing.T) {
	fake := &voyagertest.Fake{}
	r := NewResolver()

	_, err := r.Resolve(context.Background(), newSession(fake), "   ")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, fake.Calls.SearchPeople)
}

func TestResolve_UpstreamFailureIsNotMislabeledAsNotFound(t *testing.T) {
	fake := &voyagertest.Fake{
		SearchPeopleFunc: func(ctx context.Context, query string, filters voyager.SearchFilters) ([]voyager.SearchCandidate, error) {
			return nil, voyager.NewUpstreamError("search_people", 429, nil)
		},
		GetConversationsFunc: func(ctx context.Context) ([]voyager.Conversation, error) {
			return nil, voyager.NewUpstreamError("get_conversations", 429, nil)
		},
	}
	r := NewResolver()

	_, err := r.Resolve(context.Background(), newSession(fake), "Jane Doe")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	var upstream *voyager.UpstreamError
	assert.ErrorAs(t, err, &upstream)
}

func TestResolve_JaneQPublicEndToEnd(t *testing.T) {
	calls := 0
	fake := &voyagertest.Fake{
		SearchPeopleFunc: func(ctx context.Context, query string, filters voyager.SearchFilters) ([]voyager.SearchCandidate, error) {
			calls++
			if calls == 1 {
				return nil, nil // keyword search comes back empty
			}
			return []voyager.SearchCandidate{{URNID: "urn42", Name: "Jane Q. Public"}}, nil
		},
	}
	r := NewResolver()

	id, err := r.Resolve(context.Background(), newSession(fake), "Jane Q. Public")
	require.NoError(t, err)
	assert.Equal(t, "urn42", id)

	require.Equal(t, 2, fake.Calls.SearchPeople, "strategies 3 and 4 must never be attempted")
	assert.Equal(t, 0, fake.Calls.GetConversations)

	// Strategy 1 was a plain keyword query.
	assert.Equal(t, "Jane Q. Public", fake.SearchQueries[0])
	assert.Empty(t, fake.SearchFilters[0].FirstName)

	// Strategy 2 split the reference into first token and remainder, across
	// all network depths with private profiles included.
	second := fake.SearchFilters[1]
	assert.Equal(t, "Jane", second.FirstName)
	assert.Equal(t, "Q. Public", second.LastName)
	assert.Equal(t, voyager.AllNetworkDepths, second.NetworkDepths)
	assert.True(t, second.IncludePrivateProfiles)
}

func TestResolve_BroadSearchForcesAllDepths(t *testing.T) {
	calls := 0
	fake := &voyagertest.Fake{
		SearchPeopleFunc: func(ctx context.Context, query string, filters voyager.SearchFilters) ([]voyager.SearchCandidate, error) {
			calls++
			if calls < 3 {
				return nil, nil
			}
			return []voyager.SearchCandidate{{URNID: "urn-broad"}}, nil
		},
	}
	r := NewResolver()

	id, err := r.Resolve(context.Background(), newSession(fake), "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "urn-broad", id)

	third := fake.SearchFilters[2]
	assert.Equal(t, "Jane Doe", fake.SearchQueries[2], "broad search repeats the raw reference")
	assert.Empty(t, third.FirstName)
	assert.Equal(t, voyager.AllNetworkDepths, third.NetworkDepths)
	assert.True(t, third.IncludePrivateProfiles)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"  Jane   Doe ": "jane doe",
		"JANE DOE":      "jane doe",
		"jane doe":      "jane doe",
		"":              "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, isCanonical("ACoAAB0v6bo"))
	assert.True(t, isCanonical("urn42"))
	assert.False(t, isCanonical("Jane Doe"))
	assert.False(t, isCanonical("Doe,Jane"))
	assert.False(t, isCanonical("Jane\tDoe"))
}
