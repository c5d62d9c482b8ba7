// Package resolve turns free-text recipient references into the canonical
// URN ids the upstream write operations require.
//
// The primary people-search path is rate-sensitive and returns empty for some
// legitimately reachable contacts, so resolution runs an ordered fallback
// cascade instead of a single query. Homonyms are not disambiguated: the
// top-ranked candidate always wins. That is a documented limitation.
package resolve

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/cwikio/Hexa-Puffs/logging"
	"github.com/cwikio/Hexa-Puffs/session"
	"github.com/cwikio/Hexa-Puffs/voyager"
)

// ErrNotFound is returned when every strategy of the cascade came up empty.
// It is a distinct category from transport and auth failures.
var ErrNotFound = errors.New("recipient not found")

// Options holds optional Resolver settings.
type Options struct {
	// SearchLimit caps candidates requested per search strategy.
	SearchLimit int
	Logger      logging.Logger
}

// Resolver maps identity references to canonical ids.
type Resolver struct {
	limit  int
	logger logging.Logger
}

// NewResolver creates a Resolver.
func NewResolver(optFns ...func(o *Options)) *Resolver {
	opts := Options{SearchLimit: 5, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Resolver{limit: opts.SearchLimit, logger: opts.Logger}
}

// Resolve returns the canonical id for a reference.
//
// A reference without whitespace or comma is already canonical and is
// returned unchanged with zero network calls. Otherwise four strategies run
// in fixed order, each at most once, stopping at the first id-bearing hit:
//
//  1. keyword search with the full reference
//  2. structured first/last name search across all network depths,
//     private profiles included
//  3. broad keyword search forcing all depths and private profiles
//  4. scan of recent conversations for an exact normalized full-name match,
//     returning the participant id straight from the conversation payload
//
// The conversation scan runs last: it is the most expensive strategy but the
// most certain, sourcing the id from prior interaction data instead of the
// flaky search index.
func (r *Resolver) Resolve(ctx context.Context, sess *session.Session, reference string) (string, error) {
	ref := strings.TrimSpace(reference)
	if ref == "" {
		return "", ErrNotFound
	}
	if isCanonical(ref) {
		return ref, nil
	}

	client := sess.Client()
	var upstreamErr error

	// Strategy 1: keyword search.
	if id, err := r.searchTop(ctx, client, ref, voyager.SearchFilters{Limit: r.limit}); id != "" {
		return id, nil
	} else if err != nil {
		upstreamErr = err
	}

	// Strategy 2: structured name search, all depths, private profiles in.
	first, last := splitName(ref)
	filters := voyager.SearchFilters{
		FirstName:              first,
		LastName:               last,
		NetworkDepths:          voyager.AllNetworkDepths,
		IncludePrivateProfiles: true,
		Limit:                  r.limit,
	}
	if id, err := r.searchTop(ctx, client, "", filters); id != "" {
		return id, nil
	} else if err != nil {
		upstreamErr = err
	}

	// Strategy 3: broad keyword search, all depths forced.
	broad := voyager.SearchFilters{
		NetworkDepths:          voyager.AllNetworkDepths,
		IncludePrivateProfiles: true,
		Limit:                  r.limit,
	}
	if id, err := r.searchTop(ctx, client, ref, broad); id != "" {
		return id, nil
	} else if err != nil {
		upstreamErr = err
	}

	// Strategy 4: conversation scan.
	id, err := r.scanConversations(ctx, client, ref)
	if id != "" {
		return id, nil
	}
	if err != nil {
		upstreamErr = err
	}

	if upstreamErr != nil {
		// Every strategy that could have matched failed in transit; don't
		// mislabel that as a definitive miss.
		return "", upstreamErr
	}
	r.logger.Info("resolution cascade exhausted", "reference", ref)
	return "", ErrNotFound
}

// searchTop runs one search strategy and returns the top-ranked candidate's
// id when populated. Lower-ranked candidates are never considered.
func (r *Resolver) searchTop(ctx context.Context, client voyager.Client, query string, filters voyager.SearchFilters) (string, error) {
	candidates, err := client.SearchPeople(ctx, query, filters)
	if err != nil {
		r.logger.Warn("search strategy failed, cascading", "error", err)
		return "", err
	}
	if len(candidates) > 0 && candidates[0].URNID != "" {
		return candidates[0].URNID, nil
	}
	return "", nil
}

// scanConversations looks for an exact normalized full-name match among
// conversation participants. No search call is involved; the id comes
// directly from the conversation payload.
func (r *Resolver) scanConversations(ctx context.Context, client voyager.Client, ref string) (string, error) {
	conversations, err := client.GetConversations(ctx)
	if err != nil {
		r.logger.Warn("conversation scan failed", "error", err)
		return "", err
	}
	want := Normalize(ref)
	for _, conv := range conversations {
		for _, p := range conv.Participants {
			if p.URNID == "" {
				continue
			}
			if Normalize(p.FullName()) == want {
				return p.URNID, nil
			}
		}
	}
	return "", nil
}

// isCanonical reports whether a reference needs no resolution: canonical URN
// ids carry neither whitespace nor commas.
func isCanonical(ref string) bool {
	if strings.ContainsRune(ref, ',') {
		return false
	}
	return strings.IndexFunc(ref, unicode.IsSpace) < 0
}

// splitName splits a reference into first token and remainder.
func splitName(ref string) (first, last string) {
	fields := strings.Fields(ref)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// Normalize lowercases and collapses interior whitespace for exact-match
// comparison of display names.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
