// Package identity derives the operating account's own canonical id and
// public handle from the health probe, whose response shape varies across
// upstream versions and whose caching is unreliable.
package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/cwikio/Hexa-Puffs/logging"
	"github.com/cwikio/Hexa-Puffs/session"
	"github.com/cwikio/Hexa-Puffs/voyager"
)

// ErrUndeterminable is returned when the probe yielded no usable profile and
// no operator override is configured.
var ErrUndeterminable = errors.New("own identity undeterminable")

// HandlePaths is the ordered extraction table for the public handle: the
// nested container field first, then flat legacy names. First match wins.
var HandlePaths = []string{
	"miniProfile.publicIdentifier",
	"publicIdentifier",
	"vanityName",
	"public_id",
}

// IDPath is one entry of the canonical-id extraction table. URN entries hold
// a compound colon-delimited identifier whose final segment is the id.
type IDPath struct {
	Path string
	URN  bool
}

// IDPaths is the ordered extraction table for the canonical id: nested
// container URN, flat legacy URNs, then the raw numeric id as last resort.
var IDPaths = []IDPath{
	{Path: "miniProfile.entityUrn", URN: true},
	{Path: "entityUrn", URN: true},
	{Path: "objectUrn", URN: true},
	{Path: "plainId"},
}

// Options holds optional Extractor dependencies.
type Options struct {
	// Override is an operator-supplied public handle used when the probe
	// cannot be interpreted.
	Override string
	Logger   logging.Logger
}

// Extractor resolves the account's own identifiers.
type Extractor struct {
	override string
	logger   logging.Logger
}

// NewExtractor creates an Extractor.
func NewExtractor(optFns ...func(o *Options)) *Extractor {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Extractor{override: opts.Override, logger: opts.Logger}
}

// OwnHandle returns the account's public profile handle.
func (e *Extractor) OwnHandle(ctx context.Context, sess *session.Session) (string, error) {
	probe, ok := e.probe(ctx, sess.Client())
	if ok {
		for _, path := range HandlePaths {
			if v := probe.Raw.Get(path).String(); v != "" {
				return v, nil
			}
		}
		e.logger.Warn("probe succeeded but carried no public handle field")
	}
	if e.override != "" {
		e.logger.Info("using configured public handle override")
		return e.override, nil
	}
	return "", undeterminable("public handle")
}

// OwnID returns the account's canonical id. When extraction falls back to the
// override handle, exactly one profile lookup resolves it to an id.
func (e *Extractor) OwnID(ctx context.Context, sess *session.Session) (string, error) {
	probe, ok := e.probe(ctx, sess.Client())
	if ok {
		if id := extractID(probe); id != "" {
			return id, nil
		}
		e.logger.Warn("probe succeeded but carried no canonical id field")
	}
	if e.override != "" {
		e.logger.Info("resolving configured handle override to a canonical id")
		profile, err := sess.Client().GetProfile(ctx, e.override)
		if err != nil {
			return "", fmt.Errorf("%w: override profile lookup failed", ErrUndeterminable)
		}
		if profile.URNID != "" {
			return profile.URNID, nil
		}
		return "", undeterminable("canonical id")
	}
	return "", undeterminable("canonical id")
}

func extractID(probe voyager.ProbeResult) string {
	for _, entry := range IDPaths {
		v := probe.Raw.Get(entry.Path)
		if !v.Exists() {
			continue
		}
		s := v.String()
		if s == "" {
			continue
		}
		if entry.URN {
			s = voyager.URNTail(s)
		}
		if s != "" {
			return s
		}
	}
	return ""
}

// probe runs the health probe, retrying exactly once with the cache bypassed
// when the cached copy classifies as an error envelope. ok is false when no
// profile-shaped response could be obtained.
func (e *Extractor) probe(ctx context.Context, client voyager.Client) (voyager.ProbeResult, bool) {
	result, err := client.ProbeIdentity(ctx, true)
	if err == nil && result.Shape() == voyager.ProfileShape {
		return result, true
	}
	if err != nil {
		e.logger.Warn("identity probe failed, retrying without cache", "error", err)
	} else {
		e.logger.Warn("identity probe returned error envelope, retrying without cache", "status", result.Status())
	}

	client.EvictProbeCache()
	result, err = client.ProbeIdentity(ctx, false)
	if err != nil {
		e.logger.Warn("forced identity re-probe failed", "error", err)
		return voyager.ProbeResult{}, false
	}
	if result.Shape() == voyager.ErrorShape {
		e.logger.Warn("forced identity re-probe still invalid", "status", result.Status())
		return voyager.ProbeResult{}, false
	}
	return result, true
}

func undeterminable(what string) error {
	return fmt.Errorf("%w: could not determine own %s from the identity probe; "+
		"set LINKEDIN_PUBLIC_ID to your public profile handle", ErrUndeterminable, what)
}
