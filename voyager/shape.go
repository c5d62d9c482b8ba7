package voyager

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Shape classifies a probe/identity response structurally. The classification
// is independent of upstream versioning: it only asks whether the payload
// carries profile data or is a bare status envelope.
type Shape int

const (
	// ProfileShape is a response carrying profile data; the session behind
	// it is considered valid.
	ProfileShape Shape = iota
	// ErrorShape is a status-only response with no profile data; the
	// session behind it is stale or unauthenticated.
	ErrorShape
)

// String returns the shape name for logging.
func (s Shape) String() string {
	if s == ProfileShape {
		return "profile"
	}
	return "error"
}

// ProbeResult wraps a raw /me response. The payload stays a gjson document
// because its field layout varies across upstream versions; extraction is
// done by ordered path tables, not static structs.
type ProbeResult struct {
	Raw gjson.Result
}

// ParseProbe wraps a raw response body into a ProbeResult.
func ParseProbe(body []byte) ProbeResult {
	return ProbeResult{Raw: gjson.ParseBytes(body)}
}

// Shape classifies the probe. A payload with a status field and no
// miniProfile container is an error envelope; anything else that carries
// data counts as a profile.
func (p ProbeResult) Shape() Shape {
	if !p.Raw.Exists() || strings.TrimSpace(p.Raw.Raw) == "" {
		return ErrorShape
	}
	if p.Raw.Get("status").Exists() && !p.Raw.Get("miniProfile").Exists() {
		return ErrorShape
	}
	return ProfileShape
}

// Status returns the numeric status of an error envelope, 0 when absent.
func (p ProbeResult) Status() int {
	return int(p.Raw.Get("status").Int())
}
