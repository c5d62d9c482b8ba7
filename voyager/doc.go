// Package voyager implements the upstream LinkedIn Voyager API client.
//
// The Client interface is the single seam between the core decision logic
// (session repair, identity resolution, own-identity extraction) and the
// network. RestClient is the production implementation; tests substitute
// fakes with per-method stubs and call counters.
//
// Voyager responses are undocumented and their shapes drift across upstream
// versions, so payloads are probed with gjson path lookups instead of static
// structs wherever the shape is known to vary.
package voyager
