// Package voyagertest provides a configurable fake upstream client for
// tests. Every method records its invocation so tests can assert exact call
// counts, which the resolution cascade and session repair contracts depend on.
package voyagertest

import (
	"context"

	"github.com/cwikio/Hexa-Puffs/voyager"
)

// Calls counts method invocations on a Fake.
type Calls struct {
	Probe            int
	ProbeCached      int // probes with useCache=true
	ProbeForced      int // probes with useCache=false
	Evict            int
	SearchPeople     int
	GetConversations int
	GetConversation  int
	GetProfile       int
	GetConnections   int
	SearchCompanies  int
	GetCompany       int
	GetFeedPosts     int
	SendMessage      int
	AddConnection    int
}

// Fake implements voyager.Client with per-method hooks. Unset hooks return
// zero values, which reads as "upstream returned nothing".
type Fake struct {
	ProbeIdentityFunc    func(ctx context.Context, useCache bool) (voyager.ProbeResult, error)
	SearchPeopleFunc     func(ctx context.Context, query string, filters voyager.SearchFilters) ([]voyager.SearchCandidate, error)
	GetConversationsFunc func(ctx context.Context) ([]voyager.Conversation, error)
	GetConversationFunc  func(ctx context.Context, id string) ([]voyager.Message, error)
	GetProfileFunc       func(ctx context.Context, publicID string) (*voyager.Profile, error)
	GetConnectionsFunc   func(ctx context.Context, urnID string, limit int) ([]voyager.SearchCandidate, error)
	SearchCompaniesFunc  func(ctx context.Context, keywords string, limit int) ([]voyager.Company, error)
	GetCompanyFunc       func(ctx context.Context, universalName string) (*voyager.Company, error)
	GetFeedPostsFunc     func(ctx context.Context, limit int) ([]voyager.Post, error)
	SendMessageFunc      func(ctx context.Context, req voyager.SendRequest) (voyager.SendOutcome, error)
	AddConnectionFunc    func(ctx context.Context, publicID, note string) error

	Calls Calls

	// SearchQueries and SearchFilters record every SearchPeople invocation
	// in order, so tests can assert which cascade strategy issued a call.
	SearchQueries []string
	SearchFilters []voyager.SearchFilters

	// SentRequests records every SendMessage invocation.
	SentRequests []voyager.SendRequest
}

var _ voyager.Client = (*Fake)(nil)

// ProbeIdentity implements voyager.Client.
func (f *Fake) ProbeIdentity(ctx context.Context, useCache bool) (voyager.ProbeResult, error) {
	f.Calls.Probe++
	if useCache {
		f.Calls.ProbeCached++
	} else {
		f.Calls.ProbeForced++
	}
	if f.ProbeIdentityFunc != nil {
		return f.ProbeIdentityFunc(ctx, useCache)
	}
	return voyager.ProbeResult{}, nil
}

// EvictProbeCache implements voyager.Client.
func (f *Fake) EvictProbeCache() {
	f.Calls.Evict++
}

// SearchPeople implements voyager.Client.
func (f *Fake) SearchPeople(ctx context.Context, query string, filters voyager.SearchFilters) ([]voyager.SearchCandidate, error) {
	f.Calls.SearchPeople++
	f.SearchQueries = append(f.SearchQueries, query)
	f.SearchFilters = append(f.SearchFilters, filters)
	if f.SearchPeopleFunc != nil {
		return f.SearchPeopleFunc(ctx, query, filters)
	}
	return nil, nil
}

// GetConversations implements voyager.Client.
func (f *Fake) GetConversations(ctx context.Context) ([]voyager.Conversation, error) {
	f.Calls.GetConversations++
	if f.GetConversationsFunc != nil {
		return f.GetConversationsFunc(ctx)
	}
	return nil, nil
}

// GetConversation implements voyager.Client.
func (f *Fake) GetConversation(ctx context.Context, id string) ([]voyager.Message, error) {
	f.Calls.GetConversation++
	if f.GetConversationFunc != nil {
		return f.GetConversationFunc(ctx, id)
	}
	return nil, nil
}

// GetProfile implements voyager.Client.
func (f *Fake) GetProfile(ctx context.Context, publicID string) (*voyager.Profile, error) {
	f.Calls.GetProfile++
	if f.GetProfileFunc != nil {
		return f.GetProfileFunc(ctx, publicID)
	}
	return &voyager.Profile{PublicID: publicID}, nil
}

// GetProfileConnections implements voyager.Client.
func (f *Fake) GetProfileConnections(ctx context.Context, urnID string, limit int) ([]voyager.SearchCandidate, error) {
	f.Calls.GetConnections++
	if f.GetConnectionsFunc != nil {
		return f.GetConnectionsFunc(ctx, urnID, limit)
	}
	return nil, nil
}

// SearchCompanies implements voyager.Client.
func (f *Fake) SearchCompanies(ctx context.Context, keywords string, limit int) ([]voyager.Company, error) {
	f.Calls.SearchCompanies++
	if f.SearchCompaniesFunc != nil {
		return f.SearchCompaniesFunc(ctx, keywords, limit)
	}
	return nil, nil
}

// GetCompany implements voyager.Client.
func (f *Fake) GetCompany(ctx context.Context, universalName string) (*voyager.Company, error) {
	f.Calls.GetCompany++
	if f.GetCompanyFunc != nil {
		return f.GetCompanyFunc(ctx, universalName)
	}
	return &voyager.Company{UniversalName: universalName}, nil
}

// GetFeedPosts implements voyager.Client.
func (f *Fake) GetFeedPosts(ctx context.Context, limit int) ([]voyager.Post, error) {
	f.Calls.GetFeedPosts++
	if f.GetFeedPostsFunc != nil {
		return f.GetFeedPostsFunc(ctx, limit)
	}
	return nil, nil
}

// SendMessage implements voyager.Client.
func (f *Fake) SendMessage(ctx context.Context, req voyager.SendRequest) (voyager.SendOutcome, error) {
	f.Calls.SendMessage++
	f.SentRequests = append(f.SentRequests, req)
	if f.SendMessageFunc != nil {
		return f.SendMessageFunc(ctx, req)
	}
	return voyager.SendSent, nil
}

// AddConnection implements voyager.Client.
func (f *Fake) AddConnection(ctx context.Context, publicID, note string) error {
	f.Calls.AddConnection++
	if f.AddConnectionFunc != nil {
		return f.AddConnectionFunc(ctx, publicID, note)
	}
	return nil
}

// ValidProbe returns a profile-shaped probe response.
func ValidProbe() voyager.ProbeResult {
	return voyager.ParseProbe([]byte(`{"miniProfile":{"entityUrn":"urn:li:fs_miniProfile:AAA","publicIdentifier":"test-user"}}`))
}

// InvalidProbe returns a status-only error envelope.
func InvalidProbe() voyager.ProbeResult {
	return voyager.ParseProbe([]byte(`{"status":401}`))
}
