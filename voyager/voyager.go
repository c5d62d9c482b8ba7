package voyager

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAuthRejected is returned when the upstream rejects the supplied
	// credentials outright (bad password, expired or revoked cookies).
	ErrAuthRejected = errors.New("authentication rejected by upstream")
)

// UpstreamError wraps a transport or protocol level failure of a single
// upstream call. It never carries response payload contents.
type UpstreamError struct {
	Op     string // logical operation, e.g. "probe_identity"
	Status int    // HTTP status, 0 when the request never completed
	Err    error  // underlying cause, may be nil
}

func (e *UpstreamError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream error in %s: status %d", e.Op, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("upstream error in %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("upstream error in %s", e.Op)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// NewUpstreamError creates an UpstreamError for the given operation.
func NewUpstreamError(op string, status int, err error) *UpstreamError {
	return &UpstreamError{Op: op, Status: status, Err: err}
}

// NetworkDepth encodes the relationship distance filter of a people search.
type NetworkDepth string

const (
	// DepthFirst restricts results to first-degree connections.
	DepthFirst NetworkDepth = "F"
	// DepthSecond restricts results to second-degree connections.
	DepthSecond NetworkDepth = "S"
	// DepthOut includes everyone outside the caller's network.
	DepthOut NetworkDepth = "O"
)

// AllNetworkDepths covers in-network, out-of-network and unconnected profiles.
var AllNetworkDepths = []NetworkDepth{DepthFirst, DepthSecond, DepthOut}

// SearchFilters constrains a people search. Zero value means an unfiltered
// keyword search.
type SearchFilters struct {
	// FirstName / LastName switch the search to name-field-constrained mode.
	FirstName string
	LastName  string
	// NetworkDepths limits relationship distances; empty means upstream default.
	NetworkDepths []NetworkDepth
	// IncludePrivateProfiles asks the search index to return profiles that
	// are normally hidden from keyword search.
	IncludePrivateProfiles bool
	// Limit caps the number of returned candidates; 0 means upstream default.
	Limit int
}

// SearchCandidate is one ranked people-search hit. Only the top-ranked
// candidate is ever consumed by the resolver; no secondary disambiguation.
type SearchCandidate struct {
	URNID    string `json:"urnId"`
	PublicID string `json:"publicId"`
	Name     string `json:"name"`
	Headline string `json:"headline"`
	Location string `json:"location"`
	Distance string `json:"distance"`
}

// Participant is a member record embedded in a conversation payload. Its URN
// id is usable directly as a message recipient without any search call.
type Participant struct {
	URNID     string `json:"urnId"`
	PublicID  string `json:"publicId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName returns "First Last" with surrounding whitespace trimmed.
func (p Participant) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	default:
		return p.FirstName + " " + p.LastName
	}
}

// Message is a single message event within a conversation.
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	CreatedAt int64  `json:"createdAt"`
}

// Conversation is one inbox thread.
type Conversation struct {
	ID           string        `json:"conversationId"`
	Participants []Participant `json:"participants"`
	LastMessage  Message       `json:"lastMessage"`
	UnreadCount  int           `json:"unreadCount"`
}

// Experience is one position entry on a profile.
type Experience struct {
	Title     string `json:"title"`
	Company   string `json:"company"`
	StartDate string `json:"startDate,omitempty"`
	EndDate   string `json:"endDate,omitempty"`
}

// Education is one education entry on a profile.
type Education struct {
	School string `json:"school"`
	Degree string `json:"degree"`
	Field  string `json:"field"`
}

// Profile is an extracted member profile.
type Profile struct {
	PublicID   string       `json:"publicId"`
	URNID      string       `json:"urnId"`
	FirstName  string       `json:"firstName"`
	LastName   string       `json:"lastName"`
	Headline   string       `json:"headline"`
	Summary    string       `json:"summary"`
	Location   string       `json:"location"`
	Industry   string       `json:"industry"`
	Experience []Experience `json:"experience"`
	Education  []Education  `json:"education"`
}

// Company is an extracted organization record.
type Company struct {
	Name          string   `json:"name"`
	UniversalName string   `json:"universalName"`
	Headline      string   `json:"headline,omitempty"`
	Description   string   `json:"description,omitempty"`
	Website       string   `json:"website,omitempty"`
	Industry      string   `json:"industry,omitempty"`
	StaffCount    int      `json:"staffCount,omitempty"`
	Specialities  []string `json:"specialities,omitempty"`
	URNID         string   `json:"urnId,omitempty"`
}

// Post is one feed update.
type Post struct {
	Author      string `json:"author"`
	Text        string `json:"text"`
	NumLikes    int    `json:"numLikes"`
	NumComments int    `json:"numComments"`
	URN         string `json:"postUrn"`
}

// SendRequest describes an outgoing message. Exactly one of ConversationID
// or Recipients must be set; Recipients opens a new thread.
type SendRequest struct {
	Body           string
	ConversationID string
	Recipients     []string
}

// SendOutcome is the explicit result of a send attempt. The upstream library
// this replaces signalled failure through a boolean on some paths and an
// exception on others; here both collapse into one outcome type, with
// transport faults reported separately as UpstreamError.
type SendOutcome int

const (
	// SendSent means the upstream accepted the message.
	SendSent SendOutcome = iota
	// SendRejected means the upstream refused the message (e.g. recipient
	// unreachable) without a transport failure.
	SendRejected
)

// String returns a short label for logging.
func (o SendOutcome) String() string {
	if o == SendSent {
		return "sent"
	}
	return "rejected"
}

// Client is the upstream API surface consumed by the core components. All
// methods block until the call completes; cancellation is only via ctx.
type Client interface {
	// ProbeIdentity performs the "who am I" health probe (/me). With
	// useCache a recent cached copy may be returned; without it the cache
	// is bypassed and the response refreshed.
	ProbeIdentity(ctx context.Context, useCache bool) (ProbeResult, error)

	// EvictProbeCache drops any cached probe response.
	EvictProbeCache()

	// SearchPeople runs a ranked people search.
	SearchPeople(ctx context.Context, query string, filters SearchFilters) ([]SearchCandidate, error)

	// GetConversations lists recent inbox threads, participants included.
	GetConversations(ctx context.Context) ([]Conversation, error)

	// GetConversation returns the message events of one thread.
	GetConversation(ctx context.Context, conversationID string) ([]Message, error)

	// GetProfile fetches a member profile by public handle.
	GetProfile(ctx context.Context, publicID string) (*Profile, error)

	// GetProfileConnections lists first-degree connections of the member
	// identified by urnID.
	GetProfileConnections(ctx context.Context, urnID string, limit int) ([]SearchCandidate, error)

	// SearchCompanies runs a ranked company search.
	SearchCompanies(ctx context.Context, keywords string, limit int) ([]Company, error)

	// GetCompany fetches an organization by universal name.
	GetCompany(ctx context.Context, universalName string) (*Company, error)

	// GetFeedPosts reads recent feed updates.
	GetFeedPosts(ctx context.Context, limit int) ([]Post, error)

	// SendMessage delivers a message to a conversation or set of recipients.
	SendMessage(ctx context.Context, req SendRequest) (SendOutcome, error)

	// AddConnection sends a connection invitation with an optional note.
	AddConnection(ctx context.Context, publicID, note string) error
}
