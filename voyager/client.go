package voyager

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/cwikio/Hexa-Puffs/logging"
)

const (
	defaultBaseURL = "https://www.linkedin.com/voyager/api"
	defaultAuthURL = "https://www.linkedin.com"

	probeCacheKey = "probe:me"
	probeCacheTTL = 5 * time.Minute

	restliAccept = "application/vnd.linkedin.normalized+json+2.1"
	userAgent    = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Options configures RestClient construction.
type Options struct {
	// BaseURL is the Voyager API root; AuthURL hosts the login endpoint.
	BaseURL string
	AuthURL string

	// Email / Password enable the password login flow.
	Email    string
	Password string

	// CookieLiAt / CookieJSESSIONID import an existing browser session and
	// skip the login flow entirely.
	CookieLiAt       string
	CookieJSESSIONID string

	// CookieStore persists session cookies between runs. Nil disables
	// persistence.
	CookieStore *CookieStore

	// Timeout bounds every upstream call. This is the only latency bound in
	// the system; callers do not impose their own.
	Timeout time.Duration

	Logger logging.Logger
}

// RestClient talks to the Voyager REST API over resty. It implements Client.
//
// Construction authenticates eagerly: cookie import when a cookie pair is
// configured, otherwise cached on-disk cookies, otherwise a password login.
// Validity of whatever was loaded is NOT checked here; the session manager
// owns validation and repair.
type RestClient struct {
	http   *resty.Client
	opts   Options
	csrf   string
	cache  *gocache.Cache
	logger logging.Logger
}

var _ Client = (*RestClient)(nil)

// NewRestClient builds and authenticates a client.
func NewRestClient(ctx context.Context, optFns ...func(o *Options)) (*RestClient, error) {
	opts := Options{
		BaseURL: defaultBaseURL,
		AuthURL: defaultAuthURL,
		Timeout: 30 * time.Second,
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	hc := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("user-agent", userAgent).
		SetHeader("accept-language", "en-US,en;q=0.9").
		SetHeader("x-li-lang", "en_US").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(3))

	c := &RestClient{
		http:   hc,
		opts:   opts,
		cache:  gocache.New(probeCacheTTL, 10*time.Minute),
		logger: opts.Logger,
	}

	if err := c.authenticate(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// authenticate establishes transport credentials in priority order: explicit
// cookie pair, cached cookie artifact, password login.
func (c *RestClient) authenticate(ctx context.Context) error {
	if c.opts.CookieLiAt != "" && c.opts.CookieJSESSIONID != "" {
		c.importCookies([]*http.Cookie{
			{Name: "li_at", Value: c.opts.CookieLiAt, Domain: ".linkedin.com", Path: "/"},
			{Name: "JSESSIONID", Value: c.opts.CookieJSESSIONID, Domain: ".linkedin.com", Path: "/"},
		})
		c.logger.Info("session built from imported browser cookies")
		return nil
	}

	if c.opts.CookieStore != nil && c.opts.Email != "" {
		cached, err := c.opts.CookieStore.Load(c.opts.Email)
		if err != nil {
			c.logger.Warn("failed to read cookie cache, falling through to login", "error", err)
		} else if hasSessionCookies(cached) {
			// The cache is loaded without checking validity; the session
			// manager probes afterwards and deletes it when stale.
			c.importCookies(cached)
			c.logger.Info("session built from cached cookies", "account", c.opts.Email)
			return nil
		}
	}

	if c.opts.Email == "" || c.opts.Password == "" {
		return ErrAuthRejected
	}
	return c.login(ctx)
}

// login performs the two-step password authentication: fetch an anonymous
// session cookie, then exchange the credentials for authenticated cookies.
func (c *RestClient) login(ctx context.Context) error {
	seed, err := c.http.R().SetContext(ctx).Get(c.opts.AuthURL + "/uas/authenticate")
	if err != nil {
		return NewUpstreamError("login_seed", 0, err)
	}
	anon := seed.Cookies()
	csrf := cookieValue(anon, "JSESSIONID")
	if csrf == "" {
		return NewUpstreamError("login_seed", seed.StatusCode(), fmt.Errorf("no anonymous session cookie issued"))
	}
	c.http.SetCookies(anon)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("X-Li-User-Agent", "LIAuthLibrary:0.0.3 com.linkedin.android 4.1.881").
		SetHeader("csrf-token", csrf).
		SetFormData(map[string]string{
			"session_key":      c.opts.Email,
			"session_password": c.opts.Password,
			"JSESSIONID":       csrf,
		}).
		Post(c.opts.AuthURL + "/uas/authenticate")
	if err != nil {
		return NewUpstreamError("login", 0, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden {
		return ErrAuthRejected
	}
	if resp.StatusCode() != http.StatusOK {
		return NewUpstreamError("login", resp.StatusCode(), nil)
	}
	if result := gjson.GetBytes(resp.Body(), "login_result"); result.Exists() && result.String() != "PASS" {
		c.logger.Warn("login challenged", "result", result.String())
		return ErrAuthRejected
	}

	cookies := resp.Cookies()
	c.importCookies(cookies)
	if c.opts.CookieStore != nil && c.opts.Email != "" {
		if err := c.opts.CookieStore.Save(c.opts.Email, cookies); err != nil {
			c.logger.Warn("failed to persist session cookies", "error", err)
		}
	}
	c.logger.Info("password login complete", "account", c.opts.Email)
	return nil
}

func (c *RestClient) importCookies(cookies []*http.Cookie) {
	c.http.SetCookies(cookies)
	// The csrf-token header must mirror the JSESSIONID cookie value.
	c.csrf = strings.Trim(cookieValue(cookies, "JSESSIONID"), `"`)
}

func hasSessionCookies(cookies []*http.Cookie) bool {
	return cookieValue(cookies, "li_at") != "" && cookieValue(cookies, "JSESSIONID") != ""
}

func cookieValue(cookies []*http.Cookie, name string) string {
	for _, c := range cookies {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// URNTail returns the final segment of a colon-delimited URN, or the input
// unchanged when it contains no colon.
func URNTail(urn string) string {
	if i := strings.LastIndex(urn, ":"); i >= 0 {
		return urn[i+1:]
	}
	return urn
}

// request issues one API call and decodes the body. Responses with an error
// status are returned as UpstreamError without payload contents.
func (c *RestClient) request(ctx context.Context, op, method, path string, query url.Values, body []byte) (gjson.Result, error) {
	resp, err := c.send(ctx, op, method, path, query, body)
	if err != nil {
		return gjson.Result{}, err
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return gjson.Result{}, NewUpstreamError(op, resp.StatusCode(), nil)
	}
	return gjson.ParseBytes(resp.Body()), nil
}

// send issues the HTTP call and logs it; status handling is left to callers
// because the probe needs error bodies that request discards.
func (c *RestClient) send(ctx context.Context, op, method, path string, query url.Values, body []byte) (*resty.Response, error) {
	start := time.Now()
	req := c.http.R().
		SetContext(ctx).
		SetHeader("accept", restliAccept).
		SetHeader("csrf-token", c.csrf).
		SetHeader("x-li-page-instance", "urn:li:page:d_flagship3;"+uuid.NewString())
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetHeader("content-type", "application/json").SetBody(body)
	}

	var resp *resty.Response
	var err error
	switch method {
	case http.MethodPost:
		resp, err = req.Post(c.opts.BaseURL + path)
	default:
		resp, err = req.Get(c.opts.BaseURL + path)
	}

	status := 0
	if resp != nil {
		status = resp.StatusCode()
	}
	c.logger.Debug("upstream call", "operation", op, "status", status, "duration", time.Since(start))
	if err != nil {
		return nil, NewUpstreamError(op, 0, err)
	}
	return resp, nil
}

// ProbeIdentity implements Client.
func (c *RestClient) ProbeIdentity(ctx context.Context, useCache bool) (ProbeResult, error) {
	if useCache {
		if cached, ok := c.cache.Get(probeCacheKey); ok {
			return cached.(ProbeResult), nil
		}
	}

	resp, err := c.send(ctx, "probe_identity", http.MethodGet, "/me", nil, nil)
	if err != nil {
		return ProbeResult{}, err
	}
	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		// An empty error body still has to classify as ErrorShape.
		body = []byte(fmt.Sprintf(`{"status":%d}`, resp.StatusCode()))
	}
	result := ParseProbe(body)
	c.cache.Set(probeCacheKey, result, probeCacheTTL)
	return result, nil
}

// EvictProbeCache implements Client.
func (c *RestClient) EvictProbeCache() {
	c.cache.Delete(probeCacheKey)
}

// SearchPeople implements Client.
func (c *RestClient) SearchPeople(ctx context.Context, query string, filters SearchFilters) ([]SearchCandidate, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 10
	}

	q := url.Values{}
	if query != "" {
		q.Set("keywords", query)
	}
	q.Set("origin", "GLOBAL_SEARCH_HEADER")
	q.Set("q", "all")
	q.Set("count", strconv.Itoa(limit))

	searchFilters := []string{"resultType->PEOPLE"}
	if filters.FirstName != "" {
		searchFilters = append(searchFilters, "firstName->"+filters.FirstName)
	}
	if filters.LastName != "" {
		searchFilters = append(searchFilters, "lastName->"+filters.LastName)
	}
	if len(filters.NetworkDepths) > 0 {
		depths := make([]string, 0, len(filters.NetworkDepths))
		for _, d := range filters.NetworkDepths {
			depths = append(depths, string(d))
		}
		searchFilters = append(searchFilters, "network->List("+strings.Join(depths, "|")+")")
	}
	q.Set("filters", "List("+strings.Join(searchFilters, ",")+")")
	if filters.IncludePrivateProfiles {
		q.Set("queryContext", "List(spellCorrectionEnabled->true,kcardTypes->PROFILE)")
	}

	raw, err := c.request(ctx, "search_people", http.MethodGet, "/search/blended", q, nil)
	if err != nil {
		return nil, err
	}
	return parseSearchHits(raw, limit), nil
}

// parseSearchHits walks blended search clusters in rank order and falls back
// to the normalized included-entity list for older response layouts.
func parseSearchHits(raw gjson.Result, limit int) []SearchCandidate {
	var out []SearchCandidate

	appendHit := func(hit gjson.Result) bool {
		urn := hit.Get("targetUrn").String()
		if urn == "" {
			urn = hit.Get("trackingUrn").String()
		}
		if !strings.Contains(urn, "fs_miniProfile") && !strings.Contains(urn, "member") {
			return true
		}
		out = append(out, SearchCandidate{
			URNID:    URNTail(urn),
			PublicID: hit.Get("publicIdentifier").String(),
			Name:     hit.Get("title.text").String(),
			Headline: hit.Get("headline.text").String(),
			Location: hit.Get("subline.text").String(),
			Distance: hit.Get("memberDistance.value").String(),
		})
		return len(out) < limit
	}

	clusters := raw.Get("data.elements")
	if !clusters.Exists() {
		clusters = raw.Get("elements")
	}
	clusters.ForEach(func(_, cluster gjson.Result) bool {
		more := true
		cluster.Get("elements").ForEach(func(_, hit gjson.Result) bool {
			more = appendHit(hit)
			return more
		})
		return more
	})

	if len(out) == 0 {
		raw.Get("included").ForEach(func(_, inc gjson.Result) bool {
			urn := inc.Get("entityUrn").String()
			if !strings.Contains(urn, "fs_miniProfile") {
				return true
			}
			name := strings.TrimSpace(inc.Get("firstName").String() + " " + inc.Get("lastName").String())
			out = append(out, SearchCandidate{
				URNID:    URNTail(urn),
				PublicID: inc.Get("publicIdentifier").String(),
				Name:     name,
				Headline: inc.Get("occupation").String(),
			})
			return len(out) < limit
		})
	}
	return out
}

const messagingMemberKey = `com\.linkedin\.voyager\.messaging\.MessagingMember`

// GetConversations implements Client.
func (c *RestClient) GetConversations(ctx context.Context) ([]Conversation, error) {
	q := url.Values{}
	q.Set("keyVersion", "LEGACY_INBOX")

	raw, err := c.request(ctx, "get_conversations", http.MethodGet, "/messaging/conversations", q, nil)
	if err != nil {
		return nil, err
	}

	// Upstream returns either {elements: [...]} or a bare array.
	elements := raw.Get("elements")
	if !elements.Exists() && raw.IsArray() {
		elements = raw
	}

	var out []Conversation
	elements.ForEach(func(_, conv gjson.Result) bool {
		record := Conversation{
			ID:          URNTail(conv.Get("entityUrn").String()),
			UnreadCount: int(conv.Get("unreadCount").Int()),
		}
		last := conv.Get("lastMessage")
		record.LastMessage = Message{
			Text:      last.Get("body").String(),
			CreatedAt: last.Get("createdAt").Int(),
		}
		conv.Get("participants").ForEach(func(_, p gjson.Result) bool {
			mini := p.Get(messagingMemberKey + ".miniProfile")
			if !mini.Exists() {
				return true
			}
			record.Participants = append(record.Participants, Participant{
				URNID:     URNTail(mini.Get("entityUrn").String()),
				PublicID:  mini.Get("publicIdentifier").String(),
				FirstName: mini.Get("firstName").String(),
				LastName:  mini.Get("lastName").String(),
			})
			return true
		})
		out = append(out, record)
		return true
	})
	return out, nil
}

// GetConversation implements Client.
func (c *RestClient) GetConversation(ctx context.Context, conversationID string) ([]Message, error) {
	path := "/messaging/conversations/" + url.PathEscape(conversationID) + "/events"
	raw, err := c.request(ctx, "get_conversation", http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	events := raw.Get("elements")
	if !events.Exists() {
		events = raw.Get("events")
	}

	var out []Message
	events.ForEach(func(_, ev gjson.Result) bool {
		body := ev.Get(`eventContent.com\.linkedin\.voyager\.messaging\.event\.MessageEvent.body`)
		if !body.Exists() {
			return true
		}
		mini := ev.Get("from." + messagingMemberKey + ".miniProfile")
		sender := strings.TrimSpace(mini.Get("firstName").String() + " " + mini.Get("lastName").String())
		out = append(out, Message{
			Sender:    sender,
			Text:      body.String(),
			CreatedAt: ev.Get("createdAt").Int(),
		})
		return true
	})
	return out, nil
}

// GetProfile implements Client.
func (c *RestClient) GetProfile(ctx context.Context, publicID string) (*Profile, error) {
	path := "/identity/profiles/" + url.PathEscape(publicID) + "/profileView"
	raw, err := c.request(ctx, "get_profile", http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	prof := raw.Get("profile")
	if !prof.Exists() {
		prof = raw
	}
	mini := prof.Get("miniProfile")

	urn := mini.Get("entityUrn").String()
	if urn == "" {
		urn = prof.Get("entityUrn").String()
	}
	handle := mini.Get("publicIdentifier").String()
	if handle == "" {
		handle = publicID
	}

	p := &Profile{
		PublicID:  handle,
		URNID:     URNTail(urn),
		FirstName: firstNonEmpty(prof.Get("firstName").String(), mini.Get("firstName").String()),
		LastName:  firstNonEmpty(prof.Get("lastName").String(), mini.Get("lastName").String()),
		Headline:  firstNonEmpty(prof.Get("headline").String(), mini.Get("occupation").String()),
		Summary:   prof.Get("summary").String(),
		Location:  prof.Get("locationName").String(),
		Industry:  prof.Get("industryName").String(),
	}

	raw.Get("positionView.elements").ForEach(func(_, pos gjson.Result) bool {
		p.Experience = append(p.Experience, Experience{
			Title:     pos.Get("title").String(),
			Company:   pos.Get("companyName").String(),
			StartDate: formatDate(pos.Get("timePeriod.startDate")),
			EndDate:   formatDate(pos.Get("timePeriod.endDate")),
		})
		return true
	})
	raw.Get("educationView.elements").ForEach(func(_, edu gjson.Result) bool {
		p.Education = append(p.Education, Education{
			School: edu.Get("schoolName").String(),
			Degree: edu.Get("degreeName").String(),
			Field:  edu.Get("fieldOfStudy").String(),
		})
		return true
	})
	return p, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func formatDate(d gjson.Result) string {
	if !d.Exists() {
		return ""
	}
	year := d.Get("year").Int()
	if year == 0 {
		return ""
	}
	if month := d.Get("month").Int(); month != 0 {
		return fmt.Sprintf("%04d-%02d", year, month)
	}
	return fmt.Sprintf("%04d", year)
}

// GetProfileConnections implements Client.
func (c *RestClient) GetProfileConnections(ctx context.Context, urnID string, limit int) ([]SearchCandidate, error) {
	if limit <= 0 {
		limit = 50
	}
	q := url.Values{}
	q.Set("q", "search")
	q.Set("origin", "MEMBER_PROFILE_CANNED_SEARCH")
	q.Set("count", strconv.Itoa(limit))
	q.Set("filters", "List(resultType->PEOPLE,connectionOf->"+urnID+",network->List(F))")

	raw, err := c.request(ctx, "get_connections", http.MethodGet, "/search/blended", q, nil)
	if err != nil {
		return nil, err
	}
	return parseSearchHits(raw, limit), nil
}

// SearchCompanies implements Client.
func (c *RestClient) SearchCompanies(ctx context.Context, keywords string, limit int) ([]Company, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("keywords", keywords)
	q.Set("origin", "GLOBAL_SEARCH_HEADER")
	q.Set("q", "all")
	q.Set("count", strconv.Itoa(limit))
	q.Set("filters", "List(resultType->COMPANIES)")

	raw, err := c.request(ctx, "search_companies", http.MethodGet, "/search/blended", q, nil)
	if err != nil {
		return nil, err
	}

	var out []Company
	clusters := raw.Get("data.elements")
	if !clusters.Exists() {
		clusters = raw.Get("elements")
	}
	clusters.ForEach(func(_, cluster gjson.Result) bool {
		more := true
		cluster.Get("elements").ForEach(func(_, hit gjson.Result) bool {
			urn := hit.Get("targetUrn").String()
			if !strings.Contains(urn, "company") && !strings.Contains(urn, "miniCompany") {
				return true
			}
			out = append(out, Company{
				Name:          hit.Get("title.text").String(),
				UniversalName: hit.Get("publicIdentifier").String(),
				Headline:      hit.Get("headline.text").String(),
				URNID:         URNTail(urn),
			})
			more = len(out) < limit
			return more
		})
		return more
	})
	return out, nil
}

// GetCompany implements Client.
func (c *RestClient) GetCompany(ctx context.Context, universalName string) (*Company, error) {
	q := url.Values{}
	q.Set("q", "universalName")
	q.Set("universalName", universalName)

	raw, err := c.request(ctx, "get_company", http.MethodGet, "/organization/companies", q, nil)
	if err != nil {
		return nil, err
	}

	record := raw.Get("elements.0")
	if !record.Exists() {
		record = raw
	}

	company := &Company{
		Name:          record.Get("name").String(),
		UniversalName: firstNonEmpty(record.Get("universalName").String(), universalName),
		Description:   record.Get("description").String(),
		Website:       firstNonEmpty(record.Get("companyPageUrl").String(), record.Get("website").String()),
		Industry:      record.Get("companyIndustries.0.localizedName").String(),
		StaffCount:    int(record.Get("staffCount").Int()),
		URNID:         URNTail(record.Get("entityUrn").String()),
	}
	record.Get("specialities").ForEach(func(_, s gjson.Result) bool {
		company.Specialities = append(company.Specialities, s.String())
		return true
	})
	return company, nil
}

// GetFeedPosts implements Client.
func (c *RestClient) GetFeedPosts(ctx context.Context, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = 10
	}
	q := url.Values{}
	q.Set("q", "feed")
	q.Set("count", strconv.Itoa(limit))

	raw, err := c.request(ctx, "get_feed_posts", http.MethodGet, "/feed/updatesV2", q, nil)
	if err != nil {
		return nil, err
	}

	var out []Post
	raw.Get("elements").ForEach(func(_, el gjson.Result) bool {
		update := el.Get("value." + `com\.linkedin\.voyager\.feed\.render\.UpdateV2`)
		if !update.Exists() {
			update = el
		}
		text := update.Get("commentary.text.text").String()
		out = append(out, Post{
			Author:      update.Get("actor.name.text").String(),
			Text:        truncate(text, 500),
			NumLikes:    int(update.Get("socialDetail.totalSocialActivityCounts.numLikes").Int()),
			NumComments: int(update.Get("socialDetail.totalSocialActivityCounts.numComments").Int()),
			URN:         update.Get("updateMetadata.urn").String(),
		})
		return len(out) < limit
	})
	return out, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

const messageCreateKey = `com\.linkedin\.voyager\.messaging\.create\.MessageCreate`

// SendMessage implements Client. A 201 means sent; any other completed
// response is an explicit rejection; transport faults surface as
// UpstreamError alongside SendRejected.
func (c *RestClient) SendMessage(ctx context.Context, req SendRequest) (SendOutcome, error) {
	event := []byte(`{}`)
	event, _ = sjson.SetBytes(event, "eventCreate.value."+messageCreateKey+".attributedBody.text", req.Body)
	event, _ = sjson.SetRawBytes(event, "eventCreate.value."+messageCreateKey+".attributedBody.attributes", []byte(`[]`))
	event, _ = sjson.SetRawBytes(event, "eventCreate.value."+messageCreateKey+".attachments", []byte(`[]`))

	var (
		path string
		body []byte
	)
	if req.ConversationID != "" {
		path = "/messaging/conversations/" + url.PathEscape(req.ConversationID) + "/events"
		body = event
	} else {
		path = "/messaging/conversations"
		body = []byte(`{}`)
		body, _ = sjson.SetRawBytes(body, "conversationCreate.eventCreate", []byte(gjson.GetBytes(event, "eventCreate").Raw))
		body, _ = sjson.SetBytes(body, "conversationCreate.recipients", req.Recipients)
		body, _ = sjson.SetBytes(body, "conversationCreate.subtype", "MEMBER_TO_MEMBER")
	}

	q := url.Values{}
	q.Set("action", "create")

	resp, err := c.send(ctx, "send_message", http.MethodPost, path, q, body)
	if err != nil {
		return SendRejected, err
	}
	if resp.StatusCode() == http.StatusCreated {
		return SendSent, nil
	}
	c.logger.Warn("message rejected by upstream", "status", resp.StatusCode())
	return SendRejected, nil
}

// AddConnection implements Client.
func (c *RestClient) AddConnection(ctx context.Context, publicID, note string) error {
	const inviteeKey = `com\.linkedin\.voyager\.growth\.invitation\.InviteeProfile`

	body := []byte(`{"invitations":[],"excludeInvitations":[]}`)
	body, _ = sjson.SetBytes(body, "trackingId", uuid.NewString())
	body, _ = sjson.SetBytes(body, "invitee."+inviteeKey+".profileId", publicID)
	if note != "" {
		body, _ = sjson.SetBytes(body, "message", note)
	}

	resp, err := c.send(ctx, "add_connection", http.MethodPost, "/growth/normInvitations", nil, body)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return NewUpstreamError("add_connection", resp.StatusCode(), nil)
	}
	return nil
}
