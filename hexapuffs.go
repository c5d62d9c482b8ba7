// Package hexapuffs provides a high-level façade over the LinkedIn session,
// resolution and identity services, wired into an MCP stdio server. Most
// applications interact with this package by:
//  1. Creating a Server via New() (optionally overriding config, logger or
//     the upstream client builder)
//  2. Serving the registered tools over stdio (ServeStdio)
//
// The façade delegates all decision logic to the session, resolve and
// identity packages while keeping setup ergonomics concise. Defaults read
// configuration from the environment and persist session cookies under the
// user's home directory.
package hexapuffs

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/cwikio/Hexa-Puffs/config"
	"github.com/cwikio/Hexa-Puffs/identity"
	"github.com/cwikio/Hexa-Puffs/logging"
	"github.com/cwikio/Hexa-Puffs/resolve"
	"github.com/cwikio/Hexa-Puffs/session"
	"github.com/cwikio/Hexa-Puffs/tools"
	"github.com/cwikio/Hexa-Puffs/voyager"
)

// Version is reported to MCP clients during initialization.
const Version = "0.2.0"

// Options configures the Server.
type Options struct {
	// Config defaults to config.Load() (environment variables).
	Config *config.Config
	// Logger defaults to a NoOp logger; cmd wires a stderr slog logger.
	Logger logging.Logger
	// CookieStore defaults to the store under ~/.hexapuffs/cookies.
	CookieStore *voyager.CookieStore
	// Build overrides upstream client construction (tests).
	Build session.BuildFunc
}

// Server aggregates the session manager, resolver, extractor and the MCP
// server exposing them as tools.
type Server struct {
	cfg       *config.Config
	manager   *session.Manager
	resolver  *resolve.Resolver
	extractor *identity.Extractor
	mcp       *server.MCPServer
}

// New creates a fully wired Server. A missing credential configuration is a
// fatal startup error; nothing is retried.
func New(optFns ...func(o *Options)) (*Server, error) {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Config == nil {
		opts.Config = config.Load()
	}
	if opts.CookieStore == nil {
		opts.CookieStore = voyager.NewCookieStore("")
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	build := opts.Build
	if build == nil {
		build = defaultBuild(cfg, opts.CookieStore, opts.Logger)
	}

	manager := session.NewManager(cfg, build, func(o *session.Options) {
		o.Artifacts = opts.CookieStore
		o.Logger = opts.Logger
	})
	resolver := resolve.NewResolver(func(o *resolve.Options) {
		o.Logger = opts.Logger
	})
	extractor := identity.NewExtractor(func(o *identity.Options) {
		o.Override = cfg.PublicIDOverride
		o.Logger = opts.Logger
	})

	mcpServer := server.NewMCPServer("hexapuffs", Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	tools.Register(mcpServer, tools.Deps{
		Sessions: manager,
		Resolver: resolver,
		Identity: extractor,
		Logger:   opts.Logger,
	})

	return &Server{
		cfg:       cfg,
		manager:   manager,
		resolver:  resolver,
		extractor: extractor,
		mcp:       mcpServer,
	}, nil
}

// defaultBuild constructs RestClients per credential source. The password
// source deliberately omits the cookie pair so a fallback build cannot
// silently reuse the rejected cookies.
func defaultBuild(cfg *config.Config, store *voyager.CookieStore, logger logging.Logger) session.BuildFunc {
	return func(ctx context.Context, source config.CredentialSource) (voyager.Client, error) {
		return voyager.NewRestClient(ctx, func(o *voyager.Options) {
			o.Logger = logger
			o.CookieStore = store
			o.Email = cfg.Email
			if source == config.SourceCookies {
				o.CookieLiAt = cfg.CookieLiAt
				o.CookieJSESSIONID = cfg.CookieJSESSIONID
			} else {
				o.Password = cfg.Password
			}
		})
	}
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// AcquireSession returns the shared upstream session, building it on first use.
func (s *Server) AcquireSession(ctx context.Context) (*session.Session, error) {
	return s.manager.Acquire(ctx)
}

// Resolve maps a free-text recipient reference to a canonical id.
func (s *Server) Resolve(ctx context.Context, reference string) (string, error) {
	sess, err := s.manager.Acquire(ctx)
	if err != nil {
		return "", err
	}
	return s.resolver.Resolve(ctx, sess, reference)
}

// OwnHandle returns the operating account's public profile handle.
func (s *Server) OwnHandle(ctx context.Context) (string, error) {
	sess, err := s.manager.Acquire(ctx)
	if err != nil {
		return "", err
	}
	return s.extractor.OwnHandle(ctx, sess)
}

// OwnCanonicalID returns the operating account's canonical id.
func (s *Server) OwnCanonicalID(ctx context.Context) (string, error) {
	sess, err := s.manager.Acquire(ctx)
	if err != nil {
		return "", err
	}
	return s.extractor.OwnID(ctx, sess)
}
