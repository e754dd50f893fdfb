package facebook

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/tino/facebook2/internal"
	pkgerrs "github.com/tino/facebook2/pkg/errors"
	"github.com/tino/facebook2/pkg/types"
)

const (
	// DefaultBaseURL is the Graph API endpoint.
	DefaultBaseURL = "https://graph.facebook.com"
	// DefaultVersion is the Graph API version used when none is configured.
	DefaultVersion = "2.2"
	// DefaultTimeout is the default HTTP client timeout.
	DefaultTimeout = 30 * time.Second
	// DialogOAuthURL is the OAuth dialog users are redirected to.
	DialogOAuthURL = "https://www.facebook.com/dialog/oauth"
)

// ValidVersions lists the Graph API versions this client can speak.
var ValidVersions = []string{"1.0", "2.0", "2.1", "2.2"}

// Config holds the configuration for a GraphAPI client. The zero value (or
// a nil pointer) is usable and yields an unauthenticated client at
// DefaultVersion.
type Config struct {
	// AccessToken authorizes requests. Optional; without it only public
	// reads are possible and write operations are rejected locally.
	AccessToken string

	// Version selects the Graph API version, e.g. "2.2". Must be one of
	// ValidVersions. Defaults to DefaultVersion if empty.
	Version string

	// Timeout bounds each HTTP call. Defaults to DefaultTimeout. Ignored
	// when HTTPClient is set.
	Timeout time.Duration

	// BaseURL for the Graph API. Defaults to DefaultBaseURL. Usually only
	// changed in tests.
	BaseURL string

	// HTTPClient to use for requests. Defaults to a client with Timeout.
	HTTPClient *http.Client

	// Logger for structured diagnostics. Optional.
	Logger *slog.Logger
}

// transport is the behavior GraphAPI needs from the internal HTTP client.
type transport interface {
	Do(ctx context.Context, method, path string, query url.Values, form url.Values, files map[string]io.Reader) (*internal.Response, error)
}

// GraphAPI is a client for the Facebook Graph API.
//
// The Graph API is made up of objects (people, pages, events, photos) and
// the connections between them (friends, feed, comments). This client
// provides access to those primitives generically:
//
//	api, err := facebook.NewGraphAPI(&facebook.Config{AccessToken: token})
//	if err != nil {
//		return err
//	}
//	user, err := api.GetObject(ctx, "me", nil)
//	friends, err := api.GetConnections(ctx, user.String("id"), "friends", nil)
//
// Configuration is immutable after construction; a GraphAPI is safe for
// concurrent use.
type GraphAPI struct {
	accessToken string
	version     string
	client      transport
}

// NewGraphAPI creates a Graph API client from config. A nil config is
// equivalent to the zero Config. Construction fails with a ConfigError if
// the configured version is not in ValidVersions.
func NewGraphAPI(config *Config) (*GraphAPI, error) {
	if config == nil {
		config = &Config{}
	}

	version := config.Version
	if version == "" {
		version = DefaultVersion
	}
	if !slices.Contains(ValidVersions, version) {
		return nil, &pkgerrs.ConfigError{
			Field:   "Version",
			Message: "valid API versions are " + strings.Join(ValidVersions, ", "),
		}
	}

	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout == 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	client, err := internal.NewClient(httpClient, baseURL, config.Logger)
	if err != nil {
		return nil, err
	}

	return &GraphAPI{
		accessToken: config.AccessToken,
		version:     version,
		client:      client,
	}, nil
}

// Version returns the configured Graph API version, e.g. "2.2".
func (g *GraphAPI) Version() string {
	return g.version
}

// HasAccessToken reports whether the client was configured with a token.
func (g *GraphAPI) HasAccessToken() bool {
	return g.accessToken != ""
}

// Request fetches the given path in the Graph API. It is the primitive all
// other operations delegate to.
//
// args become the query string. A non-nil postArgs is sent as the request
// body (URL-encoded, or multipart when files are attached). If an access
// token is configured it is injected into postArgs when present, otherwise
// into the query. method defaults to GET.
func (g *GraphAPI) Request(ctx context.Context, path string, args, postArgs types.Params, files types.Files, method string) (types.Object, error) {
	if method == "" {
		method = http.MethodGet
	}

	query := url.Values{}
	for k, v := range args {
		query.Set(k, v)
	}
	var form url.Values
	if postArgs != nil {
		form = url.Values{}
		for k, v := range postArgs {
			form.Set(k, v)
		}
	}

	if g.accessToken != "" {
		if form != nil {
			form.Set("access_token", g.accessToken)
		} else {
			query.Set("access_token", g.accessToken)
		}
	}

	resp, err := g.client.Do(ctx, method, g.versionedPath(path), query, form, files)
	if err != nil {
		return nil, err
	}

	return internal.Classify(resp)
}

// versionedPath prefixes path with the version segment: "me" -> "v2.2/me".
func (g *GraphAPI) versionedPath(path string) string {
	return "v" + g.version + "/" + strings.TrimPrefix(path, "/")
}
