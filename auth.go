package facebook

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tino/facebook2/internal"
	pkgerrs "github.com/tino/facebook2/pkg/errors"
	"github.com/tino/facebook2/pkg/types"
)

// AuthConfig holds the application credentials for an Auth helper.
type AuthConfig struct {
	// AppID and AppSecret identify the Facebook application.
	AppID     string
	AppSecret string

	// RedirectURI is where the OAuth dialog sends the user back. A URI
	// without a path component gets "/" appended at construction; Facebook
	// rejects bare-authority redirect URIs.
	RedirectURI string

	// API is the Graph API client used for token-exchange calls. Optional;
	// when nil an unauthenticated client at DefaultVersion is created.
	API *GraphAPI
}

// Auth handles the authentication flows of the official Facebook JavaScript
// SDK: parsing the signed cookie it sets, exchanging authorization codes for
// access tokens, and building OAuth dialog URLs.
//
//	auth, err := facebook.NewAuth(&facebook.AuthConfig{
//		AppID:       appID,
//		AppSecret:   appSecret,
//		RedirectURI: "https://example.com/facebook/callback/",
//	})
//	user, err := auth.GetUserFromRequest(ctx, r, false)
//	if user != nil {
//		api, _ := facebook.NewGraphAPI(&facebook.Config{AccessToken: user.String("access_token")})
//		profile, _ := api.GetObject(ctx, "me", nil)
//	}
type Auth struct {
	appID       string
	appSecret   string
	redirectURI string
	api         *GraphAPI
}

// NewAuth creates an Auth helper. Construction fails with a ConfigError if
// credentials are missing or the redirect URI does not parse.
func NewAuth(config *AuthConfig) (*Auth, error) {
	if config == nil {
		return nil, &pkgerrs.ConfigError{Message: "config cannot be nil"}
	}
	if config.AppID == "" || config.AppSecret == "" {
		return nil, &pkgerrs.ConfigError{Message: "AppID and AppSecret are required"}
	}

	redirectURI, err := normalizeRedirectURI(config.RedirectURI)
	if err != nil {
		return nil, &pkgerrs.ConfigError{Field: "RedirectURI", Message: err.Error()}
	}

	api := config.API
	if api == nil {
		api, err = NewGraphAPI(nil)
		if err != nil {
			return nil, err
		}
	}

	return &Auth{
		appID:       config.AppID,
		appSecret:   config.AppSecret,
		redirectURI: redirectURI,
		api:         api,
	}, nil
}

// normalizeRedirectURI guarantees the URI has a path component so URL
// building never produces a bare-authority redirect. Query and fragment are
// preserved: "http://x?a=1#f" becomes "http://x/?a=1#f".
func normalizeRedirectURI(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// RedirectURI returns the normalized redirect URI.
func (a *Auth) RedirectURI() string {
	return a.redirectURI
}

// ParseSignedRequest verifies and decodes a signed request string, returning
// the claims it carries. This includes a user_id if the user has authorized
// the application, and an OAuth code that GetAccessTokenFromCode can
// exchange. Failures are SignedRequestErrors with a kind naming the
// verification step that failed.
func (a *Auth) ParseSignedRequest(signedRequest string) (types.Object, error) {
	return internal.ParseSignedRequest(a.appSecret, signedRequest)
}

// GetUserFromCookie parses the cookie set by the official Facebook
// JavaScript SDK. cookies maps cookie names to values.
//
// If the user is logged in via Facebook the verified claims are returned,
// including the user_id. With validate set, the embedded OAuth code is
// additionally exchanged for an access token and the exchange result is
// merged over the claims (exchange fields win on key collision).
//
// A missing cookie is not an error: the user simply is not logged in, and
// the result is (nil, nil). A cookie that fails verification, or a failed
// token exchange, likewise yields no user rather than an error.
func (a *Auth) GetUserFromCookie(ctx context.Context, cookies map[string]string, validate bool) (types.Object, error) {
	cookie := cookies["fbsr_"+a.appID]
	if cookie == "" {
		return nil, nil
	}

	claims, err := a.ParseSignedRequest(cookie)
	if err != nil {
		return nil, nil
	}
	if !validate {
		return claims, nil
	}

	result, err := a.GetAccessTokenFromCode(ctx, claims.String("code"))
	if err != nil {
		return nil, nil
	}

	merged := make(types.Object, len(claims)+len(result))
	for k, v := range claims {
		merged[k] = v
	}
	for k, v := range result {
		merged[k] = v
	}
	return merged, nil
}

// GetUserFromRequest is GetUserFromCookie lifted onto an *http.Request.
func (a *Auth) GetUserFromRequest(ctx context.Context, r *http.Request, validate bool) (types.Object, error) {
	cookies := make(map[string]string)
	for _, c := range r.Cookies() {
		cookies[c.Name] = c.Value
	}
	return a.GetUserFromCookie(ctx, cookies, validate)
}

// AuthURL builds the OAuth dialog URL that starts a login flow. canvasURL
// is used as the redirect_uri, falling back to the configured redirect URI
// when empty. perms become the comma-joined scope parameter. extra
// parameters are merged in and win on key collision.
func (a *Auth) AuthURL(canvasURL string, perms []string, extra types.Params) string {
	redirect := canvasURL
	if redirect == "" {
		redirect = a.redirectURI
	}

	values := url.Values{}
	values.Set("client_id", a.appID)
	values.Set("redirect_uri", redirect)
	if len(perms) > 0 {
		values.Set("scope", strings.Join(perms, ","))
	}
	for k, v := range extra {
		values.Set(k, v)
	}

	return DialogOAuthURL + "?" + values.Encode()
}

// GetAppAccessToken returns the application's own access token.
func (a *Auth) GetAppAccessToken(ctx context.Context) (string, error) {
	result, err := a.api.Request(ctx, "oauth/access_token", types.Params{
		"grant_type":    "client_credentials",
		"client_id":     a.appID,
		"client_secret": a.appSecret,
	}, nil, nil, http.MethodGet)
	if err != nil {
		return "", err
	}

	var token types.AccessToken
	if !token.FromObject(result) {
		return "", &pkgerrs.ParseError{
			Operation: "GetAppAccessToken",
			Message:   "access_token missing from response",
		}
	}
	return token.Token, nil
}

// GetAccessTokenFromCode exchanges the code returned by an OAuth dialog for
// a user access token. The result carries the token and, if applicable, its
// expiry.
func (a *Auth) GetAccessTokenFromCode(ctx context.Context, code string) (types.Object, error) {
	return a.api.Request(ctx, "oauth/access_token", types.Params{
		"code":          code,
		"redirect_uri":  a.redirectURI,
		"client_id":     a.appID,
		"client_secret": a.appSecret,
	}, nil, nil, http.MethodGet)
}

// ExtendAccessToken exchanges a valid user access token for one with a
// longer expiry.
func (a *Auth) ExtendAccessToken(ctx context.Context, accessToken string) (types.Object, error) {
	return a.api.Request(ctx, "oauth/access_token", types.Params{
		"client_id":         a.appID,
		"client_secret":     a.appSecret,
		"grant_type":        "fb_exchange_token",
		"fb_exchange_token": accessToken,
	}, nil, nil, http.MethodGet)
}
