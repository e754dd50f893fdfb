// Package facebook provides a Go client for the Facebook Graph API and the
// authentication flows of the official Facebook JavaScript SDK.
//
// # Overview
//
// The Graph API is Facebook's object graph: people, pages, events, photos
// and the named connections between them. This package exposes it through
// two independent pieces:
//
//   - GraphAPI issues requests against the graph (object fetch, connection
//     traversal, writes, deletes, photo upload, FQL on old versions) and
//     normalizes every response into a mapping or a typed error.
//   - Auth derives a logged-in user from the signed cookie the JavaScript
//     SDK sets, exchanges OAuth codes for access tokens, and builds OAuth
//     dialog URLs. It uses a GraphAPI internally for token exchanges.
//
// # Quick Start
//
//	api, err := facebook.NewGraphAPI(&facebook.Config{
//		AccessToken: token,
//		Version:     "2.2",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	me, err := api.GetObject(ctx, "me", nil)
//	friends, err := api.GetConnections(ctx, "me", "friends", nil)
//
// # Results
//
// The Graph API is schemaless, so results are types.Object mappings with
// small typed accessors. Image fetches carry "data", "mime-type" and "url"
// keys; legacy token endpoints carry "access_token" and "expires".
//
// # Errors
//
// All failures are typed errors from pkg/errors: ConfigError at
// construction, StateError for locally rejected operations (writes without
// a token, FQL on a new version), RequestError for transport failures,
// APIError for errors the service reports (in any of its three legacy
// payload shapes, even inside an HTTP 200), ParseError for unrecognized
// response shapes and SignedRequestError for cookie verification failures.
// There are no retries; each operation issues at most one HTTP call.
//
// # Authentication
//
// Server-side login against the JavaScript SDK cookie:
//
//	auth, err := facebook.NewAuth(&facebook.AuthConfig{
//		AppID:       appID,
//		AppSecret:   appSecret,
//		RedirectURI: "https://example.com/facebook/callback/",
//	})
//	user, err := auth.GetUserFromRequest(ctx, r, true)
//
// The signed cookie is verified with HMAC-SHA256 over its exact wire bytes
// before any claim in it is trusted.
package facebook
