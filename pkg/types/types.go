package types

import (
	"io"
	"strconv"
)

// Params holds query or form arguments for a Graph API call. Callers pass
// extra parameters explicitly; the client never captures arguments by
// reflection.
type Params map[string]string

// Clone returns a copy of the params, or an empty map if p is nil. The
// client clones before injecting the access token so caller maps are never
// mutated.
func (p Params) Clone() Params {
	out := make(Params, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Files maps multipart field names to the streams to upload under them.
type Files map[string]io.Reader

// Object is the result of a Graph API call. The Graph API is schemaless:
// objects, connections, token-exchange results and image fetches all come
// back as key/value mappings, so the client exposes them uniformly.
//
// Image responses use the keys "data" ([]byte), "mime-type" and "url";
// legacy token responses use "access_token" and optionally "expires".
type Object map[string]any

// String returns the value for key as a string, or "" if the key is absent
// or not a string-like scalar.
func (o Object) String(key string) string {
	switch v := o[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Map returns the value for key as a nested Object, or nil.
func (o Object) Map(key string) Object {
	if m, ok := o[key].(map[string]any); ok {
		return Object(m)
	}
	if m, ok := o[key].(Object); ok {
		return m
	}
	return nil
}

// Has reports whether key is present.
func (o Object) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// AccessToken is a token obtained from one of the OAuth exchange endpoints.
type AccessToken struct {
	// Token is the access token string
	Token string
	// Expires is the raw expiry value, if the server reported one. Legacy
	// endpoints return it as seconds-until-expiry; it is passed through
	// unparsed.
	Expires string
}

// FromObject extracts an AccessToken from an exchange result mapping.
// Returns false if the mapping carries no access_token key.
func (t *AccessToken) FromObject(o Object) bool {
	token := o.String("access_token")
	if token == "" {
		return false
	}
	t.Token = token
	t.Expires = o.String("expires")
	if t.Expires == "" {
		t.Expires = o.String("expires_in")
	}
	return true
}
