package internal

import (
	"encoding/json"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	pkgerrs "github.com/tino/facebook2/pkg/errors"
	"github.com/tino/facebook2/pkg/types"
)

// Classify turns a raw HTTP exchange into a Graph API result.
//
// A non-2xx status is an API-level failure and its body is run through the
// error extraction directly. Otherwise the response is classified by content
// type: JSON bodies are parsed as the result, image bodies become a
// data/mime-type/url mapping, and a body that is itself a query string
// carrying an access_token key is decoded as a legacy token response. Any
// other shape fails with a ParseError.
//
// A JSON result that is a mapping with a truthy "error" key is an API error
// even on HTTP 200; the Graph API reports some failures in-band.
func Classify(resp *Response) (types.Object, error) {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewAPIError(resp.Body)
	}

	ct := resp.ContentType
	switch {
	case strings.Contains(ct, "json"):
		var parsed any
		if err := json.Unmarshal(resp.Body, &parsed); err != nil {
			return nil, &pkgerrs.ParseError{
				ContentType: ct,
				Message:     "invalid JSON body: " + err.Error(),
			}
		}
		if m, ok := parsed.(map[string]any); ok {
			if v := gjson.GetBytes(resp.Body, "error"); v.Exists() && truthy(v) {
				return nil, NewAPIError(resp.Body)
			}
			return types.Object(m), nil
		}
		// Scalar JSON results exist; DELETE endpoints answer bare `true`.
		return types.Object{"result": parsed}, nil

	case strings.HasPrefix(ct, "image/"):
		return types.Object{
			"data":      resp.Body,
			"mime-type": ct,
			"url":       resp.URL,
		}, nil

	default:
		if values, err := url.ParseQuery(string(resp.Body)); err == nil {
			if token := values.Get("access_token"); token != "" {
				result := types.Object{"access_token": token}
				if expires := values.Get("expires"); expires != "" {
					result["expires"] = expires
				}
				return result, nil
			}
		}
		return nil, &pkgerrs.ParseError{
			ContentType: ct,
			Message:     "response was not JSON, an image, or a token query string",
		}
	}
}

// NewAPIError builds an APIError from a raw error payload, trying the three
// legacy shapes in their historical order and stopping at the first match.
func NewAPIError(raw []byte) *pkgerrs.APIError {
	e := &pkgerrs.APIError{Raw: append([]byte(nil), raw...)}
	e.Code = gjson.GetBytes(raw, "error_code").String()

	if v := gjson.GetBytes(raw, "error_description"); v.Exists() {
		e.Message = v.String()
		e.Dialect = pkgerrs.DialectOAuthDraft10
	} else if v := gjson.GetBytes(raw, "error.message"); v.Exists() {
		e.Message = v.String()
		e.Dialect = pkgerrs.DialectOAuthDraft00
	} else if v := gjson.GetBytes(raw, "error_msg"); v.Exists() {
		e.Message = v.String()
		e.Dialect = pkgerrs.DialectREST
	} else {
		e.Message = string(raw)
		e.Dialect = pkgerrs.DialectUnstructured
	}
	return e
}

// truthy applies mapping-value truthiness: null, false, zero, the empty
// string and empty containers do not count as an error value.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		empty := true
		r.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return !empty
	}
}
