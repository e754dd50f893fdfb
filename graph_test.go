package facebook

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/tino/facebook2/internal"
	pkgerrs "github.com/tino/facebook2/pkg/errors"
	"github.com/tino/facebook2/pkg/types"
)

func TestGetObject(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{}
	api := newTestAPI("", "", tr)

	if _, err := api.GetObject(context.Background(), "me", types.Params{"fields": "id,name"}); err != nil {
		t.Fatalf("GetObject failed: %v", err)
	}

	call := tr.lastCall(t)
	if call.method != http.MethodGet || call.path != "v2.2/me" {
		t.Errorf("unexpected call %s %s", call.method, call.path)
	}
	if got := call.query.Get("fields"); got != "id,name" {
		t.Errorf("expected fields forwarded, got %q", got)
	}
}

func TestGetObjectsJoinsIDs(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{resp: jsonOK(`{"a": {"id": "a"}, "b": {"id": "b"}}`)}
	api := newTestAPI("", "", tr)

	result, err := api.GetObjects(context.Background(), []string{"a", "b", "c"}, nil)
	if err != nil {
		t.Fatalf("GetObjects failed: %v", err)
	}

	call := tr.lastCall(t)
	if got := call.query.Get("ids"); got != "a,b,c" {
		t.Errorf("expected ids a,b,c, got %q", got)
	}
	if call.path != "v2.2/" {
		t.Errorf("expected version root path, got %q", call.path)
	}
	if result.Map("a") == nil {
		t.Error("expected per-id objects in result")
	}
}

func TestGetObjectsInvalidIDIsRemoteError(t *testing.T) {
	t.Parallel()

	// No local validation: the remote service decides what an invalid id is.
	tr := &mockTransport{resp: &internal.Response{
		StatusCode:  400,
		ContentType: "application/json",
		Body:        []byte(`{"error": {"message": "Invalid ID"}}`),
	}}
	api := newTestAPI("", "", tr)

	_, err := api.GetObjects(context.Background(), []string{"###"}, nil)
	var apiErr *pkgerrs.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v (%T)", err, err)
	}
	if len(tr.calls) != 1 {
		t.Errorf("expected the request to be issued, got %d calls", len(tr.calls))
	}
}

func TestGetConnections(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{}
	api := newTestAPI("", "", tr)

	if _, err := api.GetConnections(context.Background(), "42", "friends", nil); err != nil {
		t.Fatalf("GetConnections failed: %v", err)
	}

	call := tr.lastCall(t)
	if call.path != "v2.2/42/friends" {
		t.Errorf("expected connection path, got %q", call.path)
	}
}

func TestPutObjectRequiresToken(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{}
	api := newTestAPI("", "", tr)

	_, err := api.PutObject(context.Background(), "me", "feed", types.Params{"message": "hi"})

	var stateErr *pkgerrs.StateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("expected StateError, got %v (%T)", err, err)
	}
	if len(tr.calls) != 0 {
		t.Errorf("expected no network call, got %d", len(tr.calls))
	}
}

func TestPutObject(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{resp: jsonOK(`{"id": "post_1"}`)}
	api := newTestAPI("tok", "", tr)

	result, err := api.PutObject(context.Background(), "me", "feed", types.Params{"message": "Hello, world"})
	if err != nil {
		t.Fatalf("PutObject failed: %v", err)
	}
	if got := result.String("id"); got != "post_1" {
		t.Errorf("expected created id, got %q", got)
	}

	call := tr.lastCall(t)
	if call.method != http.MethodPost || call.path != "v2.2/me/feed" {
		t.Errorf("unexpected call %s %s", call.method, call.path)
	}
	if got := call.form.Get("message"); got != "Hello, world" {
		t.Errorf("expected message in body, got %q", got)
	}
	if got := call.form.Get("access_token"); got != "tok" {
		t.Errorf("expected token in body, got %q", got)
	}
}

func TestPutConvenienceForms(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		invoke   func(api *GraphAPI) error
		wantPath string
		wantForm map[string]string
	}{
		{
			name: "wall post defaults to me",
			invoke: func(api *GraphAPI) error {
				_, err := api.PutWallPost(context.Background(), "Hello", nil, "")
				return err
			},
			wantPath: "v2.2/me/feed",
			wantForm: map[string]string{"message": "Hello"},
		},
		{
			name: "wall post with attachment and profile",
			invoke: func(api *GraphAPI) error {
				_, err := api.PutWallPost(context.Background(), "Look", types.Params{"link": "http://example.com/"}, "page_1")
				return err
			},
			wantPath: "v2.2/page_1/feed",
			wantForm: map[string]string{"message": "Look", "link": "http://example.com/"},
		},
		{
			name: "comment",
			invoke: func(api *GraphAPI) error {
				_, err := api.PutComment(context.Background(), "post_1", "First!")
				return err
			},
			wantPath: "v2.2/post_1/comments",
			wantForm: map[string]string{"message": "First!"},
		},
		{
			name: "like",
			invoke: func(api *GraphAPI) error {
				_, err := api.PutLike(context.Background(), "post_1")
				return err
			},
			wantPath: "v2.2/post_1/likes",
			wantForm: map[string]string{},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tr := &mockTransport{}
			api := newTestAPI("tok", "", tr)

			if err := tc.invoke(api); err != nil {
				t.Fatalf("operation failed: %v", err)
			}

			call := tr.lastCall(t)
			if call.method != http.MethodPost {
				t.Errorf("expected POST, got %s", call.method)
			}
			if call.path != tc.wantPath {
				t.Errorf("expected path %q, got %q", tc.wantPath, call.path)
			}
			for k, v := range tc.wantForm {
				if got := call.form.Get(k); got != v {
					t.Errorf("expected form %s=%q, got %q", k, v, got)
				}
			}
		})
	}
}

func TestDeleteObject(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{resp: jsonOK(`true`)}
	api := newTestAPI("tok", "", tr)

	if err := api.DeleteObject(context.Background(), "post_1"); err != nil {
		t.Fatalf("DeleteObject failed: %v", err)
	}

	call := tr.lastCall(t)
	if call.method != http.MethodDelete || call.path != "v2.2/post_1" {
		t.Errorf("unexpected call %s %s", call.method, call.path)
	}
}

func TestDeleteRequestCompositeID(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{resp: jsonOK(`true`)}
	api := newTestAPI("tok", "", tr)

	if err := api.DeleteRequest(context.Background(), "user_9", "req_7"); err != nil {
		t.Fatalf("DeleteRequest failed: %v", err)
	}

	call := tr.lastCall(t)
	if call.path != "v2.2/req_7_user_9" {
		t.Errorf("expected composite id path, got %q", call.path)
	}
	if call.method != http.MethodDelete {
		t.Errorf("expected DELETE, got %s", call.method)
	}
}

func TestPutPhoto(t *testing.T) {
	t.Parallel()

	tr := &mockTransport{resp: jsonOK(`{"id": "photo_1"}`)}
	api := newTestAPI("tok", "", tr)

	image := strings.NewReader("jpeg bytes")
	if _, err := api.PutPhoto(context.Background(), image, "", types.Params{"caption": "holiday"}); err != nil {
		t.Fatalf("PutPhoto failed: %v", err)
	}

	call := tr.lastCall(t)
	if call.path != "v2.2/me/photos" {
		t.Errorf("expected default album path, got %q", call.path)
	}
	if call.files["source"] == nil {
		t.Error("expected file attached under source")
	}
	if got := call.form.Get("caption"); got != "holiday" {
		t.Errorf("expected caption forwarded, got %q", got)
	}
	if got := call.form.Get("access_token"); got != "tok" {
		t.Errorf("expected token in body args, got %q", got)
	}
}

func TestGetVersion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		resp    *internal.Response
		want    string
		wantErr bool
	}{
		{
			name: "expected 400 probe still carries the header",
			resp: &internal.Response{
				StatusCode: 400,
				Header:     http.Header{"Facebook-Api-Version": []string{"v2.2"}},
				Body:       []byte(`{"error": {"message": "An access token is required"}}`),
			},
			want: "2.2",
		},
		{
			name: "200 with header",
			resp: &internal.Response{
				StatusCode: 200,
				Header:     http.Header{"Facebook-Api-Version": []string{"v2.1"}},
			},
			want: "2.1",
		},
		{
			name:    "header missing",
			resp:    &internal.Response{StatusCode: 400, Header: http.Header{}},
			wantErr: true,
		},
		{
			name: "unexpected status",
			resp: &internal.Response{
				StatusCode: 500,
				Header:     http.Header{"Facebook-Api-Version": []string{"v2.2"}},
			},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tr := &mockTransport{resp: tc.resp}
			api := newTestAPI("", "", tr)

			got, err := api.GetVersion(context.Background())
			if tc.wantErr {
				var apiErr *pkgerrs.APIError
				if !errors.As(err, &apiErr) {
					t.Fatalf("expected APIError, got %v (%T)", err, err)
				}
				if apiErr.Message != "API version number not available" {
					t.Errorf("unexpected message %q", apiErr.Message)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetVersion failed: %v", err)
			}
			if got != tc.want {
				t.Errorf("expected version %q, got %q", tc.want, got)
			}

			call := tr.lastCall(t)
			if call.query.Get("access_token") != "" {
				t.Error("version probe must be unauthenticated")
			}
		})
	}
}

func TestFQLVersionGate(t *testing.T) {
	t.Parallel()

	for _, version := range []string{"2.1", "2.2"} {
		version := version
		t.Run("rejected on "+version, func(t *testing.T) {
			t.Parallel()

			tr := &mockTransport{}
			api := newTestAPI("tok", version, tr)

			_, err := api.FQL(context.Background(), "SELECT uid FROM user")
			var stateErr *pkgerrs.StateError
			if !errors.As(err, &stateErr) {
				t.Fatalf("expected StateError, got %v (%T)", err, err)
			}
			if len(tr.calls) != 0 {
				t.Errorf("expected no network call, got %d", len(tr.calls))
			}
		})
	}

	for _, version := range []string{"1.0", "2.0"} {
		version := version
		t.Run("allowed on "+version, func(t *testing.T) {
			t.Parallel()

			tr := &mockTransport{resp: jsonOK(`{"data": [{"uid": 1}]}`)}
			api := newTestAPI("tok", version, tr)

			if _, err := api.FQL(context.Background(), "SELECT uid FROM user"); err != nil {
				t.Fatalf("FQL failed: %v", err)
			}

			call := tr.lastCall(t)
			if call.path != "v"+version+"/fql" {
				t.Errorf("expected fql path, got %q", call.path)
			}
			if got := call.query.Get("q"); got != "SELECT uid FROM user" {
				t.Errorf("expected query forwarded, got %q", got)
			}
		})
	}
}
