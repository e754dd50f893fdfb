package facebook

import (
	"context"
	"io"
	"net/http"
	"strings"

	pkgerrs "github.com/tino/facebook2/pkg/errors"
	"github.com/tino/facebook2/pkg/types"
)

// GetObject fetches the object with the given id from the graph. Extra
// query parameters (such as "fields") may be passed in args.
func (g *GraphAPI) GetObject(ctx context.Context, id string, args types.Params) (types.Object, error) {
	return g.Request(ctx, id, args, nil, nil, http.MethodGet)
}

// GetObjects fetches all of the given objects from the graph in one call.
// The result maps each id to its object. Invalid ids are reported by the
// remote service as an API error; no local validation is applied.
func (g *GraphAPI) GetObjects(ctx context.Context, ids []string, args types.Params) (types.Object, error) {
	args = args.Clone()
	args["ids"] = strings.Join(ids, ",")
	return g.Request(ctx, "", args, nil, nil, http.MethodGet)
}

// GetConnections fetches the named connections of the given object, e.g.
// GetConnections(ctx, "me", "friends", nil).
func (g *GraphAPI) GetConnections(ctx context.Context, id, connectionName string, args types.Params) (types.Object, error) {
	return g.Request(ctx, id+"/"+connectionName, args, nil, nil, http.MethodGet)
}

// PutObject writes data to the graph, connected to parentID via the named
// connection. For example,
//
//	api.PutObject(ctx, "me", "feed", types.Params{"message": "Hello, world"})
//
// writes to the active user's wall. Write operations require an access
// token; without one the call fails before any network I/O.
func (g *GraphAPI) PutObject(ctx context.Context, parentID, connectionName string, data types.Params) (types.Object, error) {
	if g.accessToken == "" {
		return nil, &pkgerrs.StateError{
			Operation: "PutObject",
			Message:   "write operations require an access token",
		}
	}
	data = data.Clone()
	return g.Request(ctx, parentID+"/"+connectionName, nil, data, nil, http.MethodPost)
}

// PutWallPost writes a wall post to the given profile's wall, defaulting to
// the authenticated user's wall when profileID is empty. attachment adds a
// structured attachment (name, link, caption, description, picture).
func (g *GraphAPI) PutWallPost(ctx context.Context, message string, attachment types.Params, profileID string) (types.Object, error) {
	if profileID == "" {
		profileID = "me"
	}
	data := attachment.Clone()
	data["message"] = message
	return g.PutObject(ctx, profileID, "feed", data)
}

// PutComment writes the given comment on the given post.
func (g *GraphAPI) PutComment(ctx context.Context, objectID, message string) (types.Object, error) {
	return g.PutObject(ctx, objectID, "comments", types.Params{"message": message})
}

// PutLike likes the given post.
func (g *GraphAPI) PutLike(ctx context.Context, objectID string) (types.Object, error) {
	return g.PutObject(ctx, objectID, "likes", nil)
}

// DeleteObject deletes the object with the given id from the graph.
func (g *GraphAPI) DeleteObject(ctx context.Context, id string) error {
	_, err := g.Request(ctx, id, nil, nil, nil, http.MethodDelete)
	return err
}

// DeleteRequest deletes the app request with the given id for the given
// user. The two ids form a composite "{requestID}_{userID}" path.
func (g *GraphAPI) DeleteRequest(ctx context.Context, userID, requestID string) error {
	_, err := g.Request(ctx, requestID+"_"+userID, nil, nil, nil, http.MethodDelete)
	return err
}

// PutPhoto uploads an image using multipart/form-data. albumPath says where
// the image is posted and defaults to the user's own photos ("me/photos").
func (g *GraphAPI) PutPhoto(ctx context.Context, image io.Reader, albumPath string, args types.Params) (types.Object, error) {
	if albumPath == "" {
		albumPath = "me/photos"
	}
	data := args.Clone()
	return g.Request(ctx, albumPath, nil, data, types.Files{"source": image}, http.MethodPost)
}

// GetVersion probes the version root unauthenticated and reports the API
// version the server is serving, read from the facebook-api-version
// response header. The server answers such probes with HTTP 400, which is
// expected and ignored; the header is present regardless.
func (g *GraphAPI) GetVersion(ctx context.Context) (string, error) {
	resp, err := g.client.Do(ctx, http.MethodGet, "v"+g.version, nil, nil, nil)
	if err != nil {
		return "", err
	}

	ok := (resp.StatusCode >= 200 && resp.StatusCode < 300) ||
		resp.StatusCode == http.StatusBadRequest
	header := resp.Header.Get("Facebook-API-Version")
	if !ok || header == "" {
		return "", &pkgerrs.APIError{
			Message: "API version number not available",
			Dialect: pkgerrs.DialectUnstructured,
			Raw:     resp.Body,
		}
	}

	return strings.TrimPrefix(header, "v"), nil
}

// FQL runs an FQL query, e.g.
//
//	api.FQL(ctx, "SELECT affiliations FROM user WHERE uid = me()")
//
// FQL exists only in Graph API versions up to 2.0; on later versions the
// call fails locally without issuing a request.
func (g *GraphAPI) FQL(ctx context.Context, query string) (types.Object, error) {
	if g.version != "1.0" && g.version != "2.0" {
		return nil, &pkgerrs.StateError{
			Operation: "FQL",
			Message:   "versions later than 2.0 do not support FQL",
		}
	}
	return g.Request(ctx, "fql", types.Params{"q": query}, nil, nil, http.MethodGet)
}
