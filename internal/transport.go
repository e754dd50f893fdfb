// Package internal implements the HTTP transport, response classification
// and signed-request verification backing the public facebook package.
package internal

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	pkgerrs "github.com/tino/facebook2/pkg/errors"
)

// Client issues single HTTP round trips against the Graph API.
type Client struct {
	client  *http.Client
	BaseURL *url.URL
	logger  *slog.Logger
}

// NewClient returns a transport bound to baseURL.
// If a nil httpClient is provided, http.DefaultClient will be used.
func NewClient(httpClient *http.Client, baseURL string, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, &pkgerrs.ConfigError{Field: "BaseURL", Message: err.Error()}
	}
	if !strings.HasSuffix(parsedURL.Path, "/") {
		parsedURL.Path += "/"
	}

	return &Client{
		client:  httpClient,
		BaseURL: parsedURL,
		logger:  logger,
	}, nil
}

// Response captures the parts of an HTTP exchange that classification needs.
type Response struct {
	StatusCode  int
	Header      http.Header
	ContentType string
	Body        []byte
	// URL is the final request URL, reported back in image results.
	URL string
}

// Do issues one HTTP call. A relative path is resolved against the client's
// base URL. When files is non-empty the body is multipart/form-data carrying
// form and the file streams; otherwise a non-nil form is sent URL-encoded.
// No retries are attempted.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, form url.Values, files map[string]io.Reader) (*Response, error) {
	u, err := c.BaseURL.Parse(path)
	if err != nil {
		return nil, &pkgerrs.RequestError{URL: path, Err: err}
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	contentType := ""
	switch {
	case len(files) > 0:
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		for k, v := range form {
			for _, item := range v {
				if err := w.WriteField(k, item); err != nil {
					return nil, &pkgerrs.RequestError{URL: u.String(), Err: err}
				}
			}
		}
		for name, r := range files {
			part, err := w.CreateFormFile(name, name)
			if err != nil {
				return nil, &pkgerrs.RequestError{URL: u.String(), Err: err}
			}
			if _, err := io.Copy(part, r); err != nil {
				return nil, &pkgerrs.RequestError{URL: u.String(), Err: err}
			}
		}
		if err := w.Close(); err != nil {
			return nil, &pkgerrs.RequestError{URL: u.String(), Err: err}
		}
		body = buf
		contentType = w.FormDataContentType()
	case form != nil:
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, &pkgerrs.RequestError{URL: u.String(), Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	if c.logger != nil {
		c.logger.Debug("graph request", "method", method, "url", u.String())
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &pkgerrs.RequestError{URL: u.String(), Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pkgerrs.RequestError{URL: u.String(), Err: err}
	}

	if c.logger != nil {
		c.logger.Debug("graph response",
			"status", resp.StatusCode,
			"content_type", resp.Header.Get("Content-Type"),
			"bytes", len(respBody))
	}

	finalURL := u.String()
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		Header:      resp.Header,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
		URL:         finalURL,
	}, nil
}
