// Package media talks to the external media host that stores event images.
// The host accepts a multipart upload into a named bucket and answers with a
// stable retrieval URL.
package media

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"eventbooking/internal/observability"
)

var ErrUploadFailed = errors.New("media upload failed")

type Uploader interface {
	Upload(ctx context.Context, bucket, filename string, r io.Reader) (string, error)
}

type Client struct {
	endpoint string
	apiKey   string
	httpc    *http.Client
	prom     *observability.Prom
}

func NewClient(endpoint, apiKey string, prom *observability.Prom) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		httpc:    &http.Client{Timeout: 15 * time.Second},
		prom:     prom,
	}
}

// Upload sends the image to the media host and returns the retrieval URL.
// Event creation must not proceed past a failed upload.
func (c *Client) Upload(ctx context.Context, bucket, filename string, r io.Reader) (url string, err error) {
	start := time.Now()
	defer func() {
		if c.prom != nil {
			c.prom.ObserveUpload(bucket, time.Since(start), err)
		}
	}()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if _, err = io.Copy(fw, r); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err = mw.WriteField("bucket", bucket); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if err = mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/upload", &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return "", fmt.Errorf("%w: status %d: %s", ErrUploadFailed, resp.StatusCode, snippet)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decoding response: %v", ErrUploadFailed, err)
	}
	if out.URL == "" {
		return "", fmt.Errorf("%w: host returned no url", ErrUploadFailed)
	}

	return out.URL, nil
}
