package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/juralis/paperdrop/internal/client/models"
	"github.com/juralis/paperdrop/internal/common"
)

const defaultTimeout = 5 * time.Minute

// HTTPClient implements Client against the server's multipart endpoint.
type HTTPClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewHTTPClient creates a client for the server at baseURL. The timeout is
// generous: large payloads on slow field connections are the norm, not the
// exception.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// UploadDocument streams the queued payload as one multipart request. The
// multipart body is produced through a pipe, so the payload is not copied
// into a second buffer.
func (c *HTTPClient) UploadDocument(ctx context.Context, u *models.PendingUpload) (*DocumentInfo, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, u))
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", pr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if u.SyncKey != "" {
		req.Header.Set("X-Sync-Key", u.SyncKey)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrorServerUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, c.responseError(resp)
	}

	info := &DocumentInfo{}
	if err := json.NewDecoder(resp.Body).Decode(info); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return info, nil
}

func writeMultipart(mw *multipart.Writer, u *models.PendingUpload) error {
	if u.ProjectID != nil {
		if err := mw.WriteField("project_id", *u.ProjectID); err != nil {
			return err
		}
	}
	if u.AuthorName != nil {
		if err := mw.WriteField("author_name", *u.AuthorName); err != nil {
			return err
		}
	}

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, u.OriginalName))
	hdr.Set("Content-Type", u.ContentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, bytes.NewReader(u.Payload)); err != nil {
		return err
	}
	return mw.Close()
}

// responseError turns a non-success response into an error the failure
// taxonomy understands: permanent statuses wrap ErrorServerRejected, the
// rest stay retryable.
func (c *HTTPClient) responseError(resp *http.Response) error {
	var env errorEnvelope
	msg := resp.Status
	if err := json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&env); err == nil && env.Message != "" {
		msg = fmt.Sprintf("%s (%s)", env.Message, env.Error)
	}

	if common.ClassifyStatus(resp.StatusCode) == common.Permanent {
		return fmt.Errorf("%w: %s", common.ErrorServerRejected, msg)
	}
	return fmt.Errorf("upload failed with status %d: %s", resp.StatusCode, msg)
}

// Ping checks /healthz. Any failure counts as unreachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrorServerUnreachable, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", common.ErrorServerUnreachable, resp.StatusCode)
	}
	return nil
}
