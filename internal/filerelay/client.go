// Package filerelay uploads resume files to the external relay script that
// stores them in the shared drive folder.
package filerelay

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gigante-rh/talent-intake/pkg/logger"
)

var (
	ErrRelayFailed   = errors.New("file relay failed")
	ErrNotConfigured = errors.New("file relay script URL not configured")
)

type ClientAPI interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
}

// UploadRequest carries the file and the candidate fields the relay uses to
// name and organize the stored copy.
type UploadRequest struct {
	FileName string
	MimeType string
	Data     []byte
	Name     string
	City     string
	JobTitle string
}

type UploadResult struct {
	ID  string
	URL string
}

type Client struct {
	scriptURL  string
	httpClient *http.Client
}

func NewClient(scriptURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		scriptURL: scriptURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Upload posts the file as base64 JSON and returns the stored file's id and
// public URL. The relay reports failures in-band through its "result" field.
func (c *Client) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	if c.scriptURL == "" {
		return nil, ErrNotConfigured
	}

	payload := map[string]string{
		"fileData": base64.StdEncoding.EncodeToString(req.Data),
		"fileName": req.FileName,
		"mimeType": req.MimeType,
		"nome":     req.Name,
		"cidade":   req.City,
		"cargo":    req.JobTitle,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal relay payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.scriptURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create relay request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRelayFailed, TranslateError(err.Error()))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrRelayFailed, resp.StatusCode)
	}

	var relayResp struct {
		Result  string `json:"result"`
		FileID  string `json:"fileId"`
		FileURL string `json:"fileUrl"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&relayResp); err != nil {
		return nil, fmt.Errorf("%w: invalid response: %v", ErrRelayFailed, err)
	}

	if relayResp.Result != "success" {
		msg := relayResp.Error
		if msg == "" {
			msg = "relay returned " + relayResp.Result
		}
		return nil, fmt.Errorf("%w: %s", ErrRelayFailed, TranslateError(msg))
	}

	logger.From(ctx).Info("file relayed",
		"file_name", req.FileName,
		"file_id", relayResp.FileID,
		"duration_ms", time.Since(start).Milliseconds())

	return &UploadResult{ID: relayResp.FileID, URL: relayResp.FileURL}, nil
}

// TranslateError attaches an operator hint to the relay error messages that
// come up most often in practice.
func TranslateError(msg string) string {
	switch {
	case strings.Contains(msg, "Failed to fetch"):
		return msg + " (check that the relay script is deployed and reachable)"
	case strings.Contains(msg, "Folder ID"):
		return msg + " (check the destination folder id configured in the relay script)"
	}
	return msg
}
