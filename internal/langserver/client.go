// Package langserver calls the target application's embedded language
// server over loopback HTTPS, authenticating with the discovered CSRF
// token and a caller-supplied API key.
package langserver

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// getUserStatusPath is the connect-RPC route of the GetUserStatus call.
const getUserStatusPath = "/exa.language_server_pb.LanguageServerService/GetUserStatus"

// Client issues one-shot RPCs against the loopback language server.
//
// The server presents a self-signed certificate, so certificate
// verification is disabled. That is confined to 127.0.0.1 and is the same
// trust-on-first-use concession the application's own UI makes.
type Client struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// New creates a client with the given request timeout.
func New(timeout time.Duration, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{
					InsecureSkipVerify: true, //nolint:gosec // self-signed loopback service
				},
			},
		},
		logger: logger.With().Str("component", "langserver").Logger(),
	}
}

// statusRequest is the fixed GetUserStatus request body.
type statusRequest struct {
	Metadata requestMetadata `json:"metadata"`
}

type requestMetadata struct {
	IDEName       string `json:"ideName"`
	APIKey        string `json:"apiKey"`
	Locale        string `json:"locale"`
	IDEVersion    string `json:"ideVersion"`
	ExtensionName string `json:"extensionName"`
}

// GetUserStatus fetches the account status from the language server
// listening on port, authenticated by the CSRF token and API key.
func (c *Client) GetUserStatus(ctx context.Context, port uint16, csrfToken, apiKey string) (*StatusResponse, error) {
	url := fmt.Sprintf("https://127.0.0.1:%d%s", port, getUserStatusPath)

	body, err := json.Marshal(statusRequest{
		Metadata: requestMetadata{
			IDEName:       "antigravity",
			APIKey:        apiKey,
			Locale:        "en",
			IDEVersion:    "1.11.5",
			ExtensionName: "antigravity",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	setBrowserHeaders(req, csrfToken)

	c.logger.Debug().Str("url", url).Msg("calling GetUserStatus")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call language server: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("language server returned %s", resp.Status)
	}

	var status StatusResponse
	if err := json.Unmarshal(data, &status); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &status, nil
}

// setBrowserHeaders mimics the request headers the application's embedded
// browser sends, including the CSRF token the server requires.
func setBrowserHeaders(req *http.Request, csrfToken string) {
	req.Header.Set("accept", "*/*")
	req.Header.Set("accept-language", "en-US")
	req.Header.Set("connect-protocol-version", "1")
	req.Header.Set("content-type", "application/json")
	req.Header.Set("priority", "u=1, i")
	req.Header.Set("sec-ch-ua", `"Not)A;Brand";v="8", "Chromium";v="138"`)
	req.Header.Set("sec-ch-ua-mobile", "?0")
	req.Header.Set("sec-ch-ua-platform", `"Windows"`)
	req.Header.Set("sec-fetch-dest", "empty")
	req.Header.Set("sec-fetch-mode", "cors")
	req.Header.Set("sec-fetch-site", "cross-site")
	req.Header.Set("x-codeium-csrf-token", csrfToken)
}
