// Package ecourts issues encrypted GET requests against the e-courts
// web-service scripts and classifies their outcomes into the domain error
// taxonomy.
package ecourts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"ecourts/api/internal/core/domain"
)

// Headers the backend expects from the mobile app.
const (
	userAgent     = "Dalvik/2.1.0 (Linux; U; Android 16; Pixel 7 Build/BP3A.250905.014)"
	acceptCharset = "UTF-8"

	// appPackage is the application identifier half of the uid parameter.
	appPackage = "in.gov.ecourts.eCourtsServices"

	defaultTimeout = 20 * time.Second
)

// Request describes one encrypted GET against a web-service script.
type Request struct {
	// Script is the endpoint path relative to the base URL, e.g.
	// "caseHistoryWebService.php".
	Script string

	// Resource names what is being fetched; it appears in the not-found
	// message when the backend signals "no data".
	Resource string

	Params map[string]string

	// Token is the opaque bearer token. When empty (token issuance) no
	// Authorization header is sent.
	Token string

	// Timeout overrides the default per-request timeout when non-zero.
	Timeout time.Duration
}

// Client performs encrypted requests. The underlying transport may pool
// connections, but envelope construction is fresh per call and no request
// state is shared between invocations.
type Client struct {
	http     *http.Client
	baseURL  string
	deviceID string
	codec    domain.EnvelopeCodec
	logger   *slog.Logger
}

func NewClient(baseURL, deviceID string, codec domain.EnvelopeCodec, logger *slog.Logger) *Client {
	return &Client{
		// Redirects are followed by default; the per-request deadline
		// comes from the context so token issuance can stretch it.
		http:     &http.Client{},
		baseURL:  baseURL,
		deviceID: deviceID,
		codec:    codec,
		logger:   logger,
	}
}

// UID returns the device-qualified application identifier the backend
// expects in token and cause-list payloads.
func (c *Client) UID() string {
	return c.deviceID + ":" + appPackage
}

// Do encrypts the parameters, performs the GET, and classifies the outcome:
//
//	401/403            -> *domain.UnauthorizedError
//	other non-200      -> *domain.RequestError
//	200, JSON body     -> *domain.NotFoundError (plaintext means "no data")
//	200, ciphertext    -> decrypted mapping, or *domain.DecryptError
//
// The plaintext-on-failure, ciphertext-on-success split under HTTP 200 is
// how the backend actually behaves; it must not be "fixed".
func (c *Client) Do(ctx context.Context, req Request) (map[string]any, error) {
	timeout := req.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	encParams, err := c.codec.EncryptParams(req.Params)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s?params=%s", c.baseURL, req.Script, url.QueryEscape(encParams)), nil)
	if err != nil {
		return nil, fmt.Errorf("ecourts: build request for %s: %w", req.Script, err)
	}

	// Transparent gzip and connection reuse are left to the transport;
	// setting Accept-Encoding by hand would disable auto-decompression.
	httpReq.Header.Set("User-Agent", userAgent)
	httpReq.Header.Set("Accept-Charset", acceptCharset)

	if req.Token != "" {
		encToken, err := c.codec.EncryptToken(req.Token)
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Authorization", "Bearer "+encToken)
	}

	requestID := uuid.NewString()
	c.logger.Debug("upstream request",
		slog.String("script", req.Script),
		slog.String("request_id", requestID))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("ecourts: %s: %w", req.Script, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ecourts: read %s response: %w", req.Script, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &domain.UnauthorizedError{Body: string(body)}
	case resp.StatusCode != http.StatusOK:
		return nil, &domain.RequestError{Status: resp.StatusCode, Body: string(body)}
	}

	// A 200 body that parses as JSON is a plaintext "no data" signal and
	// must never reach the decrypt path. Ciphertext (base64 after the IV
	// hex) is not valid JSON, so the two cannot collide.
	if json.Valid(body) {
		return nil, &domain.NotFoundError{Resource: req.Resource}
	}

	data, err := c.codec.DecryptResponse(string(body))
	if err != nil {
		c.logger.Warn("upstream response failed to decrypt",
			slog.String("script", req.Script),
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return nil, &domain.DecryptError{Status: resp.StatusCode, Body: string(body), Err: err}
	}
	return data, nil
}
