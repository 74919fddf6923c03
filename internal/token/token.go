// Package token fetches the join credential from the token service.
package token

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dkeye/roomclient/internal/domain"
	"github.com/rs/zerolog/log"
)

var (
	ErrNoEndpoint        = errors.New("token endpoint not configured")
	ErrUnreachable       = errors.New("token service unreachable")
	ErrStatus            = errors.New("token service returned error status")
	ErrMalformedResponse = errors.New("token response malformed")
	ErrMissingToken      = errors.New("token response has no token")
)

const maxResponseSize = 64 << 10

type Fetcher struct {
	Endpoint string
	HTTP     *http.Client
}

func NewFetcher(endpoint string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: timeout},
	}
}

type response struct {
	Token string `json:"token"`
}

// Fetch issues a single POST and returns the token or a tagged error.
func (f *Fetcher) Fetch(ctx context.Context, req domain.TokenRequest) (domain.Token, error) {
	if f.Endpoint == "" {
		return "", ErrNoEndpoint
	}
	if req.Role == "" {
		req.Role = domain.RoleGuest
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	client := f.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		log.Error().Err(err).Str("module", "token").Str("endpoint", f.Endpoint).Msg("token request failed")
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Str("module", "token").Int("status", resp.StatusCode).Msg("token service error status")
		return "", fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	var out response
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Error().Err(err).Str("module", "token").Msg("token response is not json")
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Token == "" {
		log.Error().Str("module", "token").Msg("token response without token")
		return "", ErrMissingToken
	}

	log.Debug().Str("module", "token").Str("room", string(req.RoomID)).Msg("token fetched")
	return domain.Token(out.Token), nil
}
