package token

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dkeye/roomclient/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestServer(t *testing.T, status int, body string) (*httptest.Server, *domain.TokenRequest) {
	t.Helper()
	var got domain.TokenRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &got
}

func TestFetch(t *testing.T) {
	srv, got := createTestServer(t, http.StatusOK, `{"token":"tok1"}`)
	f := NewFetcher(srv.URL, time.Second)

	tok, err := f.Fetch(context.Background(), domain.TokenRequest{
		RoomID:   "abc-123",
		UserName: "Alice",
		Env:      domain.EnvProd,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Token("tok1"), tok)
	assert.Equal(t, domain.RoomID("abc-123"), got.RoomID)
	assert.Equal(t, "Alice", got.UserName)
	assert.Equal(t, domain.EnvProd, got.Env)
	assert.Equal(t, domain.RoleGuest, got.Role)
}

func TestFetchFailures(t *testing.T) {
	type testCase struct {
		name   string
		status int
		body   string
		want   error
	}

	cases := []testCase{
		{name: "not json", status: http.StatusOK, body: "<html>", want: ErrMalformedResponse},
		{name: "no token field", status: http.StatusOK, body: `{"room":"x"}`, want: ErrMissingToken},
		{name: "empty token", status: http.StatusOK, body: `{"token":""}`, want: ErrMissingToken},
		{name: "server error", status: http.StatusInternalServerError, body: `{"token":"tok1"}`, want: ErrStatus},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := createTestServer(t, tc.status, tc.body)
			_, err := NewFetcher(srv.URL, time.Second).Fetch(context.Background(), domain.TokenRequest{RoomID: "r"})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestFetchUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(url, time.Second).Fetch(context.Background(), domain.TokenRequest{RoomID: "r"})
	assert.ErrorIs(t, err, ErrUnreachable)
}

func TestFetchNoEndpoint(t *testing.T) {
	_, err := NewFetcher("", time.Second).Fetch(context.Background(), domain.TokenRequest{})
	assert.ErrorIs(t, err, ErrNoEndpoint)
}
