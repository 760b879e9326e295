package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/metinatakli/cinema-ticket-service/internal/app"
	"github.com/stretchr/testify/require"
)

// apiClient is a thin HTTP client with its own cookie jar, so every
// client carries an independent session.
type apiClient struct {
	t      testing.TB
	client *http.Client
	base   string
}

func newClient(t testing.TB, server *httptest.Server) *apiClient {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &apiClient{
		t:      t,
		client: &http.Client{Jar: jar},
		base:   server.URL,
	}
}

func (c *apiClient) do(method, path string, body any) *http.Response {
	c.t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.base+path, reader)
	require.NoError(c.t, err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.client.Do(req)
	require.NoError(c.t, err)

	return res
}

func (c *apiClient) register(username, email, password string) {
	c.t.Helper()

	res := c.do(http.MethodPost, "/accounts", app.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	defer res.Body.Close()

	require.Equal(c.t, http.StatusCreated, res.StatusCode)
}

func (c *apiClient) login(username, password string) {
	c.t.Helper()

	res := c.do(http.MethodPost, "/accounts/login", app.LoginRequest{
		Username: username,
		Password: password,
	})
	defer res.Body.Close()

	require.Equal(c.t, http.StatusNoContent, res.StatusCode)
}

func decode[T any](t testing.TB, res *http.Response) T {
	t.Helper()

	defer res.Body.Close()

	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))

	return v
}

func drain(res *http.Response) {
	io.Copy(io.Discard, res.Body)
	res.Body.Close()
}
