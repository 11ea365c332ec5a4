package restyutil

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ccash-backend/internal/components/telemetry"

	"github.com/stretchr/testify/require"
)

func TestCheckResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-agent", r.Header.Get("user-agent"))
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte("not here"))
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL, UserAgent: "test-agent"}, telemetry.NewTestAPI())

	res, err := client.R().Get("/present")
	require.NoError(t, err)
	require.NoError(t, CheckResponse(res))

	res, err = client.R().SetQueryParam("api_key", "secret").Get("/missing")
	require.NoError(t, err)
	err = CheckResponse(res)

	var httpErr *HttpError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusNotFound, httpErr.Status)
	require.Equal(t, "not here", httpErr.Body)
	require.Equal(t, http.MethodGet, httpErr.Method)
	require.Equal(t, server.URL+"/missing", httpErr.Url)
	require.NotContains(t, err.Error(), "secret")
}

func TestDumpMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("response body"))
	}))
	defer server.Close()

	dir := filepath.Join(t.TempDir(), "dump")
	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)

	client := NewClient(ClientOptions{BaseUrl: server.URL}, telemetry.NewTestAPI())
	DumpMessages(client, output)

	_, err = client.R().Get("/page")
	require.NoError(t, err)
	_, err = client.R().
		SetHeader("Content-Type", "text/plain").
		SetBody("request payload").
		Post("/submit")
	require.NoError(t, err)

	get, err := os.ReadFile(filepath.Join(dir, "1"))
	require.NoError(t, err)
	require.Contains(t, string(get), "GET "+server.URL+"/page")
	require.Contains(t, string(get), "<NO BODY AVAILABLE>")
	require.Contains(t, string(get), "---- RESPONSE ----")
	require.True(t, strings.HasSuffix(string(get), "response body"))

	post, err := os.ReadFile(filepath.Join(dir, "2"))
	require.NoError(t, err)
	require.Contains(t, string(post), "POST "+server.URL+"/submit")
	require.Contains(t, string(post), "request payload")
	require.True(t, strings.HasSuffix(string(post), "response body"))
}
