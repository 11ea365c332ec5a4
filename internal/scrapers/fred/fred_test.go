package fred

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ccash-backend/internal/components/chrono"
	"ccash-backend/internal/components/restyutil"
	"ccash-backend/internal/components/telemetry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 11, 9, 30, 0, 0, time.UTC)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) (Client, *telemetry.TestAPI) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := DefaultConfig()
	cfg.BaseUrl = server.URL
	cfg.ApiKey = apiKey

	tel := telemetry.NewTestAPI()
	return NewClient(cfg, chrono.FixedImpl{Time: now}, tel), tel
}

func respond(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("content-type", "application/json")
		w.Write([]byte(body))
	}
}

func TestFetchObservations(t *testing.T) {
	client, tel := newTestClient(t, "secret", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/series/observations", r.URL.Path)

		query := r.URL.Query()
		require.Equal(t, DefaultSeriesId, query.Get("series_id"))
		require.Equal(t, "secret", query.Get("api_key"))
		require.Equal(t, "2020-03-12", query.Get("observation_start"))
		require.Equal(t, "1000", query.Get("limit"))
		require.Equal(t, "asc", query.Get("sort_order"))
		require.Equal(t, "json", query.Get("file_type"))

		respond(`{
			"realtime_start": "2025-03-11",
			"observations": [
				{"realtime_start": "2025-03-11", "date": "2024-11-01", "value": "3.6"},
				{"realtime_start": "2025-03-11", "date": "2024-12-01", "value": "."},
				{"realtime_start": "2025-03-11", "date": "2025-01-01", "value": "4.1"}
			]
		}`)(w, r)
	})

	observations, err := client.FetchObservations(context.Background())
	require.NoError(t, err)

	diff := cmp.Diff([]Observation{
		{Date: time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), UnemploymentRate: 3.6},
		{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), UnemploymentRate: 4.1},
	}, observations)
	if diff != "" {
		t.Fatalf("observations mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{"fred: " + report_client_parse_observation}, tel.Warnings())
}

func TestFetchObservationsErrors(t *testing.T) {
	table := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "bad status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error_code": 400, "error_message": "Bad Request. The value for variable api_key is not registered."}`))
			},
			check: func(t *testing.T, err error) {
				var httpErr *restyutil.HttpError
				require.True(t, errors.As(err, &httpErr))
				require.Equal(t, http.StatusBadRequest, httpErr.Status)
				require.Contains(t, httpErr.Body, "api_key is not registered")
			},
		},
		{
			name:    "missing observations key",
			handler: respond(`{"count": 0}`),
			check: func(t *testing.T, err error) {
				var schemaErr *SchemaError
				require.True(t, errors.As(err, &schemaErr))
			},
		},
		{
			name:    "not json",
			handler: respond(`<html>maintenance</html>`),
			check: func(t *testing.T, err error) {
				var schemaErr *SchemaError
				require.True(t, errors.As(err, &schemaErr))
			},
		},
		{
			name:    "bad value",
			handler: respond(`{"observations": [{"date": "2025-01-01", "value": "high"}]}`),
			check: func(t *testing.T, err error) {
				var schemaErr *SchemaError
				require.True(t, errors.As(err, &schemaErr))
			},
		},
		{
			name:    "empty",
			handler: respond(`{"observations": []}`),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrEmptyDataset)
			},
		},
		{
			name:    "only missing values",
			handler: respond(`{"observations": [{"date": "2025-01-01", "value": "."}]}`),
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, ErrEmptyDataset)
			},
		},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			client, _ := newTestClient(t, "secret", row.handler)
			observations, err := client.FetchObservations(context.Background())
			require.Nil(t, observations)
			row.check(t, err)
		})
	}
}

func TestFetchObservationsMissingApiKey(t *testing.T) {
	client, _ := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made without an api key")
	})
	_, err := client.FetchObservations(context.Background())
	require.ErrorIs(t, err, ErrMissingApiKey)
}

func TestConfigWithEnv(t *testing.T) {
	t.Setenv(ApiKeyEnv, "from-env")
	cfg := Config{ApiKey: "from-config"}.WithEnv()
	require.Equal(t, "from-env", cfg.ApiKey)

	t.Setenv(ApiKeyEnv, "")
	cfg = Config{ApiKey: "from-config"}.WithEnv()
	require.Equal(t, "from-config", cfg.ApiKey)
}
