package fred

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"ccash-backend/internal/components/chrono"
	"ccash-backend/internal/components/restyutil"
	"ccash-backend/internal/components/telemetry"

	"github.com/go-resty/resty/v2"
)

const (
	report_client_parse_observation = "client.parse-observation"
)

const (
	DefaultBaseUrl = "https://api.stlouisfed.org/fred"
	// Lee County, FL unemployment rate, not seasonally adjusted
	DefaultSeriesId = "FLLEEC7URN"

	ApiKeyEnv  = "FRED_API_KEY"
	DateLayout = "2006-01-02"

	// value FRED uses for observations that have no data
	missingValue = "."
)

var (
	ErrMissingApiKey = fmt.Errorf("fred api key is not set (config fred.api_key or $%s)", ApiKeyEnv)
	ErrEmptyDataset  = errors.New("no observations found for the given date range")
)

// SchemaError is returned when the response does not have the expected shape.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("unexpected fred response: %s", e.Reason)
}

type Config struct {
	BaseUrl      string `json:"base_url"`
	ApiKey       string `json:"api_key"`
	SeriesId     string `json:"series_id"`
	LookbackDays int    `json:"lookback_days"`
	Limit        int    `json:"limit"`
}

func DefaultConfig() Config {
	return Config{
		BaseUrl:      DefaultBaseUrl,
		SeriesId:     DefaultSeriesId,
		LookbackDays: 5 * 365,
		Limit:        1000,
	}
}

// WithEnv returns the config with the api key taken from the environment when it is set.
func (c Config) WithEnv() Config {
	key := os.Getenv(ApiKeyEnv)
	if key != "" {
		c.ApiKey = key
	}
	return c
}

type Observation struct {
	Date             time.Time `json:"date"`
	UnemploymentRate float64   `json:"unemployment_rate"`
}

type rawObservation struct {
	Date  string `json:"date"`
	Value string `json:"value"`
}

type observationsResponse struct {
	// pointer so that a missing key can be told apart from an empty list
	Observations *[]rawObservation `json:"observations"`
}

type Client struct {
	http *resty.Client
	cfg  Config
	time chrono.API
	tel  telemetry.API
}

func NewClient(cfg Config, time chrono.API, tel telemetry.API) Client {
	tel = telemetry.NewScopedAPI("fred", tel)
	return Client{
		http: restyutil.NewClient(restyutil.ClientOptions{BaseUrl: cfg.BaseUrl}, tel),
		cfg:  cfg,
		time: time,
		tel:  tel,
	}
}

func (c Client) Http() *resty.Client {
	return c.http
}

// FetchObservations fetches the series from `lookback_days` ago up to the latest
// available observation, in ascending date order.
func (c Client) FetchObservations(ctx context.Context) ([]Observation, error) {
	if c.cfg.ApiKey == "" {
		return nil, ErrMissingApiKey
	}

	start := c.time.Now().AddDate(0, 0, -c.cfg.LookbackDays)

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"series_id":         c.cfg.SeriesId,
			"api_key":           c.cfg.ApiKey,
			"observation_start": start.Format(DateLayout),
			"limit":             strconv.Itoa(c.cfg.Limit),
			"sort_order":        "asc",
			"file_type":         "json",
		}).
		Get("/series/observations")
	if err != nil {
		return nil, fmt.Errorf("fetch observations: %w", err)
	}
	err = restyutil.CheckResponse(res)
	if err != nil {
		return nil, err
	}

	var body observationsResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		return nil, &SchemaError{Reason: fmt.Sprintf("decode json: %s", err.Error())}
	}
	if body.Observations == nil {
		return nil, &SchemaError{Reason: "'observations' key not found"}
	}
	if len(*body.Observations) == 0 {
		return nil, ErrEmptyDataset
	}

	observations := make([]Observation, 0, len(*body.Observations))
	for _, raw := range *body.Observations {
		if raw.Value == missingValue {
			c.tel.ReportWarning(report_client_parse_observation, "missing value", raw.Date)
			continue
		}
		obs, err := parseObservation(raw)
		if err != nil {
			return nil, err
		}
		observations = append(observations, obs)
	}
	if len(observations) == 0 {
		return nil, ErrEmptyDataset
	}

	c.tel.ReportDebug("fetched observations", len(observations))
	return observations, nil
}

func parseObservation(raw rawObservation) (Observation, error) {
	date, err := time.Parse(DateLayout, raw.Date)
	if err != nil {
		return Observation{}, &SchemaError{Reason: fmt.Sprintf("parse date %q: %s", raw.Date, err.Error())}
	}
	value, err := strconv.ParseFloat(raw.Value, 64)
	if err != nil {
		return Observation{}, &SchemaError{Reason: fmt.Sprintf("parse value %q on %s: %s", raw.Value, raw.Date, err.Error())}
	}
	return Observation{Date: date, UnemploymentRate: value}, nil
}
