package capecoral

import (
	"bytes"
	"context"
	"fmt"

	"ccash-backend/internal/components/chrono"
	"ccash-backend/internal/components/restyutil"
	"ccash-backend/internal/components/telemetry"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

const (
	DefaultUrl       = "https://www.capecoral.gov/edo/news___events.php"
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type ClientConfig struct {
	Url                     string `json:"url"`
	UserAgent               string `json:"user_agent"`
	DisableCloudflareBypass bool   `json:"disable_cloudflare_bypass"`
	Extract                 Config `json:"extract"`
}

func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Url:       DefaultUrl,
		UserAgent: DefaultUserAgent,
		Extract:   DefaultConfig(),
	}
}

// Client fetches the economic development office's news page.
type Client struct {
	http *resty.Client
	cfg  ClientConfig
	time chrono.API
	tel  telemetry.API
}

func NewClient(cfg ClientConfig, time chrono.API, tel telemetry.API) Client {
	tel = telemetry.NewScopedAPI("capecoral", tel)
	return Client{
		http: restyutil.NewClient(restyutil.ClientOptions{
			UserAgent:        cfg.UserAgent,
			CloudflareBypass: !cfg.DisableCloudflareBypass,
		}, tel),
		cfg:  cfg,
		time: time,
		tel:  tel,
	}
}

// Http exposes the underlying client so that callers can attach extra middleware.
func (c Client) Http() *resty.Client {
	return c.http
}

// Scrape fetches the news page and extracts its records, the records are
// stamped with today's date as the scrape date. Errors are returned to the
// caller unreported.
func (c Client) Scrape(ctx context.Context) ([]Record, error) {
	res, err := c.http.R().
		SetContext(ctx).
		Get(c.cfg.Url)
	if err != nil {
		return nil, fmt.Errorf("fetch news page %s: %w", c.cfg.Url, err)
	}
	err = restyutil.CheckResponse(res)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse news page: %w", err)
	}

	records, err := ExtractNewsFromDocument(c.cfg.Extract, doc, c.time.Now())
	if err != nil {
		return nil, fmt.Errorf("extract news from %s: %w", c.cfg.Url, err)
	}
	c.tel.ReportDebug("extracted news", len(records))
	return records, nil
}
