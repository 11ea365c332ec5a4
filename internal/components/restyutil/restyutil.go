package restyutil

import (
	"fmt"
	"net/url"
	"time"

	"ccash-backend/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

type ClientOptions struct {
	BaseUrl   string
	UserAgent string
	Timeout   time.Duration
	// wraps the transport so that requests look like they came from a browser,
	// needed for sites that sit behind cloudflare.
	CloudflareBypass bool
}

// NewClient creates a resty client that reports every request through tel.
func NewClient(opts ClientOptions, tel telemetry.API) *resty.Client {
	client := resty.New()
	if opts.BaseUrl != "" {
		client.SetBaseURL(opts.BaseUrl)
	}
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}
	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}
	client.SetTimeout(timeout)
	telemetry.InstrumentResty(client, tel)
	return client
}

// HttpError is returned when a request completes with a non-2xx status.
type HttpError struct {
	Method string
	Url    string
	Status int
	Body   string
}

func (e *HttpError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Url, e.Status)
}

// CheckResponse returns an *HttpError if the response does not have a 2xx status.
// The query string is left out of the error's url since it may carry credentials.
func CheckResponse(res *resty.Response) error {
	if res.IsSuccess() {
		return nil
	}
	return &HttpError{
		Method: res.Request.Method,
		Url:    withoutQuery(res.Request.URL),
		Status: res.StatusCode(),
		Body:   res.String(),
	}
}

func withoutQuery(rawUrl string) string {
	parsed, err := url.Parse(rawUrl)
	if err != nil {
		return rawUrl
	}
	parsed.RawQuery = ""
	return parsed.String()
}
