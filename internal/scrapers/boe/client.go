// client.go only fetches pages from the auction portal, it knows nothing of
// their structure.

package boe

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"subastas-ingest/internal/assert"
	"subastas-ingest/internal/telemetry"
	"subastas-ingest/lib/restyutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

const (
	report_client_fetch = "client.fetch"
)

const (
	DefaultBaseURL   = "https://subastas.boe.es/"
	DefaultUserAgent = "subastas-ingest/1.0"
	DefaultTimeout   = 10 * time.Second
	DefaultAttempts  = 5

	maxIdleConnsPerHost = 10
	backoffBase         = 500 * time.Millisecond
	backoffCap          = 8 * time.Second
)

var tracer = otel.Tracer("subastas.internal.scrapers.boe")

// TransientError is returned once every attempt at fetching a page failed
// with a timeout, a reset connection or a retryable status.
type TransientError struct {
	URL      string
	Attempts int
	Status   int
	Err      error
}

func (e *TransientError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d after %d attempts", e.URL, e.Status, e.Attempts)
	}
	return fmt.Sprintf("fetch %s: %v after %d attempts", e.URL, e.Err, e.Attempts)
}

func (e *TransientError) Unwrap() error { return e.Err }

// FatalError is returned without retrying for client errors other than 429.
type FatalError struct {
	URL    string
	Status int
	Err    error
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
}

func (e *FatalError) Unwrap() error { return e.Err }

type Options struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Attempts  int
	// RetryWait and RetryMaxWait bound the exponential backoff between
	// attempts.
	RetryWait    time.Duration
	RetryMaxWait time.Duration
	// BrowserTransport wraps the transport so requests look like they come
	// from a desktop browser.
	BrowserTransport bool
	// Dump receives every exchange while debug logging is on, it can be nil.
	Dump restyutil.InstrumentOutput
}

func (o Options) withDefaults() Options {
	if o.BaseURL == "" {
		o.BaseURL = DefaultBaseURL
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Timeout <= 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Attempts <= 0 {
		o.Attempts = DefaultAttempts
	}
	if o.RetryWait <= 0 {
		o.RetryWait = backoffBase
	}
	if o.RetryMaxWait <= 0 {
		o.RetryMaxWait = backoffCap
	}
	return o
}

type Client struct {
	BaseURL *url.URL

	http     *resty.Client
	attempts int
	tel      telemetry.API
}

func NewClient(opts Options, tel telemetry.API) (*Client, error) {
	assert.NotNil(tel)
	tel = telemetry.NewScopedAPI("boe_scraper", tel)
	opts = opts.withDefaults()

	baseURL, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(opts.BaseURL)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = maxIdleConnsPerHost
	transport.DialContext = (&net.Dialer{
		Timeout:   opts.Timeout,
		KeepAlive: time.Minute,
	}).DialContext
	httpClient.SetTransport(transport)
	if opts.BrowserTransport {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseURL.Hostname()))
	httpClient.SetTimeout(opts.Timeout)

	httpClient.SetRetryCount(opts.Attempts - 1)
	httpClient.SetRetryWaitTime(opts.RetryWait)
	httpClient.SetRetryMaxWaitTime(opts.RetryMaxWait)
	httpClient.AddRetryCondition(func(res *resty.Response, err error) bool {
		if err != nil {
			return retryableError(err)
		}
		return retryableStatus(res.StatusCode())
	})

	telemetry.InstrumentResty(httpClient, tel)
	restyutil.InstrumentClient(httpClient, tracer, opts.Dump)

	return &Client{
		BaseURL:  baseURL,
		http:     httpClient,
		attempts: opts.Attempts,
		tel:      tel,
	}, nil
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func retryableError(err error) bool {
	return !errors.Is(err, context.Canceled)
}

// Fetch returns the body of the page at target, relative targets are
// resolved against the base url.
func (c *Client) Fetch(ctx context.Context, target string) (string, error) {
	c.tel.ReportDebug(report_client_fetch, target)

	res, err := c.http.R().
		SetContext(ctx).
		Get(target)
	if err != nil {
		if ctx.Err() != nil {
			return "", &FatalError{URL: target, Err: ctx.Err()}
		}
		return "", &TransientError{URL: target, Attempts: c.attempts, Err: err}
	}

	status := res.StatusCode()
	switch {
	case res.IsSuccess():
		return res.String(), nil
	case retryableStatus(status):
		return "", &TransientError{URL: target, Attempts: c.attempts, Status: status}
	default:
		return "", &FatalError{URL: target, Status: status}
	}
}
