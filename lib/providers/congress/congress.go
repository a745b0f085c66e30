// Package congress talks to the congress.gov v3 API, the source for
// the legislator roster and legislation domains.
package congress

import (
	"time"

	"civicpulse-backend/lib/restyutil"
	"civicpulse-backend/lib/timezone"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://api.congress.gov/v3"

type ClientOptions struct {
	BaseUrl string
	ApiKey  string
	// bounds every request, defaults to 30 seconds
	Timeout time.Duration
	// clock used for refresh stamps and the in-office derivation,
	// defaults to timezone.Now
	Now func() time.Time
}

type Client struct {
	http *resty.Client
	now  func() time.Time
}

func NewClient(options ClientOptions) *Client {
	if options.BaseUrl == "" {
		options.BaseUrl = DefaultBaseUrl
	}
	if options.Timeout == 0 {
		options.Timeout = time.Second * 30
	}
	if options.Now == nil {
		options.Now = timezone.Now
	}

	client := resty.New()
	client.SetBaseURL(options.BaseUrl)
	client.SetTimeout(options.Timeout)
	client.SetQueryParam("api_key", options.ApiKey)
	client.SetQueryParam("format", "json")

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{http: client, now: options.Now}
}
