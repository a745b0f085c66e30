// Package propublica talks to the ProPublica Congress API, the source
// for the legislator detail domain. It reports extras the roster
// provider lacks, like social handles and the next election year.
package propublica

import (
	"time"

	"civicpulse-backend/lib/restyutil"
	"civicpulse-backend/lib/timezone"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseUrl = "https://api.propublica.org"

// the congress the detail endpoints are pinned to when none is
// configured
const DefaultCongress = 118

type ClientOptions struct {
	BaseUrl string
	ApiKey  string
	// congress number baked into every request path, defaults to
	// DefaultCongress
	Congress int
	// bounds every request, defaults to 30 seconds
	Timeout time.Duration
	// clock used for refresh stamps, defaults to timezone.Now
	Now func() time.Time
}

type Client struct {
	http     *resty.Client
	congress int
	now      func() time.Time
}

func NewClient(options ClientOptions) *Client {
	if options.BaseUrl == "" {
		options.BaseUrl = DefaultBaseUrl
	}
	if options.Congress == 0 {
		options.Congress = DefaultCongress
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
	client.SetHeader("X-API-Key", options.ApiKey)

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{
		http:     client,
		congress: options.Congress,
		now:      options.Now,
	}
}
