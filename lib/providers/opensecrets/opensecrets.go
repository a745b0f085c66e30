// Package opensecrets talks to the OpenSecrets API, the source for
// the lobbying filing domain.
package opensecrets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"civicpulse-backend/lib/civic"
	"civicpulse-backend/lib/htmlutil"
	"civicpulse-backend/lib/restyutil"
	"civicpulse-backend/lib/timezone"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://www.opensecrets.org"

// every filing in scope is an annual report
const reportType = "Annual"

type ClientOptions struct {
	BaseUrl string
	ApiKey  string
	// bounds every request, defaults to 30 seconds
	Timeout time.Duration
	// clock used for refresh stamps and the default report year,
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
	client.SetQueryParam("apikey", options.ApiKey)
	client.SetQueryParam("output", "json")

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{http: client, now: options.Now}
}

type wireFiling struct {
	Client     string `json:"client"`
	Registrant string `json:"registrant"`
	Amount     string `json:"amount"`
	Year       string `json:"year"`
	Issue      string `json:"issue"`
}

type filingsResponse struct {
	Response struct {
		Filings []wireFiling `json:"filings"`
	} `json:"response"`
}

// FetchFilings pulls the lobbying filings reported for a year. A year
// of zero means the current year.
func (c *Client) FetchFilings(ctx context.Context, year int) ([]civic.LobbyingFiling, error) {
	ctx, span := tracer.Start(ctx, "FetchFilings")
	defer span.End()

	if year <= 0 {
		year = c.now().Year()
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("method", "lobbyingFilings").
		SetQueryParam("year", strconv.Itoa(year)).
		Get("/api/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("fetch filings: %s", res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream error status")
		return nil, err
	}

	var body filingsResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return nil, err
	}

	return toFilings(ctx, body.Response.Filings, year, c.now()), nil
}

func toFilings(
	ctx context.Context,
	input []wireFiling,
	requestedYear int,
	now time.Time,
) []civic.LobbyingFiling {
	out := []civic.LobbyingFiling{}
	for _, wire := range input {
		if wire.Client == "" && wire.Registrant == "" {
			slog.WarnContext(ctx, "skipping filing with no client or registrant")
			continue
		}

		year, err := strconv.Atoi(wire.Year)
		if err != nil {
			slog.WarnContext(
				ctx, "failed to parse filing year, assuming requested year",
				"year", wire.Year,
				"err", err,
			)
			year = requestedYear
		}

		filing := civic.LobbyingFiling{
			Client:     wire.Client,
			Registrant: wire.Registrant,
			Amount:     civic.ParseReportedAmount(wire.Amount),
			Year:       year,
			ReportType: reportType,
			Refreshed:  now,
		}
		if issue := htmlutil.StripTags(wire.Issue); issue != "" {
			filing.Issue = &issue
		}

		out = append(out, filing)
	}
	return out
}
