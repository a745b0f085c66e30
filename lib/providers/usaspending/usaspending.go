// Package usaspending talks to the USAspending API, the source for
// the federal spending award domain. It is the one provider that
// takes a POST body and needs no credential.
package usaspending

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"civicpulse-backend/lib/civic"
	"civicpulse-backend/lib/htmlutil"
	"civicpulse-backend/lib/restyutil"
	"civicpulse-backend/lib/timezone"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/codes"
)

const DefaultBaseUrl = "https://api.usaspending.gov"

const awardPageLimit = 100

// prime award contract type codes
var defaultAwardTypeCodes = []string{"A", "B", "C", "D"}

var awardFields = []string{
	"Award ID",
	"Recipient Name",
	"Award Amount",
	"Awarding Agency",
	"Award Type",
	"Description",
	"Start Date",
}

type ClientOptions struct {
	BaseUrl string
	// bounds every request, defaults to 30 seconds
	Timeout time.Duration
	// clock used for the default search window and fiscal year,
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

	restyutil.InstrumentClient(client, tracer, restyInstrumentOutput)

	return &Client{http: client, now: options.Now}
}

type timePeriodFilter struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type awardFilters struct {
	TimePeriod     []timePeriodFilter `json:"time_period"`
	AwardTypeCodes []string           `json:"award_type_codes"`
}

type awardSearchRequest struct {
	Filters awardFilters `json:"filters"`
	Fields  []string     `json:"fields"`
	Limit   int          `json:"limit"`
	Page    int          `json:"page"`
}

type wireAward struct {
	AwardID        string  `json:"Award ID"`
	RecipientName  string  `json:"Recipient Name"`
	AwardAmount    float64 `json:"Award Amount"`
	AwardingAgency string  `json:"Awarding Agency"`
	AwardType      string  `json:"Award Type"`
	Description    string  `json:"Description"`
	StartDate      string  `json:"Start Date"`
	FiscalYear     *int    `json:"Fiscal Year"`
}

type awardSearchResponse struct {
	Results []wireAward `json:"results"`
}

// TimeWindow bounds an award search. The zero value means the current
// calendar year.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

func (c *Client) FetchAwards(ctx context.Context, window TimeWindow) ([]civic.SpendingAward, error) {
	ctx, span := tracer.Start(ctx, "FetchAwards")
	defer span.End()

	now := c.now()
	if window.Start.IsZero() || window.End.IsZero() {
		window.Start, window.End = timezone.GetCalendarYear(now)
	}

	request := awardSearchRequest{
		Filters: awardFilters{
			TimePeriod: []timePeriodFilter{
				{
					StartDate: timezone.FormatDate(window.Start),
					EndDate:   timezone.FormatDate(window.End),
				},
			},
			AwardTypeCodes: defaultAwardTypeCodes,
		},
		Fields: awardFields,
		Limit:  awardPageLimit,
		Page:   1,
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post("/api/v2/search/spending_by_award/")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("fetch awards: %s", res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream error status")
		return nil, err
	}

	var body awardSearchResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return nil, err
	}

	return toAwards(ctx, body.Results, now.Year()), nil
}

func toAwards(ctx context.Context, input []wireAward, defaultFiscalYear int) []civic.SpendingAward {
	out := []civic.SpendingAward{}
	for _, wire := range input {
		if wire.RecipientName == "" && wire.AwardingAgency == "" {
			slog.WarnContext(
				ctx, "skipping award with no recipient or agency",
				"award_id", wire.AwardID,
			)
			continue
		}

		award := civic.SpendingAward{
			Agency:      wire.AwardingAgency,
			Recipient:   wire.RecipientName,
			Amount:      wire.AwardAmount,
			AwardType:   wire.AwardType,
			Description: htmlutil.CleanText(wire.Description),
			SignedDate:  wire.StartDate,
			FiscalYear:  defaultFiscalYear,
		}
		if wire.FiscalYear != nil {
			award.FiscalYear = *wire.FiscalYear
		}

		out = append(out, award)
	}
	return out
}
