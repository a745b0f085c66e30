package congress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"civicpulse-backend/lib/civic"
	"civicpulse-backend/lib/htmlutil"

	"go.opentelemetry.io/otel/codes"
)

const billPageLimit = 50

type wireLatestAction struct {
	ActionDate string `json:"actionDate"`
	Text       string `json:"text"`
}

type wireBillSponsor struct {
	BioguideId string `json:"bioguideId"`
}

type wireBill struct {
	Congress       int               `json:"congress"`
	Type           string            `json:"type"`
	Number         string            `json:"number"`
	Title          string            `json:"title"`
	IntroducedDate string            `json:"introducedDate"`
	LatestAction   *wireLatestAction `json:"latestAction"`
	Sponsors       []wireBillSponsor `json:"sponsors"`
}

type billListResponse struct {
	Bills []wireBill `json:"bills"`
}

func (c *Client) FetchBills(ctx context.Context) ([]civic.Bill, error) {
	ctx, span := tracer.Start(ctx, "FetchBills")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(billPageLimit)).
		// encodes to sort=updateDate+desc
		SetQueryParam("sort", "updateDate desc").
		Get("/bill")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("fetch bills: %s", res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream error status")
		return nil, err
	}

	var body billListResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return nil, err
	}

	return toBills(ctx, body.Bills), nil
}

func toBills(ctx context.Context, input []wireBill) []civic.Bill {
	out := []civic.Bill{}
	for _, wire := range input {
		if wire.Congress == 0 || wire.Type == "" || wire.Number == "" {
			slog.WarnContext(
				ctx, "skipping bill with incomplete identifier",
				"congress", wire.Congress,
				"type", wire.Type,
				"number", wire.Number,
			)
			continue
		}

		billType := strings.ToLower(wire.Type)
		bill := civic.Bill{
			ID:         civic.BillID(wire.Congress, billType, wire.Number),
			Congress:   wire.Congress,
			Type:       billType,
			Number:     wire.Number,
			Title:      htmlutil.StripTags(wire.Title),
			Introduced: wire.IntroducedDate,
			Status:     civic.BillStatusInProgress,
		}

		if wire.LatestAction != nil {
			if wire.LatestAction.Text != "" {
				text := wire.LatestAction.Text
				bill.LatestActionText = &text
			}
			if wire.LatestAction.ActionDate != "" {
				date := wire.LatestAction.ActionDate
				bill.LatestActionDate = &date
			}
			bill.Status = civic.DeriveBillStatus(wire.LatestAction.Text)
		}
		if len(wire.Sponsors) > 0 && wire.Sponsors[0].BioguideId != "" {
			sponsor := wire.Sponsors[0].BioguideId
			bill.SponsorID = &sponsor
		}

		out = append(out, bill)
	}
	return out
}
