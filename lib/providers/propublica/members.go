package propublica

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"civicpulse-backend/lib/civic"

	"go.opentelemetry.io/otel/codes"
)

type wireDetailMember struct {
	Id             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Party          string `json:"party"`
	State          string `json:"state"`
	District       string `json:"district"`
	TwitterAccount string `json:"twitter_account"`
	NextElection   string `json:"next_election"`
	Phone          string `json:"phone"`
	InOffice       bool   `json:"in_office"`
	Url            string `json:"url"`
}

type wireDetailResult struct {
	Congress string             `json:"congress"`
	Chamber  string             `json:"chamber"`
	Members  []wireDetailMember `json:"members"`
}

type detailResponse struct {
	Status  string             `json:"status"`
	Results []wireDetailResult `json:"results"`
}

// FetchChamberMembers pulls the detail roster for one chamber of the
// configured congress.
func (c *Client) FetchChamberMembers(ctx context.Context, chamber civic.Chamber) ([]civic.LegislatorDetail, error) {
	ctx, span := tracer.Start(ctx, "FetchChamberMembers")
	defer span.End()

	if chamber != civic.ChamberHouse && chamber != civic.ChamberSenate {
		return nil, fmt.Errorf("chamber '%s' has no member list", chamber)
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/congress/v1/%d/%s/members.json", c.congress, chamber))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("fetch %s members: %s", chamber, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream error status")
		return nil, err
	}

	var body detailResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return nil, err
	}
	if body.Status != "OK" {
		err := fmt.Errorf("fetch %s members: status '%s'", chamber, body.Status)
		span.RecordError(err)
		span.SetStatus(codes.Error, "api-level error status")
		return nil, err
	}

	out := []civic.LegislatorDetail{}
	for _, result := range body.Results {
		out = append(out, toDetails(ctx, result.Members, chamber, c.now())...)
	}
	return out, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toDetails(
	ctx context.Context,
	input []wireDetailMember,
	chamber civic.Chamber,
	now time.Time,
) []civic.LegislatorDetail {
	out := []civic.LegislatorDetail{}
	for _, member := range input {
		if member.Id == "" {
			slog.WarnContext(
				ctx, "skipping detail member without an id",
				"last_name", member.LastName,
			)
			continue
		}

		detail := civic.LegislatorDetail{
			Legislator: civic.Legislator{
				ID:        member.Id,
				FirstName: member.FirstName,
				LastName:  member.LastName,
				Party:     member.Party,
				State:     member.State,
				Chamber:   chamber,
				InOffice:  member.InOffice,
				Contact:   optional(member.Url),
				Refreshed: now,
			},
			Twitter:      optional(member.TwitterAccount),
			NextElection: optional(member.NextElection),
			Phone:        optional(member.Phone),
		}

		if chamber == civic.ChamberHouse && member.District != "" {
			district, err := strconv.Atoi(member.District)
			if err != nil {
				slog.WarnContext(
					ctx, "failed to parse district",
					"id", member.Id,
					"district", member.District,
					"err", err,
				)
			} else {
				detail.District = &district
			}
		}

		out = append(out, detail)
	}
	return out
}
