package congress

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

// the largest page size congress.gov allows
const memberPageLimit = 250

type wireMemberTerm struct {
	Chamber   string `json:"chamber"`
	StartYear int    `json:"startYear"`
	EndYear   *int   `json:"endYear"`
}

type wireMemberTerms struct {
	Item []wireMemberTerm `json:"item"`
}

type wireMember struct {
	BioguideId         string          `json:"bioguideId"`
	FirstName          string          `json:"firstName"`
	LastName           string          `json:"lastName"`
	PartyName          string          `json:"partyName"`
	State              string          `json:"state"`
	District           *int            `json:"district"`
	OfficialWebsiteUrl string          `json:"officialWebsiteUrl"`
	Terms              wireMemberTerms `json:"terms"`
}

type memberListResponse struct {
	Members []wireMember `json:"members"`
}

func (c *Client) FetchMembers(ctx context.Context) ([]civic.Legislator, error) {
	ctx, span := tracer.Start(ctx, "FetchMembers")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("limit", strconv.Itoa(memberPageLimit)).
		Get("/member")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return nil, err
	}
	if res.IsError() {
		err := fmt.Errorf("fetch members: %s", res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "upstream error status")
		return nil, err
	}

	var body memberListResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return nil, err
	}

	return toLegislators(ctx, body.Members, c.now()), nil
}

func latestTerm(terms []wireMemberTerm) *wireMemberTerm {
	var latest *wireMemberTerm
	for i := range terms {
		if latest == nil || terms[i].StartYear > latest.StartYear {
			latest = &terms[i]
		}
	}
	return latest
}

func toChamber(wire string) civic.Chamber {
	switch wire {
	case "House of Representatives":
		return civic.ChamberHouse
	case "Senate":
		return civic.ChamberSenate
	}
	return civic.ChamberUnknown
}

func toLegislators(ctx context.Context, input []wireMember, now time.Time) []civic.Legislator {
	out := []civic.Legislator{}
	for _, member := range input {
		if member.BioguideId == "" {
			slog.WarnContext(
				ctx, "skipping member without a bioguide id",
				"last_name", member.LastName,
			)
			continue
		}

		legislator := civic.Legislator{
			ID:        member.BioguideId,
			FirstName: member.FirstName,
			LastName:  member.LastName,
			Party:     member.PartyName,
			State:     member.State,
			Chamber:   civic.ChamberUnknown,
			Refreshed: now,
		}
		if member.OfficialWebsiteUrl != "" {
			url := member.OfficialWebsiteUrl
			legislator.Contact = &url
		}

		term := latestTerm(member.Terms.Item)
		if term == nil {
			slog.WarnContext(ctx, "member has no terms", "id", member.BioguideId)
			out = append(out, legislator)
			continue
		}

		legislator.Chamber = toChamber(term.Chamber)
		legislator.InOffice = civic.InOffice(term.EndYear, now.Year())
		// districts only mean anything in the house
		if legislator.Chamber == civic.ChamberHouse {
			legislator.District = member.District
		}

		out = append(out, legislator)
	}
	return out
}
