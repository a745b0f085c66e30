package usaspending

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"civicpulse-backend/lib/civic"
	"civicpulse-backend/lib/timezone"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, timezone.Location)

func fixedNow() time.Time {
	return testNow
}

const awardsFixture = `{
	"results": [
		{
			"Award ID": "CONT-0001",
			"Recipient Name": "Orbital Dynamics Inc",
			"Award Amount": 1250000.5,
			"Awarding Agency": "National Aeronautics and Space Administration",
			"Award Type": "Definitive Contract",
			"Description": "LAUNCH  SERVICES",
			"Start Date": "2024-03-15",
			"Fiscal Year": 2023
		},
		{
			"Award ID": "CONT-0002",
			"Recipient Name": "Prairie Logistics LLC",
			"Award Amount": 48000,
			"Awarding Agency": "Department of Agriculture",
			"Award Type": "Purchase Order",
			"Description": "grain transport",
			"Start Date": "2024-05-01"
		},
		{
			"Award ID": "CONT-0003",
			"Recipient Name": "",
			"Awarding Agency": "",
			"Award Amount": 1
		}
	],
	"page_metadata": {"page": 1, "hasNext": false}
}`

func newFakeApi(requests *[]awardSearchRequest) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost ||
			r.URL.Path != "/api/v2/search/spending_by_award/" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		var body awardSearchRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		*requests = append(*requests, body)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, awardsFixture)
	}))
}

func TestFetchAwards(t *testing.T) {
	var requests []awardSearchRequest
	server := newFakeApi(&requests)
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL, Now: fixedNow})

	awards, err := client.FetchAwards(context.Background(), TimeWindow{})
	require.NoError(t, err)

	expected := []civic.SpendingAward{
		{
			Agency:      "National Aeronautics and Space Administration",
			Recipient:   "Orbital Dynamics Inc",
			Amount:      1250000.5,
			AwardType:   "Definitive Contract",
			Description: "LAUNCH SERVICES",
			SignedDate:  "2024-03-15",
			FiscalYear:  2023,
		},
		{
			// no fiscal year reported, defaults to the current
			// calendar year
			Agency:      "Department of Agriculture",
			Recipient:   "Prairie Logistics LLC",
			Amount:      48000,
			AwardType:   "Purchase Order",
			Description: "grain transport",
			SignedDate:  "2024-05-01",
			FiscalYear:  2024,
		},
	}
	diff := cmp.Diff(expected, awards)
	if diff != "" {
		t.Fatal(diff)
	}

	require.Len(t, requests, 1)
	sent := requests[0]
	require.Equal(t, []timePeriodFilter{
		{StartDate: "2024-01-01", EndDate: "2024-12-31"},
	}, sent.Filters.TimePeriod)
	require.Equal(t, []string{"A", "B", "C", "D"}, sent.Filters.AwardTypeCodes)
	require.Equal(t, 100, sent.Limit)
	require.Equal(t, 1, sent.Page)
	require.Contains(t, sent.Fields, "Award Amount")
}

func TestFetchAwardsExplicitWindow(t *testing.T) {
	var requests []awardSearchRequest
	server := newFakeApi(&requests)
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL, Now: fixedNow})

	_, err := client.FetchAwards(context.Background(), TimeWindow{
		Start: time.Date(2023, time.October, 1, 0, 0, 0, 0, timezone.Location),
		End:   time.Date(2024, time.September, 30, 0, 0, 0, 0, timezone.Location),
	})
	require.NoError(t, err)

	require.Len(t, requests, 1)
	require.Equal(t, []timePeriodFilter{
		{StartDate: "2023-10-01", EndDate: "2024-09-30"},
	}, requests[0].Filters.TimePeriod)
}

func TestFetchAwardsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL, Now: fixedNow})

	_, err := client.FetchAwards(context.Background(), TimeWindow{})
	require.Error(t, err)
}

func TestFetchAwardsBadJson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "gateway timeout")
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL, Now: fixedNow})

	_, err := client.FetchAwards(context.Background(), TimeWindow{})
	require.Error(t, err)
}
