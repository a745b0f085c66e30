package opensecrets

import (
	"context"
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

func strptr(v string) *string { return &v }

const filingsFixture = `{
	"response": {
		"filings": [
			{
				"client": "Acme Health Co",
				"registrant": "Capitol Advocates LLC",
				"amount": "50000",
				"year": "2024",
				"issue": "<p>Issues related to  health coverage</p>"
			},
			{
				"client": "Grain Group",
				"registrant": "Field & Main",
				"amount": "1,000",
				"year": "garbage",
				"issue": ""
			},
			{
				"client": "",
				"registrant": "",
				"amount": "99",
				"year": "2024"
			}
		]
	}
}`

func newFakeApi() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("apikey") != "test-key" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if query.Get("method") != "lobbyingFilings" ||
			query.Get("output") != "json" ||
			query.Get("year") == "" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, filingsFixture)
	}))
}

func TestFetchFilings(t *testing.T) {
	server := newFakeApi()
	defer server.Close()

	client := NewClient(ClientOptions{
		BaseUrl: server.URL,
		ApiKey:  "test-key",
		Now:     fixedNow,
	})

	filings, err := client.FetchFilings(context.Background(), 2024)
	require.NoError(t, err)

	expected := []civic.LobbyingFiling{
		{
			Client:     "Acme Health Co",
			Registrant: "Capitol Advocates LLC",
			Amount:     50000,
			Year:       2024,
			ReportType: "Annual",
			Issue:      strptr("Issues related to health coverage"),
			Refreshed:  testNow,
		},
		{
			// unparseable amounts coerce to zero, unparseable years
			// fall back to the requested year
			Client:     "Grain Group",
			Registrant: "Field & Main",
			Amount:     0,
			Year:       2024,
			ReportType: "Annual",
			Refreshed:  testNow,
		},
	}
	diff := cmp.Diff(expected, filings)
	if diff != "" {
		t.Fatal(diff)
	}
}

func TestFetchFilingsDefaultsYear(t *testing.T) {
	var gotYear string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotYear = r.URL.Query().Get("year")
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"response": {"filings": []}}`)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL, ApiKey: "test-key", Now: fixedNow})

	filings, err := client.FetchFilings(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, filings)
	require.NotNil(t, filings)
	require.Equal(t, "2024", gotYear)
}

func TestFetchFilingsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{BaseUrl: server.URL, ApiKey: "test-key", Now: fixedNow})

	_, err := client.FetchFilings(context.Background(), 2024)
	require.Error(t, err)
}
