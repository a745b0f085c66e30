package civicdata

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"civicpulse-backend/lib/civic"
	"civicpulse-backend/lib/providers/usaspending"
	"civicpulse-backend/lib/testutil"
	"civicpulse-backend/lib/timezone"
	"civicpulse-backend/services/civicdata/db"

	_ "modernc.org/sqlite"
)

var testNow = time.Date(2024, time.June, 1, 12, 0, 0, 0, timezone.Location)

var errUpstream = errors.New("upstream returned status 500")

type fakeCongress struct {
	members    []civic.Legislator
	membersErr error
	bills      []civic.Bill
	billsErr   error
}

func (f *fakeCongress) FetchMembers(ctx context.Context) ([]civic.Legislator, error) {
	return f.members, f.membersErr
}

func (f *fakeCongress) FetchBills(ctx context.Context) ([]civic.Bill, error) {
	return f.bills, f.billsErr
}

type fakeDetails struct {
	house     []civic.LegislatorDetail
	houseErr  error
	senate    []civic.LegislatorDetail
	senateErr error
}

func (f *fakeDetails) FetchChamberMembers(ctx context.Context, chamber civic.Chamber) ([]civic.LegislatorDetail, error) {
	if chamber == civic.ChamberHouse {
		return f.house, f.houseErr
	}
	return f.senate, f.senateErr
}

type fakeLobbying struct {
	filings []civic.LobbyingFiling
	err     error
	gotYear int
}

func (f *fakeLobbying) FetchFilings(ctx context.Context, year int) ([]civic.LobbyingFiling, error) {
	f.gotYear = year
	return f.filings, f.err
}

type fakeSpending struct {
	awards []civic.SpendingAward
	err    error
}

func (f *fakeSpending) FetchAwards(ctx context.Context, window usaspending.TimeWindow) ([]civic.SpendingAward, error) {
	return f.awards, f.err
}

type countingPacer struct {
	calls int
}

func (p *countingPacer) Pace(ctx context.Context) {
	p.calls++
}

func detail(id, firstName, lastName string, chamber civic.Chamber) civic.LegislatorDetail {
	return civic.LegislatorDetail{
		Legislator: civic.Legislator{
			ID:        id,
			FirstName: firstName,
			LastName:  lastName,
			Chamber:   chamber,
			InOffice:  true,
			Refreshed: testNow,
		},
	}
}

func setupService(t *testing.T, opts ServiceOptions) Service {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/civicdata",
		DbSchema: db.Schema,
	})
	t.Cleanup(cleanup)

	opts.Database = setup.DB
	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}
	return NewService(opts)
}

func TestLegislatorDetailsPartialChamberFailure(t *testing.T) {
	pace := &countingPacer{}
	service := setupService(t, ServiceOptions{
		Details: &fakeDetails{
			house: []civic.LegislatorDetail{
				detail("H1", "Alice", "Johnson", civic.ChamberHouse),
				detail("H2", "Bob", "Builder", civic.ChamberHouse),
				detail("H3", "Carol", "Moore", civic.ChamberHouse),
			},
			senateErr: errUpstream,
		},
		Pacer: pace,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	details, outcome := service.LegislatorDetails(ctx)
	require.Len(t, details, 3)
	require.Equal(t, civic.OutcomePartial, outcome)
	require.Equal(t, 1, pace.calls)

	for _, d := range details {
		require.Equal(t, civic.ChamberHouse, d.Chamber)
	}
}

func TestLegislatorDetailsBothChambers(t *testing.T) {
	service := setupService(t, ServiceOptions{
		Details: &fakeDetails{
			house: []civic.LegislatorDetail{
				detail("H1", "Alice", "Johnson", civic.ChamberHouse),
			},
			senate: []civic.LegislatorDetail{
				detail("S1", "Dan", "Deacon", civic.ChamberSenate),
				detail("S2", "Eve", "Church", civic.ChamberSenate),
			},
		},
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	details, outcome := service.LegislatorDetails(ctx)
	require.Len(t, details, 3)
	require.Equal(t, civic.OutcomeSuccess, outcome)
}

func TestProviderFailureSubstitutesEmptyList(t *testing.T) {
	service := setupService(t, ServiceOptions{
		Congress: &fakeCongress{membersErr: errUpstream, billsErr: errUpstream},
		Details:  &fakeDetails{houseErr: errUpstream, senateErr: errUpstream},
		Lobbying: &fakeLobbying{err: errUpstream},
		Spending: &fakeSpending{err: errUpstream},
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		records, outcome := service.Legislators(ctx)
		require.NotNil(t, records)
		require.Empty(t, records)
		require.Equal(t, civic.OutcomeFailed, outcome)
	}
	{
		records, outcome := service.LegislatorDetails(ctx)
		require.NotNil(t, records)
		require.Empty(t, records)
		require.Equal(t, civic.OutcomeFailed, outcome)
	}
	{
		records, outcome := service.LobbyingFilings(ctx, 0)
		require.NotNil(t, records)
		require.Empty(t, records)
		require.Equal(t, civic.OutcomeFailed, outcome)
	}
	{
		records, outcome := service.SpendingAwards(ctx, usaspending.TimeWindow{})
		require.NotNil(t, records)
		require.Empty(t, records)
		require.Equal(t, civic.OutcomeFailed, outcome)
	}
	{
		records, outcome := service.Bills(ctx)
		require.NotNil(t, records)
		require.Empty(t, records)
		require.Equal(t, civic.OutcomeFailed, outcome)
	}
}

func TestLobbyingYearPassthrough(t *testing.T) {
	lobbying := &fakeLobbying{}
	service := setupService(t, ServiceOptions{Lobbying: lobbying})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	records, outcome := service.LobbyingFilings(ctx, 2023)
	require.NotNil(t, records)
	require.Equal(t, civic.OutcomeSuccess, outcome)
	require.Equal(t, 2023, lobbying.gotYear)
}

func TestRefreshReplacesSnapshot(t *testing.T) {
	congress := &fakeCongress{
		members: []civic.Legislator{
			{ID: "A1", FirstName: "Alice", LastName: "Johnson", Chamber: civic.ChamberHouse, InOffice: true, Refreshed: testNow},
			{ID: "B2", FirstName: "Bob", LastName: "Builder", Chamber: civic.ChamberSenate, InOffice: true, Refreshed: testNow},
		},
	}
	service := setupService(t, ServiceOptions{Congress: congress})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	first, err := service.RefreshDomain(ctx, civic.DomainLegislators)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, civic.OutcomeSuccess, first.Outcome)
	require.EqualValues(t, 2, first.RecordCount)
	require.NotEmpty(t, first.RunID)

	snapshot, err := service.Snapshot(ctx, civic.DomainLegislators)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, first.RunID, snapshot.RunID)
	require.EqualValues(t, 2, snapshot.RecordCount)
	require.Equal(t, testNow.Unix(), snapshot.FetchedAt.Unix())

	var stored []civic.Legislator
	err = json.Unmarshal(snapshot.Data, &stored)
	if err != nil {
		t.Fatal(err)
	}
	diff := cmp.Diff(congress.members, stored)
	if diff != "" {
		t.Fatal(diff)
	}

	// shrink the roster and refresh again, the snapshot must be replaced
	congress.members = congress.members[:1]
	second, err := service.RefreshDomain(ctx, civic.DomainLegislators)
	if err != nil {
		t.Fatal(err)
	}
	require.NotEqual(t, first.RunID, second.RunID)

	snapshot, err = service.Snapshot(ctx, civic.DomainLegislators)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, second.RunID, snapshot.RunID)
	require.EqualValues(t, 1, snapshot.RecordCount)

	metas, err := service.Snapshots(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, metas, 1)
	require.Equal(t, civic.DomainLegislators, metas[0].Domain)
}

func TestRefreshFailedDomainStoresEmptySnapshot(t *testing.T) {
	service := setupService(t, ServiceOptions{
		Lobbying: &fakeLobbying{err: errUpstream},
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	run, err := service.RefreshDomain(ctx, civic.DomainLobbying)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, civic.OutcomeFailed, run.Outcome)
	require.EqualValues(t, 0, run.RecordCount)

	snapshot, err := service.Snapshot(ctx, civic.DomainLobbying)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, civic.OutcomeFailed, snapshot.Outcome)
	require.JSONEq(t, "[]", string(snapshot.Data))
}

func TestRefreshAll(t *testing.T) {
	pace := &countingPacer{}
	service := setupService(t, ServiceOptions{
		Congress: &fakeCongress{
			members: []civic.Legislator{
				{ID: "A1", FirstName: "Alice", LastName: "Johnson", Refreshed: testNow},
			},
			bills: []civic.Bill{
				{ID: "118-hr-1", Congress: 118, Type: "hr", Number: "1", Status: civic.BillStatusInProgress},
			},
		},
		Details: &fakeDetails{
			house: []civic.LegislatorDetail{
				detail("H1", "Alice", "Johnson", civic.ChamberHouse),
			},
			senateErr: errUpstream,
		},
		Lobbying: &fakeLobbying{
			filings: []civic.LobbyingFiling{
				{Client: "Acme", Registrant: "Lobby LLC", Amount: 50000, Year: 2024, ReportType: "Annual", Refreshed: testNow},
			},
		},
		Spending: &fakeSpending{
			awards: []civic.SpendingAward{
				{Agency: "NASA", Recipient: "Rocketry Inc", Amount: 1200.5, FiscalYear: 2024},
			},
		},
		Pacer: pace,
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	runs, err := service.RefreshAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, runs, len(civic.Domains()))
	// one pace per domain method, the chamber fan-out does not re-pace
	require.Equal(t, len(civic.Domains()), pace.calls)

	for _, run := range runs {
		require.Equal(t, runs[0].RunID, run.RunID)
	}

	byDomain := map[civic.Domain]RefreshRun{}
	for _, run := range runs {
		byDomain[run.Domain] = run
	}
	require.Equal(t, civic.OutcomeSuccess, byDomain[civic.DomainLegislators].Outcome)
	require.Equal(t, civic.OutcomePartial, byDomain[civic.DomainLegislatorDetails].Outcome)
	require.Equal(t, civic.OutcomeSuccess, byDomain[civic.DomainLobbying].Outcome)
	require.Equal(t, civic.OutcomeSuccess, byDomain[civic.DomainSpending].Outcome)
	require.Equal(t, civic.OutcomeSuccess, byDomain[civic.DomainBills].Outcome)

	metas, err := service.Snapshots(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, metas, len(civic.Domains()))

	recent, err := service.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, recent, len(civic.Domains()))
	for _, run := range recent {
		require.Equal(t, runs[0].RunID, run.RunID)
	}
}

func TestSnapshotUnknownDomain(t *testing.T) {
	service := setupService(t, ServiceOptions{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := service.Snapshot(ctx, civic.DomainBills)
	require.Error(t, err)

	_, err = service.RefreshDomain(ctx, civic.Domain("not-a-domain"))
	require.Error(t, err)
}
