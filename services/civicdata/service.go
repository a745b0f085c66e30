package civicdata

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"civicpulse-backend/lib/civic"
	"civicpulse-backend/lib/pacer"
	"civicpulse-backend/lib/providers/usaspending"
	"civicpulse-backend/lib/timezone"
	"civicpulse-backend/services/civicdata/db"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var tracer = otel.Tracer("civicpulse.services.civicdata")

const DefaultCallTimeout = time.Second * 30

// CongressClient covers the two congress.gov feeds, the roster and the
// bill list.
type CongressClient interface {
	FetchMembers(ctx context.Context) ([]civic.Legislator, error)
	FetchBills(ctx context.Context) ([]civic.Bill, error)
}

type DetailClient interface {
	FetchChamberMembers(ctx context.Context, chamber civic.Chamber) ([]civic.LegislatorDetail, error)
}

type LobbyingClient interface {
	FetchFilings(ctx context.Context, year int) ([]civic.LobbyingFiling, error)
}

type SpendingClient interface {
	FetchAwards(ctx context.Context, window usaspending.TimeWindow) ([]civic.SpendingAward, error)
}

type Service struct {
	congress    CongressClient
	details     DetailClient
	lobbying    LobbyingClient
	spending    SpendingClient
	pacer       pacer.Pacer
	now         func() time.Time
	callTimeout time.Duration
	db          *sql.DB
	qry         *db.Queries
}

type ServiceOptions struct {
	Congress CongressClient
	Details  DetailClient
	Lobbying LobbyingClient
	Spending SpendingClient
	// optional, defaults to pacer.Noop
	Pacer pacer.Pacer
	// optional, defaults to timezone.Now
	Now func() time.Time
	// per provider call, optional, defaults to DefaultCallTimeout
	CallTimeout time.Duration
	// holds the snapshot store
	Database *sql.DB
	// optional, > 0 starts the background refresh daemon
	RefreshInterval time.Duration
}

func NewService(opts ServiceOptions) Service {
	if opts.Pacer == nil {
		opts.Pacer = pacer.Noop{}
	}
	if opts.Now == nil {
		opts.Now = timezone.Now
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = DefaultCallTimeout
	}

	s := Service{
		congress:    opts.Congress,
		details:     opts.Details,
		lobbying:    opts.Lobbying,
		spending:    opts.Spending,
		pacer:       opts.Pacer,
		now:         opts.Now,
		callTimeout: opts.CallTimeout,
		db:          opts.Database,
		qry:         db.New(opts.Database),
	}

	if opts.RefreshInterval > 0 {
		go s.refreshDaemon(context.Background(), opts.RefreshInterval)
	}

	return s
}

// fetchDomain paces, bounds and runs one provider call. Provider
// failures never escape: they are logged, recorded on the span and
// replaced with an empty list so callers always get usable data.
func fetchDomain[T any](ctx context.Context, s Service, domain civic.Domain, fetch func(context.Context) ([]T, error)) ([]T, civic.Outcome) {
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(attribute.String("domain", string(domain)))

	s.pacer.Pace(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	records, err := fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.WarnContext(
			ctx, "fetch failed, substituting empty list",
			"domain", domain, "err", err,
		)
		return []T{}, civic.OutcomeFailed
	}
	if records == nil {
		records = []T{}
	}
	return records, civic.OutcomeSuccess
}

func (s Service) Legislators(ctx context.Context) ([]civic.Legislator, civic.Outcome) {
	ctx, span := tracer.Start(ctx, "Legislators")
	defer span.End()

	return fetchDomain(ctx, s, civic.DomainLegislators, s.congress.FetchMembers)
}

// LegislatorDetails hits the detail provider once per chamber. The two
// calls run concurrently and both always complete; a failed chamber
// only costs its own records and degrades the outcome to partial.
func (s Service) LegislatorDetails(ctx context.Context) ([]civic.LegislatorDetail, civic.Outcome) {
	ctx, span := tracer.Start(ctx, "LegislatorDetails")
	defer span.End()
	span.SetAttributes(attribute.String("domain", string(civic.DomainLegislatorDetails)))

	s.pacer.Pace(ctx)

	ctx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	chambers := []civic.Chamber{civic.ChamberHouse, civic.ChamberSenate}
	outcomes := make([]civic.Outcome, len(chambers))

	details := []civic.LegislatorDetail{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i, chamber := range chambers {
		wg.Add(1)
		go func(i int, chamber civic.Chamber) {
			defer wg.Done()

			records, err := s.details.FetchChamberMembers(ctx, chamber)
			if err != nil {
				slog.WarnContext(
					ctx, "fetch chamber failed, dropping its records",
					"chamber", chamber, "err", err,
				)
				outcomes[i] = civic.OutcomeFailed
				return
			}

			mu.Lock()
			details = append(details, records...)
			mu.Unlock()
			outcomes[i] = civic.OutcomeSuccess
		}(i, chamber)
	}
	wg.Wait()

	outcome := civic.CombineOutcomes(outcomes...)
	if outcome != civic.OutcomeSuccess {
		span.SetStatus(codes.Error, "at least one chamber fetch failed")
	}
	return details, outcome
}

// LobbyingFilings takes a report year; zero means the current year at
// call time.
func (s Service) LobbyingFilings(ctx context.Context, year int) ([]civic.LobbyingFiling, civic.Outcome) {
	ctx, span := tracer.Start(ctx, "LobbyingFilings")
	defer span.End()
	if year > 0 {
		span.SetAttributes(attribute.Int("year", year))
	}

	return fetchDomain(ctx, s, civic.DomainLobbying, func(ctx context.Context) ([]civic.LobbyingFiling, error) {
		return s.lobbying.FetchFilings(ctx, year)
	})
}

// SpendingAwards takes a time window; the zero window means the current
// calendar year at call time.
func (s Service) SpendingAwards(ctx context.Context, window usaspending.TimeWindow) ([]civic.SpendingAward, civic.Outcome) {
	ctx, span := tracer.Start(ctx, "SpendingAwards")
	defer span.End()

	return fetchDomain(ctx, s, civic.DomainSpending, func(ctx context.Context) ([]civic.SpendingAward, error) {
		return s.spending.FetchAwards(ctx, window)
	})
}

func (s Service) Bills(ctx context.Context) ([]civic.Bill, civic.Outcome) {
	ctx, span := tracer.Start(ctx, "Bills")
	defer span.End()

	return fetchDomain(ctx, s, civic.DomainBills, s.congress.FetchBills)
}

// fetchDomainRecords dispatches a domain name to its façade method
// with default parameters. Used by refresh runs and the HTTP layer.
func (s Service) fetchDomainRecords(ctx context.Context, domain civic.Domain) (any, civic.Outcome, int, error) {
	switch domain {
	case civic.DomainLegislators:
		records, outcome := s.Legislators(ctx)
		return records, outcome, len(records), nil
	case civic.DomainLegislatorDetails:
		records, outcome := s.LegislatorDetails(ctx)
		return records, outcome, len(records), nil
	case civic.DomainLobbying:
		records, outcome := s.LobbyingFilings(ctx, 0)
		return records, outcome, len(records), nil
	case civic.DomainSpending:
		records, outcome := s.SpendingAwards(ctx, usaspending.TimeWindow{})
		return records, outcome, len(records), nil
	case civic.DomainBills:
		records, outcome := s.Bills(ctx)
		return records, outcome, len(records), nil
	}
	return nil, civic.OutcomeFailed, 0, fmt.Errorf("unknown domain '%s'", domain)
}

// SnapshotMeta describes a stored snapshot without its payload.
type SnapshotMeta struct {
	Domain      civic.Domain  `json:"domain"`
	RunID       string        `json:"runId"`
	Outcome     civic.Outcome `json:"outcome"`
	RecordCount int64         `json:"recordCount"`
	FetchedAt   time.Time     `json:"fetchedAt"`
}

// Snapshot is a stored snapshot plus the canonical record list it was
// taken of, still in its marshaled form.
type Snapshot struct {
	SnapshotMeta
	Data json.RawMessage `json:"data"`
}

func snapshotMetaFromRow(row db.Snapshot) SnapshotMeta {
	return SnapshotMeta{
		Domain:      civic.Domain(row.Domain),
		RunID:       row.RunID,
		Outcome:     civic.Outcome(row.Outcome),
		RecordCount: row.RecordCount,
		FetchedAt:   time.Unix(row.FetchedAt, 0).In(timezone.Location),
	}
}

// Snapshot returns the stored snapshot for one domain. sql.ErrNoRows
// comes back unwrapped when the domain has never been refreshed.
func (s Service) Snapshot(ctx context.Context, domain civic.Domain) (Snapshot, error) {
	ctx, span := tracer.Start(ctx, "Snapshot")
	defer span.End()
	span.SetAttributes(attribute.String("domain", string(domain)))

	row, err := s.qry.GetSnapshot(ctx, string(domain))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Snapshot{}, err
	}

	return Snapshot{
		SnapshotMeta: snapshotMetaFromRow(row),
		Data:         json.RawMessage(row.Data),
	}, nil
}

func (s Service) Snapshots(ctx context.Context) ([]SnapshotMeta, error) {
	ctx, span := tracer.Start(ctx, "Snapshots")
	defer span.End()

	rows, err := s.qry.GetAllSnapshots(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	metas := make([]SnapshotMeta, len(rows))
	for i, row := range rows {
		metas[i] = snapshotMetaFromRow(row)
	}
	return metas, nil
}

// RefreshRun describes one domain refresh, persisted for audit.
type RefreshRun struct {
	RunID       string        `json:"runId"`
	Domain      civic.Domain  `json:"domain"`
	Outcome     civic.Outcome `json:"outcome"`
	RecordCount int64         `json:"recordCount"`
	StartedAt   time.Time     `json:"startedAt"`
	Duration    time.Duration `json:"duration"`
}

func (s Service) RecentRuns(ctx context.Context, limit int64) ([]RefreshRun, error) {
	ctx, span := tracer.Start(ctx, "RecentRuns")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.qry.GetRecentRefreshRuns(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	runs := make([]RefreshRun, len(rows))
	for i, row := range rows {
		runs[i] = RefreshRun{
			RunID:       row.RunID,
			Domain:      civic.Domain(row.Domain),
			Outcome:     civic.Outcome(row.Outcome),
			RecordCount: row.RecordCount,
			StartedAt:   time.Unix(row.StartedAt, 0).In(timezone.Location),
			Duration:    time.Duration(row.DurationMs) * time.Millisecond,
		}
	}
	return runs, nil
}
