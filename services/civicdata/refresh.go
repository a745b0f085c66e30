package civicdata

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mazen160/go-random"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"civicpulse-backend/lib/civic"
	"civicpulse-backend/services/civicdata/db"
)

// RefreshDomain re-fetches one domain and replaces its stored snapshot.
// Provider failures still produce a snapshot (an empty list with a
// failed outcome); the returned error only covers run id generation,
// marshaling and storage.
func (s Service) RefreshDomain(ctx context.Context, domain civic.Domain) (RefreshRun, error) {
	runId, err := random.String(8)
	if err != nil {
		return RefreshRun{}, err
	}
	return s.refreshDomain(ctx, runId, domain)
}

// RefreshAll refreshes every domain under a single run id. Domains are
// refreshed in sequence so the pacer spaces out the provider calls; a
// domain whose snapshot cannot be stored does not stop the others.
func (s Service) RefreshAll(ctx context.Context) ([]RefreshRun, error) {
	ctx, span := tracer.Start(ctx, "RefreshAll")
	defer span.End()

	runId, err := random.String(8)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to generate run id")
		return nil, err
	}
	span.SetAttributes(attribute.String("run_id", runId))

	var runs []RefreshRun
	var errs []error
	for _, domain := range civic.Domains() {
		run, err := s.refreshDomain(ctx, runId, domain)
		if err != nil {
			slog.WarnContext(
				ctx, "refresh domain",
				"run_id", runId, "domain", domain, "err", err,
			)
			errs = append(errs, err)
			continue
		}
		runs = append(runs, run)
	}

	return runs, errors.Join(errs...)
}

func (s Service) refreshDomain(ctx context.Context, runId string, domain civic.Domain) (RefreshRun, error) {
	ctx, span := tracer.Start(ctx, "refreshDomain")
	defer span.End()
	span.SetAttributes(
		attribute.String("run_id", runId),
		attribute.String("domain", string(domain)),
	)

	started := s.now()

	records, outcome, count, err := s.fetchDomainRecords(ctx, domain)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RefreshRun{}, err
	}

	data, err := json.Marshal(records)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RefreshRun{}, err
	}

	run := RefreshRun{
		RunID:       runId,
		Domain:      domain,
		Outcome:     outcome,
		RecordCount: int64(count),
		StartedAt:   started,
		Duration:    s.now().Sub(started),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RefreshRun{}, err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	err = txqry.UpsertSnapshot(ctx, db.UpsertSnapshotParams{
		Domain:      string(domain),
		RunID:       runId,
		Outcome:     string(outcome),
		RecordCount: int64(count),
		FetchedAt:   started.Unix(),
		Data:        data,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RefreshRun{}, err
	}

	err = txqry.CreateRefreshRun(ctx, db.CreateRefreshRunParams{
		RunID:       runId,
		Domain:      string(domain),
		Outcome:     string(outcome),
		RecordCount: int64(count),
		StartedAt:   started.Unix(),
		DurationMs:  run.Duration.Milliseconds(),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RefreshRun{}, err
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return RefreshRun{}, err
	}

	slog.InfoContext(
		ctx, "refreshed domain",
		"run_id", runId, "domain", domain,
		"outcome", outcome, "records", count,
	)
	return run, nil
}
