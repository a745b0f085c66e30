package main

import (
	"context"
	"log/slog"

	"civicpulse-backend/lib/providers/congress"
	"civicpulse-backend/lib/providers/opensecrets"
	"civicpulse-backend/lib/providers/propublica"
	"civicpulse-backend/lib/providers/usaspending"
	"civicpulse-backend/lib/restyutil"
	"civicpulse-backend/lib/serviceutil"
	"civicpulse-backend/lib/telemetry"
)

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	err := telemetry.SetupFromEnv(ctx, "civicd")
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	go func() {
		<-ctx.Done()
		telemetry.Shutdown(context.Background())
	}()
	telemetry.InstrumentPerfStats(ctx)

	if !verbose {
		return
	}

	congress.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/congress"),
	)
	propublica.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/propublica"),
	)
	opensecrets.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/opensecrets"),
	)
	usaspending.SetRestyInstrumentOutput(
		restyutil.NewFilesystemOutput(".dev/resty/usaspending"),
	)
}
