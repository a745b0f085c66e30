package main

import (
	"context"

	"civicpulse-backend/cmd/civic-cli/commands"
	"civicpulse-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "civic-cli")
	telemetry.InitSlog(true)
	commands.ExecuteContext(context.Background())
}
