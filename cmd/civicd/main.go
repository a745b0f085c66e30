package main

import (
	"flag"

	"civicpulse-backend/lib/configutil"
	"civicpulse-backend/lib/serviceutil"
)

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}

	service, err := InitCivicData(cfg)
	if err != nil {
		serviceutil.Fatal("init civicdata", err)
	}

	port := cfg.Port
	if port == 0 {
		port = 8000
	}

	go serviceutil.StartHttpServer(port, NewRouter(service, cfg.AccessToken))
	<-ctx.Done()
}
