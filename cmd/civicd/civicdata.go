package main

import (
	"time"

	"civicpulse-backend/lib/pacer"
	"civicpulse-backend/lib/providers/congress"
	"civicpulse-backend/lib/providers/opensecrets"
	"civicpulse-backend/lib/providers/propublica"
	"civicpulse-backend/lib/providers/usaspending"
	"civicpulse-backend/lib/sqliteutil"
	"civicpulse-backend/services/civicdata"
	"civicpulse-backend/services/civicdata/db"
)

func InitCivicData(cfg Config) (civicdata.Service, error) {
	database, err := cfg.Database.OpenDB()
	if err != nil {
		return civicdata.Service{}, err
	}
	err = sqliteutil.ApplySchema(database, db.Schema)
	if err != nil {
		return civicdata.Service{}, err
	}

	var pace pacer.Pacer = pacer.Noop{}
	if cfg.PaceDelayMs > 0 {
		pace = pacer.FixedDelay{
			Delay: time.Duration(cfg.PaceDelayMs) * time.Millisecond,
		}
	}

	return civicdata.NewService(civicdata.ServiceOptions{
		Congress: congress.NewClient(congress.ClientOptions{
			BaseUrl: cfg.Congress.BaseUrl,
			ApiKey:  cfg.Congress.ApiKey,
		}),
		Details: propublica.NewClient(propublica.ClientOptions{
			BaseUrl: cfg.ProPublica.BaseUrl,
			ApiKey:  cfg.ProPublica.ApiKey,
		}),
		Lobbying: opensecrets.NewClient(opensecrets.ClientOptions{
			BaseUrl: cfg.OpenSecrets.BaseUrl,
			ApiKey:  cfg.OpenSecrets.ApiKey,
		}),
		Spending: usaspending.NewClient(usaspending.ClientOptions{
			BaseUrl: cfg.USASpending.BaseUrl,
		}),
		Pacer:           pace,
		CallTimeout:     time.Duration(cfg.CallTimeoutSeconds) * time.Second,
		Database:        database,
		RefreshInterval: time.Duration(cfg.RefreshIntervalMinutes) * time.Minute,
	}), nil
}
