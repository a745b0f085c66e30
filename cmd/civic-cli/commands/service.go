package commands

import (
	"time"

	"civicpulse-backend/lib/configutil"
	"civicpulse-backend/lib/pacer"
	"civicpulse-backend/lib/providers/congress"
	"civicpulse-backend/lib/providers/opensecrets"
	"civicpulse-backend/lib/providers/propublica"
	"civicpulse-backend/lib/providers/usaspending"
	"civicpulse-backend/lib/sqliteutil"
	"civicpulse-backend/services/civicdata"
	"civicpulse-backend/services/civicdata/db"

	_ "modernc.org/sqlite"
)

type ProviderConfig struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
}

type Config struct {
	Database    sqliteutil.Config `json:"database"`
	PaceDelayMs int               `json:"pace_delay_ms"`
	Congress    ProviderConfig    `json:"congress"`
	ProPublica  ProviderConfig    `json:"propublica"`
	OpenSecrets ProviderConfig    `json:"opensecrets"`
	USASpending ProviderConfig    `json:"usaspending"`
}

func newService() (civicdata.Service, error) {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		return civicdata.Service{}, err
	}

	// fetch commands work fine against a throwaway database
	if cfg.Database.File == "" && cfg.Database.Url == "" {
		cfg.Database.File = ":memory:"
	}
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
		Pacer:    pace,
		Database: database,
	}), nil
}
