package main

import (
	"civicpulse-backend/lib/sqliteutil"
)

type ProviderConfig struct {
	// optional, every provider has a production default
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
}

type Config struct {
	// defaults to 8000
	Port int `json:"port"`
	// empty disables request authentication
	AccessToken string            `json:"access_token"`
	Database    sqliteutil.Config `json:"database"`

	// cooldown inserted before each provider batch, 0 disables pacing
	PaceDelayMs int `json:"pace_delay_ms"`
	// per provider call, defaults to 30 seconds
	CallTimeoutSeconds int `json:"call_timeout_seconds"`
	// background refresh cadence, 0 disables the daemon
	RefreshIntervalMinutes int `json:"refresh_interval_minutes"`

	Congress    ProviderConfig `json:"congress"`
	ProPublica  ProviderConfig `json:"propublica"`
	OpenSecrets ProviderConfig `json:"opensecrets"`
	USASpending ProviderConfig `json:"usaspending"`
}
