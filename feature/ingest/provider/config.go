package provider

// Config holds upstream provider endpoints and credentials.
type Config struct {
	// SportsDataBaseURL is the base URL of the sports data provider.
	SportsDataBaseURL string `mapstructure:"sports_data_base_url" default:"https://api.sportradar.com/nba/trial/v8/en"`
	// SportsDataKey is the API key for the sports data provider.
	SportsDataKey string `mapstructure:"sports_data_key" default:""`
	// OddsBaseURL is the base URL of the odds aggregator.
	OddsBaseURL string `mapstructure:"odds_base_url" default:"https://api.the-odds-api.com/v4"`
	// OddsKey is the API key for the odds aggregator.
	OddsKey string `mapstructure:"odds_key" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// MaxAttempts caps retries for transient provider failures.
	MaxAttempts int `mapstructure:"max_attempts" default:"4"`
	// BaseDelayMS is the first retry backoff in milliseconds.
	BaseDelayMS int `mapstructure:"base_delay_ms" default:"500"`
	// DayDelayMS is the pause between per-day schedule requests, keeping
	// trial-tier rate limits honest.
	DayDelayMS int `mapstructure:"day_delay_ms" default:"1200"`
}
