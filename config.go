package main

type Config struct {
	HTTPPort   string `yaml:"httpPort"`
	LogLevel   string `yaml:"logLevel"`
	RateAPIURL string `yaml:"rateApiUrl"` // empty means the default apilayer endpoint

	// quote history is optional; it is enabled only
	// when a database host is configured
	DBUsername string `yaml:"dbUsername"`
	DBPassword string `yaml:"dbPassword"`
	DBPort     string `yaml:"dbPort"`
	DBHost     string `yaml:"dbHost"`
	DBName     string `yaml:"dbName"`

	SessionTTLMinutes int `yaml:"sessionTtlMinutes"`

	// RateAPIKey is never read from this file; it comes
	// from the APILAYER_API_KEY environment variable only
	RateAPIKey string `yaml:"-"`
}
