package domain

// Coordinate is a WGS-84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// GridPoint is the outcome of a points lookup: the location-specific
// forecast resource URL.
type GridPoint struct {
	ForecastURL string
}

// ForecastPeriod is a single named time-window summary within a forecast.
// Produced fresh per request and discarded after formatting.
type ForecastPeriod struct {
	Name             string
	Temperature      int
	TemperatureUnit  string
	WindSpeed        string
	WindDirection    string
	DetailedForecast string
}

// AlertRecord is one active weather alert. Instruction may be empty.
type AlertRecord struct {
	Event       string
	AreaDesc    string
	Severity    string
	Description string
	Instruction string
}

// ServerInfo is the immutable-at-runtime configuration snapshot returned by
// the server_info tool. Computed once at startup and returned verbatim.
type ServerInfo struct {
	ServerName      string   `json:"server_name"`
	LogLevel        string   `json:"log_level"`
	LogFile         string   `json:"log_file"`
	APIBase         string   `json:"api_base"`
	UserAgent       string   `json:"user_agent"`
	AvailableTools  []string `json:"available_tools"`
	LoggingFeatures []string `json:"logging_features"`
}
