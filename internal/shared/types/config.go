package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Format         string   `json:"format" yaml:"format" toml:"format"`
	ReportName     string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType     []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir            string   `json:"dir" yaml:"dir" toml:"dir"`
	BaseURL        string   `json:"base_url" yaml:"base_url" toml:"base_url"`
	TimeoutSeconds int      `json:"timeout_seconds" yaml:"timeout_seconds" toml:"timeout_seconds"`
}
