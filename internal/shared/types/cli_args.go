package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	Period     string
	Format     string
	ConfigFile string
	ReportName string
	ReportType []string
	Dir        string
}
