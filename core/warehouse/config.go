package warehouse

// Supported warehouse dialects.
const (
	DialectRedshift = "redshift"
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// Config holds configuration for the analytical warehouse.
type Config struct {
	// URL is the connection string. For sqlite3 it is a file path.
	URL string `mapstructure:"url" default:""`
	// Schema is set as search_path on postgres compatible warehouses.
	Schema string `mapstructure:"schema" default:"public"`
	// Dialect is one of redshift, postgres or sqlite3.
	Dialect string `mapstructure:"dialect" default:"redshift"`
	// BatchSize is the number of rows per bulk INSERT.
	BatchSize int `mapstructure:"batch_size" default:"1000"`
}

// Batch returns the configured batch size or 1000.
func (c Config) Batch() int {
	if c.BatchSize <= 0 {
		return 1000
	}
	return c.BatchSize
}
