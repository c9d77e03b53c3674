package metrics

// Config holds configuration for batch run metrics.
type Config struct {
	// PushgatewayURL is the Prometheus pushgateway address. Empty disables pushing.
	PushgatewayURL string `mapstructure:"pushgateway_url" default:""`
	// Job is the pushgateway job label.
	Job string `mapstructure:"job" default:"pvp_pipeline"`
}
