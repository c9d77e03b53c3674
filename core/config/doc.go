// Package config provides configuration management for the pipeline.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live on the struct tags of each partial config.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into subsections:
//   - API: game API region, namespaces, client credentials or a static access token
//   - Pipeline: worker pool width, selection limit, eligible brackets and their priority
//   - Database: staging database (sqlite, mysql or postgres)
//   - Warehouse: Redshift/Postgres connection and bulk insert batch size
//   - Storage: S3/MinIO landing zone
//   - Cache: optional Redis token cache
//   - Metrics: optional Prometheus pushgateway
//   - Server: read API port and API key
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Pipeline.Workers)
package config
