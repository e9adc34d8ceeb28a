// Package config provides configuration management for the sync service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file, with defaults declared as struct tags.
//
// # Configuration Structure
//
// The Config struct is the central repository for all settings, divided into
// subsections:
//   - Server: status API settings (port, API key)
//   - Database: MySQL connection details for the local store
//   - Storage: S3/MinIO credentials and bucket settings for the cloud store
//   - Log: logging level and format
//   - Sync: engine strategy, auto-sync interval and flags
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Sync.Strategy)
package config
