// Package database handles the MySQL connection for the local sync store.
//
// It provides a wrapper around GORM that configures the connection from the
// application's configuration: DSN construction with encoded credentials,
// connection and I/O timeouts, pool limits, and an initial ping so failures
// surface at startup rather than mid-pass.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal(err)
//	}
package database
