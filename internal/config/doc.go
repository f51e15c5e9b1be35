// Package config manages application configuration for the task registry.
//
// Configuration is loaded from environment variables with development
// defaults, then validated before use:
//
//	cfg, _ := config.Load()
//	if err := cfg.Validate(); err != nil { ... }
//
// # Configuration Groups
//
//   - ServerConfig: HTTP server settings (port, timeouts, CORS origins)
//   - StorageConfig: persistence backend selection and directories
//   - DatabaseConfig: SurrealDB connection settings ("surreal" backend only)
//
// # Environment Variables
//
//	SERVER_PORT          - HTTP server port (default: 8080)
//	SERVER_ENV           - development | production | test
//	STORAGE_BACKEND      - file | surreal (default: file)
//	STORAGE_DATA_DIR     - data file directory (default: data)
//	STORAGE_BACKUP_DIR   - backup directory (default: backup)
//	STORAGE_EXPORT_DIR   - CSV export directory (default: exports)
//	DB_HOST, DB_PORT     - SurrealDB endpoint
//	DB_NAMESPACE, DB_DATABASE, DB_USER, DB_PASSWORD
//	CORS_ALLOWED_ORIGINS - comma-separated origin allowlist
package config
