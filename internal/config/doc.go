// Package config loads Folio's TOML configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/folio/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Empty fields fall back to defaults individually
//
// # TOML Format
//
//	api_url = "https://wiki.example.com"
//	api_token = "ol_api_..."          # or FOLIO_API_TOKEN
//	catalog_file = "~/folio.yaml"     # used when api_url is empty
//	storage_driver = "file"           # file, sqlite, memory or none
//	storage_path = "~/.local/share/folio/storage.toml"
//	poll_seconds = 30
//	log_file = "~/.local/state/folio/folio.log"
//	log_level = "info"
//
// Every field is optional. Tilde expansion is applied to paths.
//
// A missing file is not an error. Unreadable files, invalid TOML and unknown
// log levels are.
package config
