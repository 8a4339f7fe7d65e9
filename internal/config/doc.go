// Package config loads carpool's TOML configuration.
//
// # Configuration Discovery
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/carpool/config.toml
//  3. If the file doesn't exist, use defaults
//  4. Missing or empty fields keep their defaults
//
// # TOML Format
//
//	registry_url = "http://localhost:3000"
//	log_file = "~/.local/state/carpool/carpool.log"
//	log_level = "info"
//	page_size = 10
//	request_timeout = "10s"
//
// All fields are optional. Tilde expansion is applied to log_file.
// request_timeout bounds each registry request; "0" disables the bound.
// page_size must be one of the sizes the trip list offers (5, 10, 20).
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML syntax errors and values
// that fail validation. A missing file is not an error.
package config
