// Package config loads and validates the application configuration.
//
// Values are collected from environment variables, command-line flags and
// an optional JSON file, merged in that priority order on top of built-in
// defaults, and validated once at process start. Invalid token-signing
// settings (notably an algorithm outside the HS256/HS512 allow-list) abort
// startup.
package config
