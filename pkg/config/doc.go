// Package config loads server configuration and stub mapping files from
// YAML.
package config
