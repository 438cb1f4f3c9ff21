// Package config loads application settings from defaults, an optional
// config.yaml and AROOSI_-prefixed environment variables, in increasing order
// of precedence. The result is validated before it is returned.
package config
