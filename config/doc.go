// Package config loads command configuration for mallkit binaries.
//
// Values come from a config.yml found next to the command (cmd/<name>/),
// a .env file, and the process environment, in that order of precedence
// from lowest to highest. Environment keys map onto nested fields by
// splitting on underscores, so REQUEST_BASE_URL sets request.base_url.
//
// # Usage
//
//	cfg, err := config.Load[MallctlConfig]("mallctl")
//
// Load applies defaults and validates when the target type implements
// Defaulter, which every struct embedding ServiceConfig does.
package config
