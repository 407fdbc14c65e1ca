// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// `internal/config/loader.go` calls validateStruct right after it
// unmarshals the merged Koanf tree, so the process never runs with
// partial or malformed configuration.  Custom rules (e.g. "dsn must
// contain exactly one %s verb") can be registered here as the surface
// grows.
package config

import "github.com/go-playground/validator/v10"

var v = validator.New()

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
