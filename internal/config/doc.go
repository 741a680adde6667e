// Package config loads leadbook's YAML configuration with ${ENV}
// expansion and validation. Defaults cover the no-config-file case.
package config
