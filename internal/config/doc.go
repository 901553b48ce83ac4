// Package config defines the configuration for a mirroring run:
// defaults, CLI-populated options, the optional .assetmirror YAML file,
// and validation.
package config
