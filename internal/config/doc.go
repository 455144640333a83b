// Package config provides configuration management for the shimloader CLI.
//
// This package handles loading and validating the loader's own configuration
// file. It is distinct from mod manifests, which are managed by the mods
// package.
//
// # Configuration File
//
// The default configuration file location is <ConfigHome>/shimloader/config.yaml.
// The configuration file uses YAML format with the following structure:
//
//	version: 1
//	game_path: /opt/emberfield   # optional, overrides autodetection
//	mods_path: /opt/emberfield/Mods # optional
//	developer_mode: false
//	check_updates: true
//
// Every key can also be supplied via a SHIMLOADER_-prefixed environment
// variable, e.g. SHIMLOADER_GAME_PATH.
//
// # Validation
//
// All loaded configurations are validated with [Validate], which returns the
// full list of problems rather than stopping at the first:
//
//	errs := config.Validate(cfg)
//	if len(errs) > 0 {
//	    for _, e := range errs {
//	        fmt.Println(e)
//	    }
//	}
package config
