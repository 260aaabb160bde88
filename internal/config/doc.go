// Package config provides configuration loading for loxharness.
//
// Configuration is layered. Each layer only overrides the fields it sets:
//
//  1. Built-in defaults (GetDefaultConfig)
//  2. User configuration: ~/.config/loxharness/config.yaml
//  3. Project configuration: ./.loxharness/config.yaml
//  4. An explicit file passed with --config
//
// Command line flags are applied on top by the cmd package.
//
// # File Format
//
//	interpreter:
//	  path: ./bin/loxpp
//	  timeout: 10s
//	scripts:
//	  dir: ./scripts
//	  sort: true
//	suite:
//	  expectations: ./expectations.yaml
//	report:
//	  format: text   # text, quiet, json or table
//	  dir: ./reports
//	failOnAnyFailure: true
//	logLevel: warn
//
// A missing user or project file is not an error. A file that exists but
// does not parse is.
package config
