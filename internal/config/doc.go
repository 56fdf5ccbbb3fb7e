// Package config parses the moneymask command line into an AppConfig.
//
// Values are resolved in this order, highest priority first:
//  1. command-line flags
//  2. MONEYMASK_* environment variables
//  3. the selected field of a profile file (-profile, -field)
//  4. built-in defaults
package config
