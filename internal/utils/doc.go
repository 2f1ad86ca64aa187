// Package utils exposes reusable helpers consumed by the starship-svn CLI.
//
// It houses ConfigurationLoader and LoggerFactory abstractions that integrate
// Viper, environment variables, and zap logging.
package utils
