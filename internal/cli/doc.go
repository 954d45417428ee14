// Package cli is responsible for the command-line surface: it parses
// flags, merges them with the optional config file and environment
// variables, and translates the result into the application's internal
// configuration.
package cli
