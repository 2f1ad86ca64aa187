// Package cli constructs the starship-svn command-line interface, wiring the
// Cobra root command, configuration loader, structured logging, and the prompt
// service that prints the branch name or working copy root.
package cli
