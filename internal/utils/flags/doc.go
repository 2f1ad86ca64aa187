// Package flags formats usage text shared by starship-svn command-line flags.
package flags
