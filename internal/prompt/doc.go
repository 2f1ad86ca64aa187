// Package prompt resolves the text starship-svn renders for a working copy.
//
// Service fetches the working copy information and hands it to the resolver
// selected by Mode: the branch name by default or the working copy root
// folder.
package prompt
