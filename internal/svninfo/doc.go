// Package svninfo wraps `svn info --xml` for starship-svn.
//
// It decodes the XML report into WorkingCopyInfo and integrates with
// execshell so interactions with the Subversion CLI can be stubbed in tests.
package svninfo
