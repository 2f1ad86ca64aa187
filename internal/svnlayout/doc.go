// Package svnlayout interprets Subversion metadata laid out in the
// conventional trunk/branches/tags structure.
//
// BranchResolver derives a branch name from a repository URL, skipping
// caller-supplied intermediate folders. RootResolver aligns a root-anchored
// relative URL against the absolute working directory to find the working
// copy root folder. Both are pure and safe for concurrent use.
package svnlayout
