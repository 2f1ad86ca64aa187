package svnlayout

import (
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	forwardSlashSeparatorConstant   = "/"
	currentDirectorySegmentConstant = "."
)

// SplitPathSegments converts a slash-separated or OS-specific path into its ordered folder names.
// Volume names, empty segments, and "." segments are dropped.
func SplitPathSegments(path string) []string {
	withoutVolume := strings.TrimPrefix(path, filepath.VolumeName(path))
	normalized := filepath.ToSlash(withoutVolume)

	rawSegments := strings.Split(normalized, forwardSlashSeparatorConstant)
	segments := make([]string, 0, len(rawSegments))
	for _, rawSegment := range rawSegments {
		if len(rawSegment) == 0 || rawSegment == currentDirectorySegmentConstant {
			continue
		}
		segments = append(segments, rawSegment)
	}
	return segments
}

// SplitFilesystemPath splits a filesystem path into its components. An absolute path leads with its root
// component ("/", or a volume root such as `C:\`), so a working copy checked out at the root can be named.
func SplitFilesystemPath(path string) []string {
	segments := SplitPathSegments(path)
	if !filepath.IsAbs(path) {
		return segments
	}
	rootComponent := filepath.VolumeName(path) + string(filepath.Separator)
	return append([]string{rootComponent}, segments...)
}

func requireTextSegment(segment string) error {
	if utf8.ValidString(segment) {
		return nil
	}
	return newResolutionError(ErrNonTextSegment, segment)
}
