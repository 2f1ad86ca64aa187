package svnlayout_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/temirov/starship-svn/internal/svnlayout"
)

func TestSplitPathSegments(testInstance *testing.T) {
	testCases := []struct {
		name             string
		path             string
		expectedSegments []string
	}{
		{name: "absolute", path: "/home/user/wc", expectedSegments: []string{"home", "user", "wc"}},
		{name: "relative_marker", path: "^/trunk/src", expectedSegments: []string{"^", "trunk", "src"}},
		{name: "repeated_separators", path: "//repo///trunk/", expectedSegments: []string{"repo", "trunk"}},
		{name: "current_directory_segments", path: "/repo/./trunk", expectedSegments: []string{"repo", "trunk"}},
		{name: "root", path: "/", expectedSegments: []string{}},
		{name: "empty", path: "", expectedSegments: []string{}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			segments := svnlayout.SplitPathSegments(testCase.path)
			if difference := cmp.Diff(testCase.expectedSegments, segments); difference != "" {
				testInstance.Errorf("unexpected segments (-want +got):\n%s", difference)
			}
		})
	}
}

func TestSplitFilesystemPathKeepsRootComponent(testInstance *testing.T) {
	testCases := []struct {
		name             string
		path             string
		expectedSegments []string
	}{
		{name: "absolute", path: "/home/user/wc", expectedSegments: []string{"/", "home", "user", "wc"}},
		{name: "root_only", path: "/", expectedSegments: []string{"/"}},
		{name: "relative", path: "src/wc", expectedSegments: []string{"src", "wc"}},
		{name: "empty", path: "", expectedSegments: []string{}},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			segments := svnlayout.SplitFilesystemPath(filepath.FromSlash(testCase.path))
			if difference := cmp.Diff(testCase.expectedSegments, segments); difference != "" {
				testInstance.Errorf("unexpected segments (-want +got):\n%s", difference)
			}
		})
	}
}
