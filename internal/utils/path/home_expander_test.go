package pathutils

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	homeDirectory := filepath.Join(string(filepath.Separator)+"home", "alice")
	expander := NewHomeExpanderWithProvider(func() (string, error) {
		return homeDirectory, nil
	})

	testCases := []struct {
		name         string
		input        string
		expectedPath string
	}{
		{name: "tilde_only", input: "~", expectedPath: homeDirectory},
		{name: "tilde_slash", input: "~/src/wc", expectedPath: filepath.Join(homeDirectory, "src", "wc")},
		{name: "other_user", input: "~bob/wc", expectedPath: "~bob/wc"},
		{name: "absolute", input: "/srv/wc", expectedPath: "/srv/wc"},
		{name: "empty", input: "", expectedPath: ""},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedPath, expander.Expand(testCase.input))
		})
	}
}

func TestHomeExpanderKeepsPathWhenHomeUnavailable(testInstance *testing.T) {
	lookups := 0
	expander := NewHomeExpanderWithProvider(func() (string, error) {
		lookups++
		return "", errors.New("no home")
	})

	require.Equal(testInstance, "~/wc", expander.Expand("~/wc"))
	require.Equal(testInstance, "~", expander.Expand("~"))
	require.Equal(testInstance, 1, lookups)
}

func TestNilHomeExpanderReturnsInput(testInstance *testing.T) {
	var expander *HomeExpander
	require.Equal(testInstance, "~/wc", expander.Expand("~/wc"))
}
