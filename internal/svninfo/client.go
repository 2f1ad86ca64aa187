package svninfo

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/temirov/starship-svn/internal/execshell"
)

const (
	infoSubcommandConstant                  = "info"
	xmlFlagConstant                         = "--xml"
	nonInteractiveFlagConstant              = "--non-interactive"
	localeEnvironmentVariableConstant       = "LC_ALL"
	untranslatedLocaleConstant              = "C"
	relativeURLSeparatorConstant            = "/"
	executorNotConfiguredMessageConstant    = "subversion executor not configured"
	targetRequiredMessageConstant           = "working copy path must be provided"
	infoDecodingMessageConstant             = "unable to decode svn info output"
	missingEntryMessageConstant             = "svn info output contains no entry"
	infoCommandFailureTemplateConstant      = "svn info for %s failed: %w"
	infoDecodingFailureTemplateConstant     = "%w: %w"
	infoMissingEntryFailureTemplateConstant = "%w: %s"
)

var (
	// ErrExecutorNotConfigured indicates the client was constructed without an executor.
	ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)
	// ErrTargetRequired indicates an empty working copy path was supplied.
	ErrTargetRequired = errors.New(targetRequiredMessageConstant)
	// ErrInfoDecoding indicates the svn info output could not be interpreted.
	ErrInfoDecoding = errors.New(infoDecodingMessageConstant)
)

// SubversionExecutor is the minimal interface required from execshell.ShellExecutor.
type SubversionExecutor interface {
	ExecuteSubversion(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// WorkingCopyInfo holds the facts reported by svn info for a single path.
type WorkingCopyInfo struct {
	Path                string
	Kind                string
	Revision            string
	URL                 string
	RelativeURL         string
	RepositoryRoot      string
	RepositoryUUID      string
	WorkingCopyRootPath string
}

type infoDocument struct {
	XMLName xml.Name    `xml:"info"`
	Entries []infoEntry `xml:"entry"`
}

type infoEntry struct {
	Path        string          `xml:"path,attr"`
	Kind        string          `xml:"kind,attr"`
	Revision    string          `xml:"revision,attr"`
	URL         string          `xml:"url"`
	RelativeURL string          `xml:"relative-url"`
	Repository  infoRepository  `xml:"repository"`
	WorkingCopy infoWorkingCopy `xml:"wc-info"`
}

type infoRepository struct {
	Root string `xml:"root"`
	UUID string `xml:"uuid"`
}

type infoWorkingCopy struct {
	RootPath string `xml:"wcroot-abspath"`
}

// Client coordinates svn info invocations through execshell.
type Client struct {
	executor SubversionExecutor
}

// NewClient constructs a Client using the provided executor.
func NewClient(executor SubversionExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// Info reads the working copy information for the target path.
// svn runs under the C locale so failure messages carried by execshell errors are untranslated.
func (client *Client) Info(executionContext context.Context, target string) (WorkingCopyInfo, error) {
	trimmedTarget := strings.TrimSpace(target)
	if len(trimmedTarget) == 0 {
		return WorkingCopyInfo{}, ErrTargetRequired
	}

	executionResult, executionError := client.executor.ExecuteSubversion(executionContext, execshell.CommandDetails{
		Arguments:            []string{infoSubcommandConstant, xmlFlagConstant, nonInteractiveFlagConstant, trimmedTarget},
		WorkingDirectory:     trimmedTarget,
		EnvironmentVariables: map[string]string{localeEnvironmentVariableConstant: untranslatedLocaleConstant},
	})
	if executionError != nil {
		return WorkingCopyInfo{}, fmt.Errorf(infoCommandFailureTemplateConstant, trimmedTarget, executionError)
	}

	return ParseInfo([]byte(executionResult.StandardOutput))
}

// ParseInfo decodes the first entry of an svn info XML report.
// The relative URL is percent-decoded segment by segment so it compares against filesystem folder names.
func ParseInfo(document []byte) (WorkingCopyInfo, error) {
	var decodedDocument infoDocument
	if decodeError := xml.Unmarshal(document, &decodedDocument); decodeError != nil {
		return WorkingCopyInfo{}, fmt.Errorf(infoDecodingFailureTemplateConstant, ErrInfoDecoding, decodeError)
	}
	if len(decodedDocument.Entries) == 0 {
		return WorkingCopyInfo{}, fmt.Errorf(infoMissingEntryFailureTemplateConstant, ErrInfoDecoding, missingEntryMessageConstant)
	}

	entry := decodedDocument.Entries[0]
	return WorkingCopyInfo{
		Path:                entry.Path,
		Kind:                entry.Kind,
		Revision:            entry.Revision,
		URL:                 strings.TrimSpace(entry.URL),
		RelativeURL:         decodeRelativeURL(strings.TrimSpace(entry.RelativeURL)),
		RepositoryRoot:      strings.TrimSpace(entry.Repository.Root),
		RepositoryUUID:      strings.TrimSpace(entry.Repository.UUID),
		WorkingCopyRootPath: strings.TrimSpace(entry.WorkingCopy.RootPath),
	}, nil
}

func decodeRelativeURL(relativeURL string) string {
	segments := strings.Split(relativeURL, relativeURLSeparatorConstant)
	for segmentIndex, segment := range segments {
		if decodedSegment, unescapeError := url.PathUnescape(segment); unescapeError == nil {
			segments[segmentIndex] = decodedSegment
		}
	}
	return strings.Join(segments, relativeURLSeparatorConstant)
}
