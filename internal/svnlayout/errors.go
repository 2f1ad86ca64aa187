package svnlayout

import (
	"errors"
	"fmt"
)

const (
	malformedURLMessageConstant               = "malformed repository url"
	unexpectedRepositoryLayoutMessageConstant = "unexpected repository layout"
	branchNameNotFoundMessageConstant         = "branch name not found"
	alignmentMessageConstant                  = "relative url does not align with working directory"
	nonTextSegmentMessageConstant             = "path segment is not valid text"
	resolutionErrorTemplateConstant           = "%s: %q"
	resolutionErrorWithCauseTemplateConstant  = "%s: %q: %s"
	unknownResolutionFailureMessageConstant   = "resolution failed"
)

var (
	// ErrMalformedURL indicates the repository URL could not be parsed.
	ErrMalformedURL = errors.New(malformedURLMessageConstant)
	// ErrUnexpectedRepositoryLayout indicates no trunk, branches, or tags folder exists in the URL path.
	ErrUnexpectedRepositoryLayout = errors.New(unexpectedRepositoryLayoutMessageConstant)
	// ErrBranchNameNotFound indicates every folder following branches or tags was blacklisted.
	ErrBranchNameNotFound = errors.New(branchNameNotFoundMessageConstant)
	// ErrAlignment indicates the relative URL could not be lined up against the working directory.
	ErrAlignment = errors.New(alignmentMessageConstant)
	// ErrNonTextSegment indicates a path segment is not valid UTF-8.
	ErrNonTextSegment = errors.New(nonTextSegmentMessageConstant)
)

// ResolutionError reports a classified resolver failure together with the offending input.
type ResolutionError struct {
	Kind    error
	Subject string
	Cause   error
}

// Error describes the failure.
func (resolutionError ResolutionError) Error() string {
	kindMessage := unknownResolutionFailureMessageConstant
	if resolutionError.Kind != nil {
		kindMessage = resolutionError.Kind.Error()
	}
	if resolutionError.Cause != nil {
		return fmt.Sprintf(resolutionErrorWithCauseTemplateConstant, kindMessage, resolutionError.Subject, resolutionError.Cause)
	}
	return fmt.Sprintf(resolutionErrorTemplateConstant, kindMessage, resolutionError.Subject)
}

// Unwrap exposes the error kind and the underlying cause to errors.Is and errors.As.
func (resolutionError ResolutionError) Unwrap() []error {
	unwrapped := make([]error, 0, 2)
	if resolutionError.Kind != nil {
		unwrapped = append(unwrapped, resolutionError.Kind)
	}
	if resolutionError.Cause != nil {
		unwrapped = append(unwrapped, resolutionError.Cause)
	}
	return unwrapped
}

func newResolutionError(kind error, subject string) ResolutionError {
	return ResolutionError{Kind: kind, Subject: subject}
}
