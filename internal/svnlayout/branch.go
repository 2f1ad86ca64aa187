package svnlayout

import (
	"net/url"
	"strings"
)

const (
	trunkFolderNameConstant    = "trunk"
	branchesFolderNameConstant = "branches"
	tagsFolderNameConstant     = "tags"
)

// BranchResolver derives branch names from repository URLs.
type BranchResolver struct {
	blacklist map[string]struct{}
}

// NewBranchResolver constructs a resolver that skips the provided folder names when they follow branches or tags.
// Blacklist entries match exactly and case-sensitively.
func NewBranchResolver(blacklist []string) BranchResolver {
	blacklistSet := make(map[string]struct{}, len(blacklist))
	for _, blacklistedFolder := range blacklist {
		blacklistSet[blacklistedFolder] = struct{}{}
	}
	return BranchResolver{blacklist: blacklistSet}
}

// Resolve returns the branch name encoded in the repository URL path.
//
// A trunk folder is itself the branch name. The first non-blacklisted folder after a branches or tags folder
// is the branch name. Folder keywords compare case-insensitively; the returned name keeps its casing.
func (resolver BranchResolver) Resolve(repositoryURL string) (string, error) {
	parsedURL, parseError := url.Parse(repositoryURL)
	if parseError != nil {
		return "", ResolutionError{Kind: ErrMalformedURL, Subject: repositoryURL, Cause: parseError}
	}
	if !parsedURL.IsAbs() {
		return "", newResolutionError(ErrMalformedURL, repositoryURL)
	}

	segments, decodeError := decodedPathSegments(parsedURL)
	if decodeError != nil {
		return "", ResolutionError{Kind: ErrMalformedURL, Subject: repositoryURL, Cause: decodeError}
	}
	for segmentIndex, segment := range segments {
		if strings.EqualFold(segment, trunkFolderNameConstant) {
			return segment, nil
		}

		if strings.EqualFold(segment, branchesFolderNameConstant) || strings.EqualFold(segment, tagsFolderNameConstant) {
			return resolver.firstAllowedFolder(segments[segmentIndex+1:], repositoryURL)
		}
	}

	return "", newResolutionError(ErrUnexpectedRepositoryLayout, repositoryURL)
}

// decodedPathSegments splits the escaped path before unescaping so an encoded "/" stays inside its segment.
func decodedPathSegments(parsedURL *url.URL) ([]string, error) {
	escapedSegments := SplitPathSegments(parsedURL.EscapedPath())
	segments := make([]string, 0, len(escapedSegments))
	for _, escapedSegment := range escapedSegments {
		segment, unescapeError := url.PathUnescape(escapedSegment)
		if unescapeError != nil {
			return nil, unescapeError
		}
		segments = append(segments, segment)
	}
	return segments, nil
}

// firstAllowedFolder consumes the remaining segments; failure here never returns to the outer scan.
func (resolver BranchResolver) firstAllowedFolder(remainingSegments []string, repositoryURL string) (string, error) {
	for _, segment := range remainingSegments {
		if textError := requireTextSegment(segment); textError != nil {
			return "", textError
		}
		if resolver.isBlacklisted(segment) {
			continue
		}
		return segment, nil
	}
	return "", newResolutionError(ErrBranchNameNotFound, repositoryURL)
}

func (resolver BranchResolver) isBlacklisted(segment string) bool {
	_, blacklisted := resolver.blacklist[segment]
	return blacklisted
}
