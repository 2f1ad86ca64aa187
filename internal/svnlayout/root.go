package svnlayout

const (
	// RootMarker is the relative URL segment denoting the repository root.
	RootMarker = "^"
)

// RootResolver locates the working copy root folder from a root-anchored relative URL.
type RootResolver struct{}

// NewRootResolver constructs a RootResolver.
func NewRootResolver() RootResolver {
	return RootResolver{}
}

// Resolve walks the relative URL and the current path from their innermost segments outward.
// Segments must match pairwise until the root marker is reached; the current path segment aligned
// with the marker is returned.
func (resolver RootResolver) Resolve(relativeMarkerPath string, currentPathSegments []string) (string, error) {
	relativeSegments := SplitPathSegments(relativeMarkerPath)

	relativeIndex := len(relativeSegments) - 1
	currentIndex := len(currentPathSegments) - 1
	for {
		if relativeIndex < 0 || currentIndex < 0 {
			return "", newResolutionError(ErrAlignment, relativeMarkerPath)
		}

		relativeSegment := relativeSegments[relativeIndex]
		currentSegment := currentPathSegments[currentIndex]

		if relativeSegment == RootMarker {
			if textError := requireTextSegment(currentSegment); textError != nil {
				return "", textError
			}
			return currentSegment, nil
		}

		if relativeSegment != currentSegment {
			return "", newResolutionError(ErrAlignment, relativeMarkerPath)
		}

		relativeIndex--
		currentIndex--
	}
}
