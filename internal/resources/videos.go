package resources

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-tutors/pkg/interfaces"
)

// DefaultVideoService tags ids listed without an explicit provider.
const DefaultVideoService = "youtube"

// providerMarkers select lines written as provider=id.
var providerMarkers = []string{"heanet", "vimp"}

// ErrMalformedVideoEntry marks a provider line without an "=" separator.
var ErrMalformedVideoEntry = errors.New("resources: malformed video entry")

// ParseVideoIdentifiers reads one video entry per line. Lines naming a known
// provider are split on the first "=" into service and id; any other non-blank
// line is a bare id for DefaultVideoService. The primary id is the id of the
// last entry. Malformed provider lines are skipped and reported in the
// returned error, which never invalidates the returned identifiers.
func ParseVideoIdentifiers(text string) (interfaces.VideoIdentifiers, error) {
	videos := interfaces.VideoIdentifiers{VideoIDs: []interfaces.VideoIdentifier{}}
	var errs []error

	for n, line := range strings.Split(text, "\n") {
		line = strings.ReplaceAll(line, "\r", "")
		if strings.TrimSpace(line) == "" {
			continue
		}

		if hasProviderMarker(line) {
			service, id, ok := strings.Cut(line, "=")
			if !ok {
				errs = append(errs, fmt.Errorf("%w: line %d %q", ErrMalformedVideoEntry, n+1, line))
				continue
			}
			videos.VideoIDs = append(videos.VideoIDs, interfaces.VideoIdentifier{
				Service: strings.TrimSpace(service),
				ID:      strings.TrimSpace(id),
			})
			continue
		}

		id := strings.TrimSpace(line)
		videos.VideoID = id
		videos.VideoIDs = append(videos.VideoIDs, interfaces.VideoIdentifier{
			Service: DefaultVideoService,
			ID:      id,
		})
	}

	if n := len(videos.VideoIDs); n > 0 {
		videos.VideoID = videos.VideoIDs[n-1].ID
	}
	return videos, errors.Join(errs...)
}

func hasProviderMarker(line string) bool {
	for _, marker := range providerMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
