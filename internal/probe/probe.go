package probe

import (
	"context"
	"strings"

	"github.com/hamed0406/pingstatus/internal/domain"
)

// DefaultMarker is the report substring meaning all 4 echo replies came back.
const DefaultMarker = "Received = 4"

// Probe performs one external reachability check and returns the textual report.
// A non-nil error may come with partial report text.
type Probe interface {
	Run(ctx context.Context, host string) (string, error)
}

// Classify reports Up iff report contains any of markers. No markers means DefaultMarker.
func Classify(report string, markers []string) domain.State {
	if len(markers) == 0 {
		markers = []string{DefaultMarker}
	}
	for _, m := range markers {
		if m != "" && strings.Contains(report, m) {
			return domain.Up
		}
	}
	return domain.Down
}
