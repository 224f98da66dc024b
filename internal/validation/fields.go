package validation

import (
	"slices"
	"strings"

	"github.com/deppfellow/product-api/internal/errs"
)

// ParseFieldSelection parses a comma separated `fields` query parameter.
//
// An empty parameter selects every field and returns nil. Names are
// trimmed, empty entries and duplicates are dropped, and the order of
// first appearance is kept. Any name not in known fails the whole
// selection with an InvalidFieldsError.
func ParseFieldSelection(param string, known []string) ([]string, error) {
	if strings.TrimSpace(param) == "" {
		return nil, nil
	}

	var selected, unknown []string
	for _, raw := range strings.Split(param, ",") {
		name := strings.TrimSpace(raw)
		if name == "" || slices.Contains(selected, name) || slices.Contains(unknown, name) {
			continue
		}
		if !slices.Contains(known, name) {
			unknown = append(unknown, name)
			continue
		}
		selected = append(selected, name)
	}

	if len(unknown) > 0 {
		return nil, errs.NewInvalidFieldsError(unknown)
	}

	return selected, nil
}
