// Package capability models the capability labels attached to a catalog model.
package capability

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrMalformed signals a raw capability value that is not a list of scalar labels.
var ErrMalformed = errors.New("malformed capabilities")

// Set is a deduplicated, order-irrelevant collection of capability labels.
type Set struct {
	labels map[string]struct{}
}

// New builds a set from labels. Blank labels are dropped.
func New(labels ...string) Set {
	s := Set{labels: make(map[string]struct{}, len(labels))}
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			s.labels[l] = struct{}{}
		}
	}
	return s
}

// FromJSON coerces a raw JSON capability column into a set.
// Anything other than an array yields the empty set and ErrMalformed.
// Numbers and booleans in the array are stringified. Null entries and nested
// values are skipped and reported, so null never becomes the label "null".
// The remaining labels are still returned.
func FromJSON(raw []byte) (Set, error) {
	if len(raw) == 0 {
		return New(), nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return New(), fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	switch items := v.(type) {
	case nil:
		return New(), nil
	case []any:
		labels := make([]string, 0, len(items))
		skipped := 0
		for _, item := range items {
			switch x := item.(type) {
			case string:
				labels = append(labels, x)
			case float64:
				labels = append(labels, strconv.FormatFloat(x, 'f', -1, 64))
			case bool:
				labels = append(labels, strconv.FormatBool(x))
			default:
				skipped++
			}
		}
		if skipped > 0 {
			return New(labels...), fmt.Errorf("%w: %d non-scalar entries skipped", ErrMalformed, skipped)
		}
		return New(labels...), nil
	default:
		return New(), fmt.Errorf("%w: expected array, got %T", ErrMalformed, v)
	}
}

// Len returns the number of labels.
func (s Set) Len() int { return len(s.labels) }

// Has reports whether the label is present.
func (s Set) Has(label string) bool {
	_, ok := s.labels[label]
	return ok
}

// Labels returns the labels sorted ascending.
func (s Set) Labels() []string {
	out := make([]string, 0, len(s.labels))
	for l := range s.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Labels())
}

// Jaccard returns |a ∩ b| / |a ∪ b|, and 0 when both sets are empty.
func Jaccard(a, b Set) float64 {
	small, large := a, b
	if small.Len() > large.Len() {
		small, large = large, small
	}

	inter := 0
	for l := range small.labels {
		if large.Has(l) {
			inter++
		}
	}

	union := a.Len() + b.Len() - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
