package capability

import (
	"errors"
	"math"
	"testing"
)

func TestNew_Deduplicates(t *testing.T) {
	s := New("nlp", "code", "nlp", " ", "")
	if s.Len() != 2 {
		t.Fatalf("expected 2 labels, got %d (%v)", s.Len(), s.Labels())
	}
	if !s.Has("nlp") || !s.Has("code") {
		t.Errorf("unexpected labels: %v", s.Labels())
	}
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want float64
	}{
		{"identical", New("nlp", "code"), New("code", "nlp"), 1},
		{"both empty", New(), New(), 0},
		{"one empty", New("nlp"), New(), 0},
		{"disjoint", New("nlp"), New("vision"), 0},
		{"partial", New("nlp", "reasoning", "code"), New("nlp", "summarization"), 0.25},
		{"subset", New("nlp", "code", "reasoning"), New("nlp", "code"), 2.0 / 3.0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Jaccard(tc.a, tc.b)
			if math.IsNaN(got) {
				t.Fatal("jaccard must never be NaN")
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("Jaccard = %v, want %v", got, tc.want)
			}
			if sym := Jaccard(tc.b, tc.a); math.Abs(sym-got) > 1e-9 {
				t.Errorf("Jaccard not symmetric: %v vs %v", got, sym)
			}
		})
	}
}

func TestFromJSON(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		want      []string
		malformed bool
	}{
		{"array of strings", `["nlp","code","nlp"]`, []string{"code", "nlp"}, false},
		{"empty column", ``, []string{}, false},
		{"json null", `null`, []string{}, false},
		{"scalars stringified", `["nlp", 4, true]`, []string{"4", "nlp", "true"}, false},
		{"object", `{"nlp": true}`, []string{}, true},
		{"string", `"nlp"`, []string{}, true},
		{"broken json", `["nlp"`, []string{}, true},
		{"null entry skipped", `["nlp", null]`, []string{"nlp"}, true},
		{"nested skipped", `["nlp", {"x": 1}, ["y"]]`, []string{"nlp"}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s, err := FromJSON([]byte(tc.raw))
			if tc.malformed {
				if !errors.Is(err, ErrMalformed) {
					t.Fatalf("expected ErrMalformed, got %v", err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := s.Labels()
			if len(got) != len(tc.want) {
				t.Fatalf("labels = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("labels[%d] = %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestMarshalJSON_Sorted(t *testing.T) {
	b, err := New("vision", "nlp").MarshalJSON()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `["nlp","vision"]` {
		t.Errorf("got %s", b)
	}
}
