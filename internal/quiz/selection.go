// Package quiz holds the answer set of an attempt and its evaluation.
package quiz

import "sort"

// Selection is the unordered set of option labels picked during one attempt.
// The zero value is an empty selection ready to use.
type Selection struct {
	labels map[string]struct{}
}

// NewSelection builds a selection from labels; duplicates collapse.
func NewSelection(labels ...string) Selection {
	s := Selection{}
	for _, l := range labels {
		s.add(l)
	}
	return s
}

// Toggle adds label when absent and removes it when present.
func (s *Selection) Toggle(label string) {
	if s.Has(label) {
		delete(s.labels, label)
		return
	}
	s.add(label)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.labels = nil
}

// Has reports whether label is selected.
func (s Selection) Has(label string) bool {
	_, ok := s.labels[label]
	return ok
}

// Len returns the number of selected labels.
func (s Selection) Len() int {
	return len(s.labels)
}

// Labels returns the selected labels in sorted order.
func (s Selection) Labels() []string {
	out := make([]string, 0, len(s.labels))
	for l := range s.labels {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Clone returns an independent copy.
func (s Selection) Clone() Selection {
	return NewSelection(s.Labels()...)
}

func (s *Selection) add(label string) {
	if s.labels == nil {
		s.labels = make(map[string]struct{})
	}
	s.labels[label] = struct{}{}
}
