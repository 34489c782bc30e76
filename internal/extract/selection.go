package extract

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownTrack reports a selection change for an id outside the manifest.
var ErrUnknownTrack = errors.New("track not in manifest")

// Selection is the set of track ids chosen for extraction. It only ever
// contains ids of the manifest it was created for.
type Selection struct {
	known  map[int]struct{}
	chosen map[int]struct{}
}

// NewSelection returns an empty selection over the given manifest ids.
func NewSelection(ids []int) *Selection {
	s := &Selection{
		known:  make(map[int]struct{}, len(ids)),
		chosen: make(map[int]struct{}),
	}
	for _, id := range ids {
		s.known[id] = struct{}{}
	}
	return s
}

func (s *Selection) check(id int) error {
	if _, ok := s.known[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownTrack, id)
	}
	return nil
}

// Toggle flips id and reports whether it is selected afterwards.
func (s *Selection) Toggle(id int) (bool, error) {
	if err := s.check(id); err != nil {
		return false, err
	}
	if _, ok := s.chosen[id]; ok {
		delete(s.chosen, id)
		return false, nil
	}
	s.chosen[id] = struct{}{}
	return true, nil
}

// Select adds ids. Nothing changes when any id is unknown.
func (s *Selection) Select(ids ...int) error {
	for _, id := range ids {
		if err := s.check(id); err != nil {
			return err
		}
	}
	for _, id := range ids {
		s.chosen[id] = struct{}{}
	}
	return nil
}

// Deselect removes ids; unknown or unselected ids are ignored.
func (s *Selection) Deselect(ids ...int) {
	for _, id := range ids {
		delete(s.chosen, id)
	}
}

// SelectAll selects every manifest id.
func (s *Selection) SelectAll() {
	for id := range s.known {
		s.chosen[id] = struct{}{}
	}
}

// Clear empties the selection.
func (s *Selection) Clear() {
	clear(s.chosen)
}

// Contains reports whether id is selected.
func (s *Selection) Contains(id int) bool {
	_, ok := s.chosen[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.chosen)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int {
	ids := make([]int, 0, len(s.chosen))
	for id := range s.chosen {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
