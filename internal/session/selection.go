package session

import "fmt"

// editSelection runs fn against the selection. Editing after an extraction
// returns the session to Ready for the next one.
func (s *Session) editSelection(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady && s.state != StateCompleted {
		return fmt.Errorf("%w: cannot change selection while %s", ErrInvalidState, s.state)
	}
	if s.file.selection == nil {
		return fmt.Errorf("%w: no manifest loaded", ErrInvalidState)
	}
	if err := fn(); err != nil {
		return err
	}
	s.state = StateReady
	return nil
}

// Toggle flips the selection of one track and reports its new state.
func (s *Session) Toggle(id int) (bool, error) {
	var selected bool
	err := s.editSelection(func() error {
		var err error
		selected, err = s.file.selection.Toggle(id)
		return err
	})
	return selected, err
}

// Select adds tracks to the selection.
func (s *Session) Select(ids ...int) error {
	return s.editSelection(func() error { return s.file.selection.Select(ids...) })
}

// Deselect removes tracks from the selection.
func (s *Session) Deselect(ids ...int) error {
	return s.editSelection(func() error {
		s.file.selection.Deselect(ids...)
		return nil
	})
}

// SelectAll selects every track of the manifest.
func (s *Session) SelectAll() error {
	return s.editSelection(func() error {
		s.file.selection.SelectAll()
		return nil
	})
}

// ClearSelection empties the selection.
func (s *Session) ClearSelection() error {
	return s.editSelection(func() error {
		s.file.selection.Clear()
		return nil
	})
}

// Selected returns the selected ids in ascending order.
func (s *Session) Selected() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file.selection == nil {
		return nil
	}
	return s.file.selection.IDs()
}
