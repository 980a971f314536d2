package domain

// Snapshot captures the mutable half of a machine (position + history) so a
// session can be persisted and the machine rebuilt later. The transition
// table and accepting set are not part of the snapshot; they are recovered
// from the named pattern.
type Snapshot struct {
	// Pattern is the name of the pattern definition this machine runs.
	Pattern string `json:"pattern,omitempty"`

	// Position is the current location.
	Position Position `json:"position"`

	// History holds the prior positions, oldest first. One entry per step
	// taken since the last reset.
	History []Position `json:"history"`
}

// Clone returns a deep copy so callers can't mutate stored history by
// pointer.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	next := *s
	next.History = make([]Position, len(s.History))
	copy(next.History, s.History)
	return &next
}
