package collision

import "errors"

// ErrOpponentPresent is returned when an opponent is injected twice.
var ErrOpponentPresent = errors.New("collision: opponent already injected")

// ObstacleSet holds the immutable static obstacles of a level plus at most one
// injected opponent body.
//
// The opponent is frame-scoped: it is injected right before one mover's pass
// and removed right after, before the other mover's pass begins. Use
// WithOpponent to get that discipline for free.
type ObstacleSet struct {
	candidates  []Candidate
	static      int
	hasOpponent bool
}

// NewObstacleSet builds a set from level tiles. Tile i is tagged TileRef(i).
func NewObstacleSet(tiles []Rect) *ObstacleSet {
	cands := make([]Candidate, len(tiles), len(tiles)+1)
	for i, r := range tiles {
		cands[i] = Candidate{Rect: r, Ref: TileRef(i)}
	}
	return &ObstacleSet{candidates: cands, static: len(tiles)}
}

// Len returns the number of static obstacles.
func (s *ObstacleSet) Len() int {
	return s.static
}

// Tile returns the static obstacle at index i.
func (s *ObstacleSet) Tile(i int) Rect {
	return s.candidates[i].Rect
}

// HasOpponent reports whether an opponent is currently injected.
func (s *ObstacleSet) HasOpponent() bool {
	return s.hasOpponent
}

// Candidates returns the current candidate list. The slice aliases the set and
// must not be retained past the pass it was obtained for.
func (s *ObstacleSet) Candidates() []Candidate {
	return s.candidates
}

// PushOpponent appends the opposing body, tagged OpponentRef.
func (s *ObstacleSet) PushOpponent(r Rect) error {
	if s.hasOpponent {
		return ErrOpponentPresent
	}
	s.candidates = append(s.candidates, Candidate{Rect: r, Ref: OpponentRef})
	s.hasOpponent = true
	return nil
}

// PopOpponent removes the injected opponent. It is a no-op when none is present.
func (s *ObstacleSet) PopOpponent() {
	if !s.hasOpponent {
		return
	}
	s.candidates = s.candidates[:s.static]
	s.hasOpponent = false
}

// WithOpponent injects r, runs fn with the candidates and removes r again,
// even if fn panics.
func (s *ObstacleSet) WithOpponent(r Rect, fn func(candidates []Candidate)) error {
	if err := s.PushOpponent(r); err != nil {
		return err
	}
	defer s.PopOpponent()
	fn(s.candidates)
	return nil
}
