package shot

// SessionTracker follows whether a round is active. A round starts on the
// first present frame and ends on the first absent one.
//
// AttemptsThisRound is reset at both edges and never incremented here; the
// motion classifier still reads it, so an external counter can drive it later.
type SessionTracker struct {
	InRound           bool
	AttemptsThisRound int
}

// OnFrame records frame presence and reports whether the round state flipped.
func (s *SessionTracker) OnFrame(present bool) (changed bool) {
	switch {
	case present && !s.InRound:
		s.InRound = true
		s.AttemptsThisRound = 0
		return true
	case !present && s.InRound:
		s.InRound = false
		s.AttemptsThisRound = 0
		return true
	}
	return false
}
