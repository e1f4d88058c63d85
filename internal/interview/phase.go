package interview

// Phase is the interview state selected for a given turn.
type Phase string

const (
	// PhaseOpening acknowledges the opening statement and asks what happened.
	PhaseOpening Phase = "opening"
	// PhaseDeepen asks for elaboration on the prior exchange.
	PhaseDeepen Phase = "deepen"
	// PhaseEmotionProbe asks indirectly about impressions, never feelings directly.
	PhaseEmotionProbe Phase = "emotion_probe"
	// PhaseBroaden asks whether there is anything else to discuss.
	PhaseBroaden Phase = "broaden"
	// PhaseWrapUp thanks the user and proposes assembling the diary.
	PhaseWrapUp Phase = "wrap_up"
)

// wrapUpCycle is the cycle at which the broaden slot escalates to wrap-up.
const wrapUpCycle = 3

// QuestionType returns the question slot within the current cycle, in {1,2,3}.
func QuestionType(turn int) int {
	return (turn-1)%3 + 1
}

// CycleCount returns the 1-based cycle index for a turn. A cycle is a
// group of three turns (detail, emotion, broaden).
func CycleCount(turn int) int {
	return (turn-1)/3 + 1
}

// PhaseFor selects the interview phase for a turn. Turn 1 is always the
// opening; afterwards the phase cycles deepen, probe, broaden, with the
// broaden slot turning into wrap-up from the third cycle on. Wrap-up is a
// terminal conversational state but later turns still get answered.
func PhaseFor(turn int) Phase {
	if turn <= 1 {
		return PhaseOpening
	}
	switch QuestionType(turn) {
	case 1:
		return PhaseDeepen
	case 2:
		return PhaseEmotionProbe
	default:
		if CycleCount(turn) >= wrapUpCycle {
			return PhaseWrapUp
		}
		return PhaseBroaden
	}
}
