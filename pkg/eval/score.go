// Package eval contains position evaluation: the feed-forward evaluator, its feature
// gatherer, and the Evaluation scalar the search kernel optimizes over.
package eval

import "fmt"

// Evaluation is a signed position score from the perspective of the side to move,
// expressed in the same fixed-point units the neural evaluator is scaled to. Scores with
// |v| > WinThreshold are terminal: a distance-to-mate has been folded into them, so that
// shorter wins and longer losses are preferred by the search.
type Evaluation int32

const (
	Zero Evaluation = 0
	Win  Evaluation = 100000
	Lose Evaluation = -Win

	// WinThreshold is the |v| cutoff above which a score is known to be terminal rather
	// than a model output: tanh stays within (-1, 1), so |50,000 * tanh(x)| < 50,000 < 99,000
	// for any achievable model output.
	WinThreshold Evaluation = 99000

	Max Evaluation = 1<<31 - 2
	Min Evaluation = -1<<31 + 2

	// EvalScale is the fixed-point multiplier applied to the network's [-1,1] tanh output.
	EvalScale float32 = 50000
)

func (e Evaluation) IsTerminal() bool {
	v := e
	if v < 0 {
		v = -v
	}
	return v > WinThreshold
}

// Crop clamps e into [Min, Max].
func Crop(e Evaluation) Evaluation {
	switch {
	case e > Max:
		return Max
	case e < Min:
		return Min
	default:
		return e
	}
}

// Negate flips the evaluation to the opponent's perspective, preserving mate-distance
// encoding -- the negamax sign convention the search kernel relies on.
func (e Evaluation) Negate() Evaluation {
	return -e
}

// AddPly increments the mate-distance encoding of a terminal score by one ply, as a
// terminal result is propagated up one level of the search tree. Non-terminal scores are
// unaffected.
func (e Evaluation) AddPly() Evaluation {
	switch {
	case e > WinThreshold:
		return e - 1
	case e < -WinThreshold:
		return e + 1
	default:
		return e
	}
}

func Max2(a, b Evaluation) Evaluation {
	if a < b {
		return b
	}
	return a
}

func Min2(a, b Evaluation) Evaluation {
	if a < b {
		return a
	}
	return b
}

func (e Evaluation) String() string {
	return fmt.Sprintf("%d", int32(e))
}
