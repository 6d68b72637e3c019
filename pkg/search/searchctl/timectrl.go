package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/seekerror/logw"
)

// TimeControl represents the time budget for one side's move, analogous to a game clock.
type TimeControl struct {
	Remaining time.Duration
	Moves     int // plies left before the next time increment; 0 == rest of the game
}

// Limits returns a soft and a hard limit for the current move. Iterative starts no new
// depth once a single completed depth took longer than the soft limit; the hard limit,
// counted from launch, halts the search outright even mid-depth.
func (t TimeControl) Limits() (soft, hard time.Duration) {
	// We assume 40 moves to finish the analysis, if nothing else is known.
	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft = t.Remaining / (2 * moves)
	hard = 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1fs", t.Remaining.Seconds())
	}
	return fmt.Sprintf("%.1fs[moves=%v]", t.Remaining.Seconds(), t.Moves)
}

// EnforceTimeControl arms h's hard deadline, if tc is set, and returns the soft limit.
func EnforceTimeControl(ctx context.Context, h Handle, tc *TimeControl) (time.Duration, bool) {
	if tc == nil {
		return 0, false
	}
	soft, hard := tc.Limits()
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "Time control limits for %v: [%v; %v]", *tc, soft, hard)
	return soft, true
}
