package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/herohde/tak/pkg/eval"
	"github.com/herohde/tak/pkg/tak"
	"go.uber.org/atomic"
)

// nullMoveReduction is the depth cut applied to the verification search after a null
// move: if passing the turn still produces a cutoff at reduced depth, the real move
// almost certainly would too, so the subtree is skipped outright.
const nullMoveReduction = 2

// lateMoveReductionStart is how many moves into the ordered stream a node searches at
// full depth before late move reduction starts trimming depth off the presumably weaker
// remaining candidates.
const lateMoveReductionStart = 4

// Context carries the state shared across one root search's recursive calls: its
// transposition table, killer move history, running statistics, and the worker pool used
// to parallelize young siblings below the root.
type Context struct {
	TT         TranspositionTable
	Killers    *KillerTable
	Stats      *Statistics
	Dispatch   *Dispatcher
	SplitDepth int // remaining depth at/above which a node's siblings may be parallelized
}

// AlphaBeta implements principal variation search: null-window re-searches after the
// first child, iterative-deepening-friendly move ordering via PlyStream, null-move
// pruning, late move reductions, and transposition-table probing/storing at every node.
// Nodes at or above sctx.SplitDepth parallelize their non-eldest children across
// sctx.Dispatch, per Young Brothers Wait.
type AlphaBeta struct {
	Eval eval.Evaluator
}

func (a AlphaBeta) Search(ctx context.Context, sctx *Context, s *tak.State, depth int) (Result, error) {
	if d := sctx.Dispatch; d != nil {
		d.ResetKillersFrom(sctx.Killers)
		defer d.MergeKillersInto(sctx.Killers)
	}

	run := &runAlphaBeta{eval: a.Eval, sctx: sctx}
	score, pv := run.search(ctx, s, depth, 0, eval.Lose, eval.Win, sctx.Killers)
	if ctx.Err() != nil {
		return Result{}, ErrHalted
	}
	return Result{Score: score, PV: pv, Nodes: run.nodes.Load()}, nil
}

type runAlphaBeta struct {
	eval  eval.Evaluator
	sctx  *Context
	nodes atomic.Uint64
}

// search returns the score of s, from the perspective of s.ToMove, searched to the given
// remaining depth with ply-from-root ply and window [alpha, beta]. killers is the table
// this call's thread of execution reads and stores cutoffs into: the coordinator passes
// its own root-derived table through its sequential chain, while a job picked up by a
// dispatcher worker receives that worker's own table instead, regardless of which parent
// call dispatched the split.
func (m *runAlphaBeta) search(ctx context.Context, s *tak.State, depth, ply int, alpha, beta eval.Evaluation, killers *KillerTable) (eval.Evaluation, []tak.Ply) {
	if ctx.Err() != nil {
		return eval.Zero, nil
	}
	if s.Resolution.IsOver() || depth <= 0 {
		m.nodes.Inc()
		m.sctx.Stats.Nodes.Inc()
		return m.eval.Evaluate(ctx, s), nil
	}

	var ttPly *tak.Ply
	if tt := m.sctx.TT; tt != nil {
		if entry, ok := tt.Read(s.Hash); ok {
			m.sctx.Stats.TTHits.Inc()
			if entry.HasPly {
				p := entry.Ply
				ttPly = &p
			}
			if entry.Depth >= depth {
				switch entry.Bound {
				case ExactBound:
					m.sctx.Stats.TTCutoffs.Inc()
					return entry.Score, nil
				case LowerBound:
					if entry.Score > alpha {
						alpha = entry.Score
					}
				case UpperBound:
					if entry.Score < beta {
						beta = entry.Score
					}
				}
				if alpha >= beta {
					m.sctx.Stats.TTCutoffs.Inc()
					return entry.Score, nil
				}
			}
		}
	}

	m.nodes.Inc()
	m.sctx.Stats.Nodes.Inc()

	if score, ok := m.tryNullMove(ctx, s, depth, ply, beta, killers); ok {
		return score, nil
	}

	stream := NewPlyStream(s, ttPly, killers.Moves(ply))

	var best = eval.Lose
	var pv []tak.Ply
	bound := UpperBound
	moveIndex := 0

	first, firstNext, ok := m.firstChild(s, stream)
	if ok {
		score, rem := m.search(ctx, firstNext, depth-1, ply+1, beta.Negate(), alpha.Negate(), killers)
		score = score.AddPly().Negate()

		best, pv = score, append([]tak.Ply{first}, rem...)
		if best > alpha {
			alpha = best
			bound = ExactBound
		}
		moveIndex = 1

		if alpha >= beta {
			// The eldest child alone forced a cutoff: siblings were never searched, so this
			// is a fail-high lower bound, not an exact score -- true in every null-window
			// scout node, where beta = alpha+1 makes this the common case, not the rare one.
			bound = LowerBound
			killers.Store(ply, first)
			m.sctx.Stats.BetaCutoffs.Inc()
		}
	}

	if alpha < beta {
		cutoff := m.searchRest(ctx, s, stream, depth, ply, &alpha, &beta, &best, &pv, &bound, &moveIndex, killers)
		if cutoff {
			bound = LowerBound
		}
	}

	if moveIndex == 0 {
		panic(fmt.Sprintf("search: no legal plies for ongoing position %s", s.Resolution))
	}

	if tt := m.sctx.TT; tt != nil {
		var storePly tak.Ply
		if len(pv) > 0 {
			storePly = pv[0]
		}
		tt.Write(s.Hash, Entry{Bound: bound, Depth: depth, Score: best, Ply: storePly, HasPly: len(pv) > 0})
	}
	return best, pv
}

// firstChild pulls plies from stream until one executes successfully, searching it is the
// caller's job; firstChild only resolves which ply that is and its resulting state.
func (m *runAlphaBeta) firstChild(s *tak.State, stream *PlyStream) (tak.Ply, *tak.State, bool) {
	for {
		p, fallibility, ok := stream.Next()
		if !ok {
			return tak.Ply{}, nil, false
		}
		next, err := s.Execute(p)
		if err != nil {
			m.rejectFallible(p, fallibility, err)
			continue
		}
		return p, next, true
	}
}

// searchRest searches every remaining candidate in stream sequentially against *alpha,
// updating *best/*pv/*bound as each beats the running alpha, and parallelizing the batch
// across the dispatcher once depth justifies the overhead. Returns whether a cutoff
// occurred.
func (m *runAlphaBeta) searchRest(ctx context.Context, s *tak.State, stream *PlyStream, depth, ply int, alpha, beta, best *eval.Evaluation, pv *[]tak.Ply, bound *Bound, moveIndex *int, killers *KillerTable) bool {
	dispatch := m.sctx.Dispatch
	if dispatch != nil && depth >= m.sctx.SplitDepth {
		return m.searchRestParallel(ctx, s, stream, depth, ply, alpha, beta, best, pv, bound, moveIndex, killers, dispatch)
	}
	return m.searchRestSequential(ctx, s, stream, depth, ply, alpha, beta, best, pv, bound, moveIndex, killers)
}

func (m *runAlphaBeta) searchRestSequential(ctx context.Context, s *tak.State, stream *PlyStream, depth, ply int, alpha, beta, best *eval.Evaluation, pv *[]tak.Ply, bound *Bound, moveIndex *int, killers *KillerTable) bool {
	for {
		p, fallibility, ok := stream.Next()
		if !ok {
			return false
		}
		next, err := s.Execute(p)
		if err != nil {
			m.rejectFallible(p, fallibility, err)
			continue
		}

		score, rem := m.searchChild(ctx, next, depth, ply, *moveIndex, *alpha, *beta, killers)
		*moveIndex++

		if score > *best {
			*best, *pv = score, append([]tak.Ply{p}, rem...)
		}
		if *best > *alpha {
			*alpha = *best
			*bound = ExactBound
		}
		if *alpha >= *beta {
			killers.Store(ply, p)
			m.sctx.Stats.BetaCutoffs.Inc()
			return true
		}
	}
}

// searchRestParallel materializes every remaining candidate up front (validating Fallible
// ones) and hands them to the dispatcher, consuming results as they stream in. alpha is
// shared across in-flight workers via sharedBound so later-dispatched jobs benefit from
// tighter bounds established by earlier ones, even though already-running jobs keep
// whatever window they started with. Each job runs against whichever worker picks it up,
// not killers: the dispatcher hands every job its own worker's table, and killers here is
// only used for this node's own cutoff bookkeeping.
func (m *runAlphaBeta) searchRestParallel(ctx context.Context, s *tak.State, stream *PlyStream, depth, ply int, alpha, beta, best *eval.Evaluation, pv *[]tak.Ply, bound *Bound, moveIndex *int, killers *KillerTable, dispatch *Dispatcher) bool {
	var batch []tak.Ply
	nexts := make(map[string]*tak.State)
	for {
		p, fallibility, ok := stream.Next()
		if !ok {
			break
		}
		next, err := s.Execute(p)
		if err != nil {
			m.rejectFallible(p, fallibility, err)
			continue
		}
		batch = append(batch, p)
		nexts[p.String()] = next
	}
	if len(batch) == 0 {
		return false
	}

	shared := newSharedBound(*alpha)
	startIndex := *moveIndex

	results, prune := dispatch.Split(batch, func(p tak.Ply, wk *KillerTable) (eval.Evaluation, []tak.Ply) {
		return m.searchChild(ctx, nexts[p.String()], depth, ply, startIndex, shared.get(), *beta, wk)
	})

	cutoff := false
	for r := range results {
		*moveIndex++
		if r.score > *best {
			*best, *pv = r.score, append([]tak.Ply{r.ply}, r.pv...)
		}
		if *best > *alpha {
			*alpha = *best
			*bound = ExactBound
			shared.raise(*alpha)
		}
		if *alpha >= *beta && !cutoff {
			cutoff = true
			killers.Store(ply, r.ply)
			m.sctx.Stats.BetaCutoffs.Inc()
			prune()
		}
	}
	return cutoff
}

// searchChild runs the null-window search for the moveIndex'th child and, if it fails
// high within [alpha, beta), re-searches with a full window -- principal variation
// search's defining optimization. moveIndex 0 is handled by the caller directly and never
// reaches here.
func (m *runAlphaBeta) searchChild(ctx context.Context, next *tak.State, depth, ply, moveIndex int, alpha, beta eval.Evaluation, killers *KillerTable) (eval.Evaluation, []tak.Ply) {
	reduction := 0
	if moveIndex >= lateMoveReductionStart && depth > nullMoveReduction {
		reduction = 1
	}

	score, rem := m.search(ctx, next, depth-1-reduction, ply+1, alpha.Negate()-1, alpha.Negate(), killers)
	score = score.AddPly().Negate()

	if reduction > 0 && score > alpha {
		score, rem = m.search(ctx, next, depth-1, ply+1, alpha.Negate()-1, alpha.Negate(), killers)
		score = score.AddPly().Negate()
	}

	if alpha < score && score < beta {
		score, rem = m.search(ctx, next, depth-1, ply+1, beta.Negate(), score.Negate(), killers)
		score = score.AddPly().Negate()
	}
	return score, rem
}

// tryNullMove attempts null-move pruning: if passing the turn still produces a score at
// least beta after a reduced-depth verification search, the position is pruned outright.
// Skipped near the leaves and whenever the window is already chasing a forced mate, since
// the reduced search isn't trustworthy that close to a terminal score. Also skipped when
// the side to move has a forcing placement threat of its own -- passing would squander it,
// so the reduced search wouldn't reflect the position's real value -- and unless the static
// eval already clears beta, the check-analogue and static-eval gates a null move needs
// before the verification search is worth the cost.
func (m *runAlphaBeta) tryNullMove(ctx context.Context, s *tak.State, depth, ply int, beta eval.Evaluation, killers *KillerTable) (eval.Evaluation, bool) {
	if depth <= nullMoveReduction || beta.IsTerminal() {
		return 0, false
	}
	if !placementThreats(s, s.ToMove).IsEmpty() {
		return 0, false
	}
	if m.eval.Evaluate(ctx, s) < beta {
		return 0, false
	}

	null := s.PassTurn()
	score, _ := m.search(ctx, null, depth-1-nullMoveReduction, ply+1, beta.Negate(), beta.Negate()+1, killers)
	score = score.AddPly().Negate()
	if score >= beta {
		m.sctx.Stats.NullMoveCuts.Inc()
		return beta, true
	}
	return 0, false
}

// rejectFallible panics if an Infallible candidate -- one derived directly from the
// position rather than a stale hint -- fails to execute: that indicates a bug in the ply
// stream's own generator, not a legitimate reason to skip it.
func (m *runAlphaBeta) rejectFallible(p tak.Ply, fallibility Fallibility, err error) {
	if fallibility == Infallible {
		panic(fmt.Sprintf("search: infallible ply %v rejected: %v", p, err))
	}
}

// sharedBound is a mutex-guarded running alpha shared across the goroutines searching a
// split node's young siblings, so a worker that hasn't started yet sees the tightest
// bound established so far.
type sharedBound struct {
	mu sync.Mutex
	v  eval.Evaluation
}

func newSharedBound(v eval.Evaluation) *sharedBound {
	return &sharedBound{v: v}
}

func (s *sharedBound) get() eval.Evaluation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.v
}

func (s *sharedBound) raise(v eval.Evaluation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v > s.v {
		s.v = v
	}
}
