package ai

import (
	"context"
	"time"

	"github.com/minihouse/minihouse-backend/internal/model"
)

type ttFlag uint8

const (
	ttExact ttFlag = iota
	ttLower
	ttUpper
)

type ttEntry struct {
	depth   int
	score   int
	flag    ttFlag
	best    model.Action
	hasBest bool
}

type SearchStats struct {
	Nodes          int
	TTHits         int
	Cutoffs        int
	CompletedDepth int
}

const maxSearchPly = 32

// searchContext carries everything one top-level search needs: the
// transposition table, killer and history tables, the soft deadline and
// the caller's cancellation context. It is created per RequestMove and
// discarded afterwards, so concurrent AI instances share no state.
type searchContext struct {
	ctx      context.Context
	tt       map[uint64]ttEntry
	killers  [maxSearchPly][2]model.Action
	history  map[model.Action]int
	deadline time.Time
	stats    SearchStats
}

func newSearchContext(ctx context.Context, deadline time.Time) *searchContext {
	return &searchContext{
		ctx:      ctx,
		tt:       make(map[uint64]ttEntry),
		history:  make(map[model.Action]int),
		deadline: deadline,
	}
}

func (sc *searchContext) expired() bool {
	if sc.ctx != nil && sc.ctx.Err() != nil {
		return true
	}
	return time.Now().After(sc.deadline)
}

func (sc *searchContext) recordCutoff(action model.Action, ply, depth int) {
	sc.stats.Cutoffs++
	if ply < maxSearchPly {
		if sc.killers[ply][0] != action {
			sc.killers[ply][1] = sc.killers[ply][0]
			sc.killers[ply][0] = action
		}
	}
	sc.history[action] += depth * depth
}

func (sc *searchContext) isKiller(action model.Action, ply int) bool {
	if ply >= maxSearchPly {
		return false
	}
	return sc.killers[ply][0] == action || sc.killers[ply][1] == action
}
