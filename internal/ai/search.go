package ai

import (
	"sort"

	"github.com/minihouse/minihouse-backend/internal/eval"
	"github.com/minihouse/minihouse-backend/internal/model"
	"github.com/minihouse/minihouse-backend/internal/rules"
)

const infinityScore = 1 << 30

// Any score at or past this magnitude is a mate score; the gap below
// eval.MateScore leaves room for the ply discount.
const mateThreshold = eval.MateScore - maxSearchPly

type scoredAction struct {
	action model.Action
	score  int
}

// findBestAction runs iterative deepening up to targetDepth. Time and
// cancellation are checked only between complete depth iterations, so one
// iteration may overrun the soft deadline; callers treat it as advisory.
func findBestAction(sc *searchContext, state model.GameState, targetDepth int) (model.Action, bool) {
	var rootScores []scoredAction
	for depth := 1; depth <= targetDepth; depth++ {
		if depth > 1 && sc.expired() {
			break
		}
		rootScores = searchRoot(sc, state, depth)
		sc.stats.CompletedDepth = depth
		if len(rootScores) == 0 {
			return model.Action{}, false
		}
		if best := relativeScore(rootScores[0].score, state.ToMove); best >= mateThreshold {
			break
		}
	}
	if len(rootScores) == 0 {
		return model.Action{}, false
	}
	return preferDrop(rootScores, state.ToMove), true
}

// searchRoot runs one full-width (modulo the shallow-depth pruning rule)
// alpha-beta iteration and returns the root actions sorted best first for
// the side to move.
func searchRoot(sc *searchContext, state model.GameState, depth int) []scoredAction {
	actions := rules.AllActions(&state)
	if len(actions) == 0 {
		return nil
	}
	candidates := orderCandidates(sc, &state, actions, 0)
	if depth <= 2 && len(candidates) > 10 {
		candidates = forwardPrune(candidates)
	}

	maximizing := state.ToMove == model.White
	alpha, beta := -infinityScore, infinityScore
	scores := make([]scoredAction, 0, len(candidates))
	for _, c := range candidates {
		child := rules.Apply(state, c.action)
		score := sc.alphabeta(child, depth-1, 1, alpha, beta)
		scores = append(scores, scoredAction{action: c.action, score: score})
		if maximizing && score > alpha {
			alpha = score
		}
		if !maximizing && score < beta {
			beta = score
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return relativeScore(scores[i].score, state.ToMove) > relativeScore(scores[j].score, state.ToMove)
	})
	return scores
}

// alphabeta returns the White-perspective minimax value of the state.
func (sc *searchContext) alphabeta(state model.GameState, depth, ply, alpha, beta int) int {
	sc.stats.Nodes++

	// Mate sooner outranks mate later: distance from the root discounts
	// the score, independent of how deep this search iteration runs.
	if state.IsCheckmate {
		if state.ToMove == model.White {
			return -(eval.MateScore - ply)
		}
		return eval.MateScore - ply
	}
	if state.IsStalemate {
		return 0
	}
	if depth <= 0 {
		return eval.Evaluate(&state)
	}

	key := hashState(&state)
	alphaOrig, betaOrig := alpha, beta
	if entry, ok := sc.tt[key]; ok && entry.depth >= depth {
		sc.stats.TTHits++
		score := mateFromTT(entry.score, ply)
		switch entry.flag {
		case ttExact:
			return score
		case ttLower:
			if score > alpha {
				alpha = score
			}
		case ttUpper:
			if score < beta {
				beta = score
			}
		}
		if alpha >= beta {
			return score
		}
	}

	actions := rules.AllActions(&state)
	if len(actions) == 0 {
		// Reachable only for reconstructed states whose flags were never
		// derived; classify in place, folding the old out-of-band
		// "can a drop force mate" probe into ordinary terminal handling.
		if rules.IsInCheck(&state, state.ToMove) {
			if state.ToMove == model.White {
				return -(eval.MateScore - ply)
			}
			return eval.MateScore - ply
		}
		return 0
	}
	candidates := orderCandidates(sc, &state, actions, ply)
	if depth <= 2 && len(candidates) > 10 {
		candidates = forwardPrune(candidates)
	}

	maximizing := state.ToMove == model.White
	var best int
	var bestAction model.Action
	hasBest := false
	if maximizing {
		best = -infinityScore
		for _, c := range candidates {
			child := rules.Apply(state, c.action)
			score := sc.alphabeta(child, depth-1, ply+1, alpha, beta)
			if score > best {
				best = score
				bestAction = c.action
				hasBest = true
			}
			if best > alpha {
				alpha = best
			}
			if beta <= alpha {
				sc.recordCutoff(c.action, ply, depth)
				break
			}
		}
	} else {
		best = infinityScore
		for _, c := range candidates {
			child := rules.Apply(state, c.action)
			score := sc.alphabeta(child, depth-1, ply+1, alpha, beta)
			if score < best {
				best = score
				bestAction = c.action
				hasBest = true
			}
			if best < beta {
				beta = best
			}
			if beta <= alpha {
				sc.recordCutoff(c.action, ply, depth)
				break
			}
		}
	}

	flag := ttExact
	if best <= alphaOrig {
		flag = ttUpper
	} else if best >= betaOrig {
		flag = ttLower
	}
	sc.tt[key] = ttEntry{depth: depth, score: mateToTT(best, ply), flag: flag, best: bestAction, hasBest: hasBest}
	return best
}

// Mate scores are ply-discounted from the root, so a stored value is only
// meaningful relative to the node that produced it. mateToTT rebases a
// score onto the entry's node before storing; mateFromTT rebases it back
// onto the probing node's ply. Ordinary scores pass through untouched.
func mateToTT(score, ply int) int {
	if score >= mateThreshold {
		return score + ply
	}
	if score <= -mateThreshold {
		return score - ply
	}
	return score
}

func mateFromTT(score, ply int) int {
	if score >= mateThreshold {
		return score - ply
	}
	if score <= -mateThreshold {
		return score + ply
	}
	return score
}

// preferDrop applies the stylistic tie-break: among the top three root
// candidates, take the best drop when it scores within 5% of the best
// ordinary move. Encourages variant-appropriate play, not correctness.
func preferDrop(scores []scoredAction, mover model.PlayerColor) model.Action {
	top := scores
	if len(top) > 3 {
		top = top[:3]
	}
	var bestMove, bestDrop *scoredAction
	for i := range top {
		if top[i].action.IsDrop() {
			if bestDrop == nil {
				bestDrop = &top[i]
			}
		} else if bestMove == nil {
			bestMove = &top[i]
		}
	}
	if bestDrop == nil || bestMove == nil {
		return scores[0].action
	}
	moveRel := relativeScore(bestMove.score, mover)
	dropRel := relativeScore(bestDrop.score, mover)
	margin := abs(moveRel) * 5 / 100
	if dropRel >= moveRel-margin {
		return bestDrop.action
	}
	return scores[0].action
}

func relativeScore(score int, mover model.PlayerColor) int {
	if mover == model.White {
		return score
	}
	return -score
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
