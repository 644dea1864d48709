package standings

import "vct-standings/internal/domain"

// HeadToHead holds direct-matchup statistics from one team's perspective.
// Rounds are always estimated, whatever the completion state of the match.
type HeadToHead struct {
	Played    int
	Wins      int
	Losses    int
	MapDiff   int
	RoundDiff int
}

// ComputeHeadToHead scans matches for meetings between a and b, in either
// slot, and reports them from a's perspective. Teams that never met get
// the zero value.
func ComputeHeadToHead(a, b int64, matches []domain.Match) HeadToHead {
	var h HeadToHead
	if a == b {
		return h
	}
	for _, m := range matches {
		switch {
		case m.Team1ID == a && m.Team2ID == b:
			h.add(m.Team1Score, m.Team2Score)
		case m.Team1ID == b && m.Team2ID == a:
			h.add(m.Team2Score, m.Team1Score)
		}
	}
	return h
}

func (h *HeadToHead) add(own, opp int) {
	h.Played++
	if own > opp {
		h.Wins++
	} else if opp > own {
		h.Losses++
	}
	h.MapDiff += own - opp
	rw, rl := syntheticRounds(own, opp)
	h.RoundDiff += rw - rl
}

func (h HeadToHead) flip() HeadToHead {
	return HeadToHead{
		Played:    h.Played,
		Wins:      h.Losses,
		Losses:    h.Wins,
		MapDiff:   -h.MapDiff,
		RoundDiff: -h.RoundDiff,
	}
}

// Outcome collapses the meeting into +1 (a ranks above), -1 (a ranks below)
// or 0 (no signal). A single series win is enough to rank above; with no
// series won, any map deficit or surplus ranks a below.
func (h HeadToHead) Outcome() int {
	switch {
	case h.Wins > 0:
		return 1
	case h.MapDiff != 0:
		return -1
	}
	return 0
}

type pairKey struct {
	lo, hi int64
}

func keyFor(a, b int64) (pairKey, bool) {
	if a <= b {
		return pairKey{a, b}, false
	}
	return pairKey{b, a}, true
}

// headToHeadIndex answers HeadToHead lookups in O(1) after one pass over the
// matches. Entries are stored from the lower id's perspective.
type headToHeadIndex map[pairKey]HeadToHead

func indexHeadToHead(matches []domain.Match) headToHeadIndex {
	idx := make(headToHeadIndex)
	for _, m := range matches {
		if m.Team1ID == m.Team2ID {
			continue
		}
		key, flipped := keyFor(m.Team1ID, m.Team2ID)
		h := idx[key]
		if flipped {
			h.add(m.Team2Score, m.Team1Score)
		} else {
			h.add(m.Team1Score, m.Team2Score)
		}
		idx[key] = h
	}
	return idx
}

func (idx headToHeadIndex) get(a, b int64) HeadToHead {
	key, flipped := keyFor(a, b)
	h := idx[key]
	if flipped {
		return h.flip()
	}
	return h
}
