package standings

import (
	"cmp"
	"math"
	"slices"

	"vct-standings/internal/domain"
)

// Criterion is one step of the subgroup tiebreak cascade.
type Criterion int

const (
	CriterionMatch Criterion = iota
	CriterionMap
	CriterionRound
	CriterionOverallMap
	CriterionOverallRound
)

func (c Criterion) String() string {
	switch c {
	case CriterionMatch:
		return "match"
	case CriterionMap:
		return "map"
	case CriterionRound:
		return "round"
	case CriterionOverallMap:
		return "overallMap"
	case CriterionOverallRound:
		return "overallRound"
	}
	return "unknown"
}

func (c Criterion) next() (Criterion, bool) {
	if c >= CriterionOverallRound {
		return c, false
	}
	return c + 1, true
}

// Resolver orders standings using head-to-head data from the match list it
// was built with. It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	h2h headToHeadIndex
}

func NewResolver(matches []domain.Match) *Resolver {
	return &Resolver{h2h: indexHeadToHead(matches)}
}

func (r *Resolver) HeadToHead(a, b int64) HeadToHead {
	return r.h2h.get(a, b)
}

// compareWinRate is negative when a has the better win rate. Rates are
// compared by cross-multiplication so equal records compare exactly equal.
func compareWinRate(a, b domain.TeamStanding) int {
	aw, ap := a.Wins, a.Wins+a.Losses
	if ap == 0 {
		aw, ap = 0, 1
	}
	bw, bp := b.Wins, b.Wins+b.Losses
	if bp == 0 {
		bw, bp = 0, 1
	}
	return cmp.Compare(bw*ap, aw*bp)
}

// HaveSameRecord reports equal win rate and equal losses.
func HaveSameRecord(a, b domain.TeamStanding) bool {
	return compareWinRate(a, b) == 0 && a.Losses == b.Losses
}

// Compare is the primary comparator: win rate, then fewer losses, then the
// pairwise tiebreakers.
func (r *Resolver) Compare(a, b domain.TeamStanding) int {
	if c := compareWinRate(a, b); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Losses, b.Losses); c != 0 {
		return c
	}
	return r.ApplyTiebreakers(a, b)
}

// ApplyTiebreakers orders two teams sharing a record. Negative means a ranks
// above b; zero means the rules cannot separate them.
func (r *Resolver) ApplyTiebreakers(a, b domain.TeamStanding) int {
	h := r.h2h.get(a.ID, b.ID)
	if o := h.Outcome(); o != 0 {
		return -o
	}
	if h.RoundDiff != 0 {
		return -sign(h.RoundDiff)
	}
	if c := cmp.Compare(b.MapDiff(), a.MapDiff()); c != 0 {
		return c
	}
	return cmp.Compare(b.RoundDiff(), a.RoundDiff())
}

// Sort produces the provisional order in place. Runs of teams sharing a
// record are ordered pairwise only; see ResolveTies.
func (r *Resolver) Sort(standings []domain.TeamStanding) {
	slices.SortStableFunc(standings, r.Compare)
}

// ResolveTies reorders, in place, every run of three or more adjacent teams
// sharing a record using the subgroup cascade.
func (r *Resolver) ResolveTies(standings []domain.TeamStanding) {
	for i := 0; i < len(standings); {
		j := i + 1
		for j < len(standings) && HaveSameRecord(standings[i], standings[j]) {
			j++
		}
		if j-i > 2 {
			copy(standings[i:j], r.ResolveSubgroup(slices.Clone(standings[i:j]), CriterionMatch))
		}
		i = j
	}
}

// ResolveSubgroup orders a tied group starting at criterion c. The teams
// reaching the best value form the top subgroup; both subgroups are then
// resolved again from CriterionMatch. When c cannot split the group the next
// criterion is tried, and a group no criterion can split is returned as is.
func (r *Resolver) ResolveSubgroup(group []domain.TeamStanding, c Criterion) []domain.TeamStanding {
	switch len(group) {
	case 0, 1:
		return group
	case 2:
		if r.ApplyTiebreakers(group[0], group[1]) <= 0 {
			return group
		}
		return []domain.TeamStanding{group[1], group[0]}
	}

	values := make([]int, len(group))
	best := math.MinInt
	for i, t := range group {
		values[i] = r.criterionValue(t, group, c)
		best = max(best, values[i])
	}

	var top, rest []domain.TeamStanding
	for i, t := range group {
		if values[i] == best {
			top = append(top, t)
		} else {
			rest = append(rest, t)
		}
	}

	if len(rest) == 0 || best == 0 {
		next, ok := c.next()
		if !ok {
			return group
		}
		return r.ResolveSubgroup(group, next)
	}

	return slices.Concat(
		r.ResolveSubgroup(top, CriterionMatch),
		r.ResolveSubgroup(rest, CriterionMatch),
	)
}

func (r *Resolver) criterionValue(t domain.TeamStanding, group []domain.TeamStanding, c Criterion) int {
	switch c {
	case CriterionOverallMap:
		return t.MapDiff()
	case CriterionOverallRound:
		return t.RoundDiff()
	}

	sum := 0
	for _, other := range group {
		if other.ID == t.ID {
			continue
		}
		h := r.h2h.get(t.ID, other.ID)
		if h.Played == 0 {
			continue
		}
		switch c {
		case CriterionMatch:
			sum += h.Outcome()
		case CriterionMap:
			sum += h.MapDiff
		case CriterionRound:
			sum += h.RoundDiff
		}
	}
	return sum
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
