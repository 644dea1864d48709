package standings

import (
	"strings"
	"unicode/utf8"

	"vct-standings/internal/domain"
)

// Synthetic score assigned to every map of a match whose real rounds are
// not known yet.
const (
	SyntheticRoundsWon  = 13
	SyntheticRoundsLost = 9
)

// syntheticRounds returns the rounds won and lost by a side that took won
// maps and dropped lost maps.
func syntheticRounds(won, lost int) (roundWins, roundLosses int) {
	return SyntheticRoundsWon*won + SyntheticRoundsLost*lost,
		SyntheticRoundsLost*won + SyntheticRoundsWon*lost
}

// Aggregate folds matches into one standing per team. Round totals start from
// the team's season counters; only non-completed matches add synthetic rounds.
// Matches referencing a team outside of teams are skipped.
func Aggregate(teams []domain.Team, matches []domain.Match) map[int64]*domain.TeamStanding {
	standings := make(map[int64]*domain.TeamStanding, len(teams))
	for _, t := range teams {
		if _, ok := standings[t.ID]; ok {
			continue
		}
		standings[t.ID] = newStanding(t)
	}

	for _, m := range matches {
		team1, ok1 := standings[m.Team1ID]
		team2, ok2 := standings[m.Team2ID]
		if !ok1 || !ok2 {
			continue
		}

		switch {
		case m.Team1Score > m.Team2Score:
			team1.Wins++
			team2.Losses++
		case m.Team2Score > m.Team1Score:
			team2.Wins++
			team1.Losses++
		}

		team1.MapWins += m.Team1Score
		team1.MapLosses += m.Team2Score
		team2.MapWins += m.Team2Score
		team2.MapLosses += m.Team1Score

		if m.IsCompleted {
			continue
		}
		rw, rl := syntheticRounds(m.Team1Score, m.Team2Score)
		team1.RoundWins += rw
		team1.RoundLosses += rl
		team2.RoundWins += rl
		team2.RoundLosses += rw
	}

	return standings
}

func newStanding(t domain.Team) *domain.TeamStanding {
	abbr := t.Abbreviation
	if abbr == "" {
		abbr = abbreviate(t.Name)
	}
	return &domain.TeamStanding{
		ID:           t.ID,
		Name:         t.Name,
		Abbreviation: abbr,
		LogoURL:      t.LogoURL,
		RoundWins:    t.SeasonRoundsWon,
		RoundLosses:  t.SeasonRoundsLost,
	}
}

func abbreviate(name string) string {
	if utf8.RuneCountInString(name) <= 3 {
		return strings.ToUpper(name)
	}
	return strings.ToUpper(string([]rune(name)[:3]))
}
