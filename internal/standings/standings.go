// Package standings ranks the teams of a round-robin group from their match
// results, resolving equal records with head-to-head aware tiebreakers.
package standings

import "vct-standings/internal/domain"

// QualificationCutoff is the last position that qualifies out of a group.
const QualificationCutoff = 4

// Calculate returns the final standings of teams, positions 1..N. It never
// mutates its inputs and each call is independent of any other.
func Calculate(teams []domain.Team, matches []domain.Match) []domain.TeamStanding {
	totals := Aggregate(teams, matches)

	standings := make([]domain.TeamStanding, 0, len(totals))
	for _, t := range teams {
		s, ok := totals[t.ID]
		if !ok {
			continue
		}
		standings = append(standings, *s)
		delete(totals, t.ID)
	}

	r := NewResolver(matches)
	r.Sort(standings)
	r.ResolveTies(standings)

	for i := range standings {
		standings[i].Position = i + 1
		standings[i].IsQualified = standings[i].Position <= QualificationCutoff
	}
	return standings
}
