package standings

import "sort"

// Row is one flattened standings line. Upstream groups (league phases,
// cup groups) are carried in Group so a single table covers both
// round-robin and group-stage competitions.
type Row struct {
	Group        string
	Position     int
	Team         string
	TeamID       int64
	Played       int
	Wins         int
	Draws        int
	Losses       int
	GoalsFor     int
	GoalsAgainst int
	GoalDiff     int
	Points       int
}

// Sort orders rows by group, then position.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Group != rows[j].Group {
			return rows[i].Group < rows[j].Group
		}
		return rows[i].Position < rows[j].Position
	})
}
