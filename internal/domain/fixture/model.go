package fixture

import (
	"sort"
	"time"
)

// Record is one flattened match or scheduled event. The primary API
// and the fallback source produce the same shape, so both paths share
// it. Score pointers stay nil when the upstream omits the sub-object.
type Record struct {
	EventID           int64
	Round             *int
	KickoffUnix       int64
	StatusType        string
	StatusDescription string
	HomeTeam          string
	HomeTeamID        int64
	AwayTeam          string
	AwayTeamID        int64
	HomeScore         *int
	AwayScore         *int
}

// KickoffUTC derives the UTC datetime for export. Empty when the
// upstream did not report a kickoff timestamp.
func (r Record) KickoffUTC() string {
	if r.KickoffUnix == 0 {
		return ""
	}
	return time.Unix(r.KickoffUnix, 0).UTC().Format(time.RFC3339)
}

// SortByKickoff orders records ascending by kickoff timestamp. The
// sort is stable so records without a timestamp keep upstream order
// at the front.
func SortByKickoff(rows []Record) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].KickoffUnix < rows[j].KickoffUnix
	})
}
