package sofascore

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/igorxl1/leaguepull/internal/usecase"
)

var (
	pathSegmentPattern = regexp.MustCompile(`/(\d+)`)
	seasonIDPattern    = regexp.MustCompile(`#id:(\d+)`)
)

// ParseTournamentURL extracts the tournament id (last integer path
// segment before a fragment, query, slash, or the end of the URL) and
// the season id (integer after the "#id:" marker) from a tournament
// page URL. Both must be present; there is no partial reference.
func ParseTournamentURL(rawURL string) (usecase.TournamentRef, error) {
	tournamentID, found := lastIntegerSegment(rawURL)
	seasonMatch := seasonIDPattern.FindStringSubmatch(rawURL)
	if !found || seasonMatch == nil {
		return usecase.TournamentRef{}, fmt.Errorf("%w: %q", usecase.ErrMalformedReference, rawURL)
	}

	seasonID, err := strconv.ParseInt(seasonMatch[1], 10, 64)
	if err != nil {
		return usecase.TournamentRef{}, fmt.Errorf("%w: %q", usecase.ErrMalformedReference, rawURL)
	}

	return usecase.TournamentRef{TournamentID: tournamentID, SeasonID: seasonID}, nil
}

func lastIntegerSegment(rawURL string) (int64, bool) {
	var id int64
	found := false
	for _, loc := range pathSegmentPattern.FindAllStringSubmatchIndex(rawURL, -1) {
		segment := rawURL[loc[2]:loc[3]]
		if loc[3] < len(rawURL) && !strings.ContainsRune("#?/", rune(rawURL[loc[3]])) {
			continue
		}
		parsed, err := strconv.ParseInt(segment, 10, 64)
		if err != nil {
			continue
		}
		id = parsed
		found = true
	}
	return id, found
}
