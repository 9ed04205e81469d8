package season

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// A season key is the string form a season is known by at the fallback
// source: either a four-digit year ("2024") or two two-digit years
// joined by a slash ("24/25"). Keys must stay strings end to end; an
// integer coercion loses the slash form at the fallback boundary.

// UnknownOrder sorts unrecognized keys before any real year.
const UnknownOrder = -1

var (
	fullYearPattern  = regexp.MustCompile(`^\d{4}$`)
	splitYearPattern = regexp.MustCompile(`^(\d{2})/(\d{2})$`)
)

// OrderKey ranks a season key chronologically by its ending year.
// "2024" -> 2024, "24/25" -> 2025, "99/00" -> 2000. Two-digit ending
// years use a fixed century pivot: values up to 30 land in the 2000s,
// everything above in the 1900s.
func OrderKey(key string) int {
	key = strings.TrimSpace(key)

	if fullYearPattern.MatchString(key) {
		year, _ := strconv.Atoi(key)
		return year
	}

	if m := splitYearPattern.FindStringSubmatch(key); m != nil {
		end, _ := strconv.Atoi(m[2])
		if end <= 30 {
			return 2000 + end
		}
		return 1900 + end
	}

	if year, err := strconv.Atoi(key); err == nil {
		return year
	}
	return UnknownOrder
}

// Latest returns the chronologically latest key. The second return is
// false when keys is empty.
func Latest(keys []string) (string, bool) {
	best := ""
	bestOrder := 0
	found := false
	for _, key := range keys {
		order := OrderKey(key)
		if !found || order > bestOrder {
			best = key
			bestOrder = order
			found = true
		}
	}
	return best, found
}

// SortDescending orders keys newest first, for presenting season
// choices.
func SortDescending(keys []string) {
	sort.SliceStable(keys, func(i, j int) bool {
		return OrderKey(keys[i]) > OrderKey(keys[j])
	})
}
