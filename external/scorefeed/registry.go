package scorefeed

import "sort"

// tournamentIDByLeague pins each supported canonical league name to
// its upstream tournament id. Append-only domain knowledge, same role
// as the competition table the Python scraping package ships.
var tournamentIDByLeague = map[string]int64{
	"Champions League":                      7,
	"Europa League":                         679,
	"Europa Conference League":              17015,
	"EPL":                                   17,
	"La Liga":                               8,
	"Bundesliga":                            35,
	"Serie A":                               23,
	"Ligue 1":                               34,
	"Turkish Super Lig":                     52,
	"Argentina Liga Profesional":            155,
	"Argentina Copa de la Liga Profesional": 13475,
	"Liga 1 Peru":                           406,
	"Copa Libertadores":                     384,
	"MLS":                                   242,
	"USL Championship":                      13363,
	"USL1":                                  13362,
	"USL2":                                  13546,
	"Saudi Pro League":                      955,
	"World Cup":                             16,
	"Euros":                                 1,
	"Gold Cup":                              140,
	"Women's World Cup":                     290,
	"Brasileirão Série A":                   325,
	"Brasileirão Série B":                   390,
	"Copa do Brasil":                        373,
}

// SupportedLeagues returns the canonical names in alphabetical order.
func SupportedLeagues() []string {
	out := make([]string, 0, len(tournamentIDByLeague))
	for name := range tournamentIDByLeague {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
