package league

import (
	"sort"
	"strings"
)

// Resolver maps free-text league names to the canonical names the
// fallback source accepts. Lookup is case-insensitive and trimmed;
// unknown input passes through unchanged, so callers must treat the
// result as possibly invalid rather than guaranteed valid.
type Resolver struct {
	aliases map[string]string
}

func NewResolver(aliases map[string]string) *Resolver {
	table := make(map[string]string, len(aliases))
	for alias, canonical := range aliases {
		table[strings.ToLower(strings.TrimSpace(alias))] = canonical
	}
	return &Resolver{aliases: table}
}

func NewDefaultResolver() *Resolver {
	return NewResolver(defaultAliases)
}

// Normalize resolves input to a canonical league name. Empty input
// yields empty; an unknown name comes back trimmed but otherwise
// untouched.
func (r *Resolver) Normalize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if canonical, ok := r.aliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	return trimmed
}

// Aliases returns the alias table as sorted pairs for display.
func (r *Resolver) Aliases() [][2]string {
	out := make([][2]string, 0, len(r.aliases))
	for alias, canonical := range r.aliases {
		out = append(out, [2]string{alias, canonical})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// defaultAliases is accumulated domain knowledge: many spellings and
// languages map onto one canonical name. Append-only.
var defaultAliases = map[string]string{
	// international club competitions
	"champions league":         "Champions League",
	"uefa champions league":    "Champions League",
	"ucl":                      "Champions League",
	"europa league":            "Europa League",
	"uefa europa league":       "Europa League",
	"europa conference league": "Europa Conference League",

	// top domestic leagues
	"epl":                    "EPL",
	"premier league":         "EPL",
	"english premier league": "EPL",
	"la liga":                "La Liga",
	"laliga":                 "La Liga",
	"bundesliga":             "Bundesliga",
	"serie a":                "Serie A",
	"ligue 1":                "Ligue 1",
	"turkish super lig":      "Turkish Super Lig",
	"super lig":              "Turkish Super Lig",
	"superliga turca":        "Turkish Super Lig",

	// americas
	"mls":                                    "MLS",
	"usl championship":                       "USL Championship",
	"usl1":                                   "USL1",
	"usl 1":                                  "USL1",
	"usl2":                                   "USL2",
	"usl 2":                                  "USL2",
	"argentina liga profesional":             "Argentina Liga Profesional",
	"liga profesional argentina":             "Argentina Liga Profesional",
	"argentina copa de la liga profesional":  "Argentina Copa de la Liga Profesional",
	"copa de la liga":                        "Argentina Copa de la Liga Profesional",
	"liga 1 peru":                            "Liga 1 Peru",

	// middle east
	"saudi pro league": "Saudi Pro League",

	// national team tournaments
	"world cup":     "World Cup",
	"copa do mundo": "World Cup",
	"euros":         "Euros",
	"euro":          "Euros",
	"gold cup":      "Gold Cup",
	"copa ouro":     "Gold Cup",

	// libertadores
	"libertadores":      "Copa Libertadores",
	"copa libertadores": "Copa Libertadores",

	// brazil
	"brasileirao":                   "Brasileirão Série A",
	"campeonato brasileiro":         "Brasileirão Série A",
	"serie a brasil":                "Brasileirão Série A",
	"brasileirao serie a":           "Brasileirão Série A",
	"brasileirao a":                 "Brasileirão Série A",
	"brasileirao b":                 "Brasileirão Série B",
	"campeonato brasileiro serie b": "Brasileirão Série B",
	"serie b brasil":                "Brasileirão Série B",
	"brasileirao serie b":           "Brasileirão Série B",
	"copa do brasil":                "Copa do Brasil",
}
