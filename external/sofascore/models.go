package sofascore

// Envelope shapes for the direct API. Nested sub-objects are pointers
// because the upstream omits them freely; flattening must tolerate the
// gaps without failing the whole batch.

type tournamentInfoEnvelope struct {
	UniqueTournament struct {
		Name string `json:"name"`
	} `json:"uniqueTournament"`
}

type standingsEnvelope struct {
	Standings []standingBlock `json:"standings"`
}

type standingBlock struct {
	Name string        `json:"name"`
	Type string        `json:"type"`
	Rows []standingRow `json:"rows"`
}

type standingRow struct {
	Team *struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"team"`
	Position int `json:"position"`
	Matches  int `json:"matches"`
	Wins     int `json:"wins"`
	Draws    int `json:"draws"`
	Losses   int `json:"losses"`
	// Score fields come in two generations of names; prefer the
	// scores* form and fall back to the goals* aliases when absent.
	ScoresFor     *int `json:"scoresFor"`
	ScoresAgainst *int `json:"scoresAgainst"`
	ScoreDiff     *int `json:"scoreDiff"`
	GoalsFor      *int `json:"goalsFor"`
	GoalsAgainst  *int `json:"goalsAgainst"`
	GoalDiff      *int `json:"goalDiff"`
	Points        int  `json:"points"`
}

type teamsEnvelope struct {
	Teams []teamItem `json:"teams"`
}

type teamItem struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Slug    string `json:"slug"`
	City    string `json:"city"`
	Founded int    `json:"founded"`
	Country *struct {
		Name   string `json:"name"`
		Alpha2 string `json:"alpha2"`
	} `json:"country"`
}

type eventsEnvelope struct {
	Events []eventItem `json:"events"`
}

type eventItem struct {
	ID        int64 `json:"id"`
	RoundInfo *struct {
		Round *int `json:"round"`
	} `json:"roundInfo"`
	StartTimestamp int64 `json:"startTimestamp"`
	Status         *struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	} `json:"status"`
	HomeTeam  *teamRef  `json:"homeTeam"`
	AwayTeam  *teamRef  `json:"awayTeam"`
	HomeScore *scoreRef `json:"homeScore"`
	AwayScore *scoreRef `json:"awayScore"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type scoreRef struct {
	Current *int `json:"current"`
}
