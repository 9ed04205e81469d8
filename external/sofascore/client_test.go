package sofascore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	errors "github.com/cockroachdb/errors"

	"github.com/igorxl1/leaguepull/internal/platform/webclient"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)
	web := webclient.New(webclient.Config{
		Profiles:   webclient.DefaultProfiles()[:1],
		MaxRetries: 0,
	})
	return NewClient(web, srv.URL, nil), srv.Close
}

func TestFetchStandings_FlattensGroupsAndScoreAliases(t *testing.T) {
	t.Parallel()

	payload := `{
		"standings": [
			{
				"name": "Group A",
				"type": "total",
				"rows": [
					{
						"team": {"id": 1963, "name": "Flamengo"},
						"position": 1, "matches": 6, "wins": 4, "draws": 2, "losses": 0,
						"scoresFor": 12, "scoresAgainst": 3, "scoreDiff": 9, "points": 14
					},
					{
						"position": 2, "matches": 6, "wins": 3, "draws": 2, "losses": 1,
						"goalsFor": 8, "goalsAgainst": 5, "goalDiff": 3, "points": 11
					}
				]
			},
			{
				"type": "total",
				"rows": [
					{"team": {"id": 7, "name": "Peñarol"}, "position": 1, "points": 9}
				]
			}
		]
	}`
	client, closeSrv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer closeSrv()

	rows, err := client.FetchStandings(context.Background(), 384, 70083)
	if err != nil {
		t.Fatalf("fetch standings: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Group != "Group A" || first.Team != "Flamengo" || first.TeamID != 1963 {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.GoalsFor != 12 || first.GoalsAgainst != 3 || first.GoalDiff != 9 {
		t.Fatalf("scores* fields not preferred: %+v", first)
	}

	second := rows[1]
	if second.Team != "" || second.TeamID != 0 {
		t.Fatalf("missing team sub-object must flatten to zero values: %+v", second)
	}
	if second.GoalsFor != 8 || second.GoalsAgainst != 5 || second.GoalDiff != 3 {
		t.Fatalf("goals* aliases not applied: %+v", second)
	}

	if rows[2].Group != "total" {
		t.Fatalf("block type must back-fill missing group name, got %q", rows[2].Group)
	}
}

func TestFetchStandings_TransportFailurePropagates(t *testing.T) {
	t.Parallel()

	client, closeSrv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer closeSrv()

	if _, err := client.FetchStandings(context.Background(), 384, 70083); !errors.Is(err, webclient.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestFetchTeams_FlattensCountry(t *testing.T) {
	t.Parallel()

	payload := `{
		"teams": [
			{
				"id": 1963, "name": "Flamengo", "slug": "flamengo",
				"city": "Rio de Janeiro", "founded": 1895,
				"country": {"name": "Brazil", "alpha2": "BR"}
			},
			{"id": 7, "name": "Peñarol"}
		]
	}`
	client, closeSrv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer closeSrv()

	records, err := client.FetchTeams(context.Background(), 384, 70083)
	if err != nil {
		t.Fatalf("fetch teams: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(records))
	}
	if records[0].Country != "Brazil" || records[0].CountryCode != "BR" || records[0].Founded != 1895 {
		t.Fatalf("country not flattened: %+v", records[0])
	}
	if records[1].Country != "" || records[1].CountryCode != "" {
		t.Fatalf("missing country must flatten to empty strings: %+v", records[1])
	}
}

func TestFetchEvents_SortsByKickoffAndToleratesGaps(t *testing.T) {
	t.Parallel()

	payload := `{
		"events": [
			{
				"id": 2, "startTimestamp": 1700100000,
				"roundInfo": {"round": 2},
				"status": {"type": "finished", "description": "Ended"},
				"homeTeam": {"id": 10, "name": "Home"},
				"awayTeam": {"id": 11, "name": "Away"},
				"homeScore": {"current": 2}, "awayScore": {"current": 1}
			},
			{"id": 1, "startTimestamp": 1700000000}
		]
	}`
	client, closeSrv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer closeSrv()

	records, err := client.FetchEvents(context.Background(), 384, 70083)
	if err != nil {
		t.Fatalf("fetch events: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 events, got %d", len(records))
	}
	if records[0].EventID != 1 || records[1].EventID != 2 {
		t.Fatalf("events not sorted by kickoff: %+v", records)
	}
	if records[0].HomeScore != nil || records[0].Round != nil {
		t.Fatalf("missing sub-objects must stay nil: %+v", records[0])
	}
	if records[1].HomeScore == nil || *records[1].HomeScore != 2 {
		t.Fatalf("home score not flattened: %+v", records[1])
	}
}

func TestFetchEvents_SoftFailsOnTransportError(t *testing.T) {
	t.Parallel()

	client, closeSrv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer closeSrv()

	records, err := client.FetchEvents(context.Background(), 384, 70083)
	if err != nil {
		t.Fatalf("events must soft-fail, got %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty result, got %d records", len(records))
	}
}

func TestFetchTournamentName_BestEffort(t *testing.T) {
	t.Parallel()

	client, closeSrv := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"uniqueTournament": {"name": "Copa Libertadores"}}`))
	}))
	defer closeSrv()

	if name := client.FetchTournamentName(context.Background(), 384); name != "Copa Libertadores" {
		t.Fatalf("unexpected name %q", name)
	}

	broken, closeBroken := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer closeBroken()

	if name := broken.FetchTournamentName(context.Background(), 384); name != "" {
		t.Fatalf("expected empty name on failure, got %q", name)
	}
}
