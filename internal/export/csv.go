// Package export writes acquisition outcomes to CSV files, one file
// per data category. Files carry a UTF-8 BOM so spreadsheet tools
// pick up accented team names without an import dialog.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	crerr "github.com/cockroachdb/errors"

	"github.com/igorxl1/leaguepull/internal/domain/fixture"
	"github.com/igorxl1/leaguepull/internal/domain/standings"
	"github.com/igorxl1/leaguepull/internal/domain/team"
	"github.com/igorxl1/leaguepull/internal/platform/logging"
	"github.com/igorxl1/leaguepull/internal/usecase"
)

const (
	StandingsFile      = "standings.csv"
	TeamsFile          = "teams.csv"
	EventsFile         = "events.csv"
	EventsFallbackFile = "events_fallback.csv"
	PlayerStatsFile    = "player_stats_fallback.csv"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer persists outcome categories under a single directory.
type Writer struct {
	dir    string
	logger *logging.Logger
}

func NewWriter(dir string, logger *logging.Logger) *Writer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Writer{dir: dir, logger: logger}
}

// WriteOutcome writes every successful, non-empty category and
// returns the paths written. A failed or empty category is skipped,
// never blocking the others.
func (w *Writer) WriteOutcome(outcome usecase.Outcome) ([]string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return nil, crerr.Wrapf(err, "creating output directory %q", w.dir)
	}

	var written []string
	add := func(name string, header []string, rows [][]string) error {
		if len(rows) == 0 {
			return nil
		}
		path := filepath.Join(w.dir, name)
		if err := w.writeFile(path, header, rows); err != nil {
			return err
		}
		w.logger.Info("csv written", "path", path, "rows", len(rows))
		written = append(written, path)
		return nil
	}

	if outcome.Standings.OK() {
		if err := add(StandingsFile, standingsHeader, standingsRows(outcome.Standings.Data)); err != nil {
			return written, err
		}
	}
	if outcome.Teams.OK() {
		if err := add(TeamsFile, teamsHeader, teamRows(outcome.Teams.Data)); err != nil {
			return written, err
		}
	}
	if outcome.Events.OK() {
		if err := add(EventsFile, eventsHeader, eventRows(outcome.Events.Data)); err != nil {
			return written, err
		}
	}
	if outcome.Matches.OK() {
		if err := add(EventsFallbackFile, eventsHeader, eventRows(outcome.Matches.Data)); err != nil {
			return written, err
		}
	}
	if outcome.PlayerStats.OK() && !outcome.PlayerStats.Data.Empty() {
		table := outcome.PlayerStats.Data
		if err := add(PlayerStatsFile, table.Columns, table.Rows); err != nil {
			return written, err
		}
	}

	return written, nil
}

func (w *Writer) writeFile(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return crerr.Wrapf(err, "creating %q", path)
	}
	defer file.Close()

	if _, err := file.Write(utf8BOM); err != nil {
		return crerr.Wrapf(err, "writing bom to %q", path)
	}

	cw := csv.NewWriter(file)
	if err := cw.Write(header); err != nil {
		return crerr.Wrapf(err, "writing header of %q", path)
	}
	if err := cw.WriteAll(rows); err != nil {
		return crerr.Wrapf(err, "writing rows of %q", path)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return crerr.Wrapf(err, "flushing %q", path)
	}
	return file.Close()
}

var standingsHeader = []string{
	"group", "position", "team", "team_id",
	"played", "wins", "draws", "losses",
	"goals_for", "goals_against", "goal_diff", "points",
}

func standingsRows(rows []standings.Row) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.Group,
			strconv.Itoa(r.Position),
			r.Team,
			strconv.FormatInt(r.TeamID, 10),
			strconv.Itoa(r.Played),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Draws),
			strconv.Itoa(r.Losses),
			strconv.Itoa(r.GoalsFor),
			strconv.Itoa(r.GoalsAgainst),
			strconv.Itoa(r.GoalDiff),
			strconv.Itoa(r.Points),
		})
	}
	return out
}

var teamsHeader = []string{
	"id", "name", "slug", "country", "country_code", "city", "founded",
}

func teamRows(records []team.Record) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		founded := ""
		if r.Founded > 0 {
			founded = strconv.Itoa(r.Founded)
		}
		out = append(out, []string{
			strconv.FormatInt(r.ID, 10),
			r.Name,
			r.Slug,
			r.Country,
			r.CountryCode,
			r.City,
			founded,
		})
	}
	return out
}

var eventsHeader = []string{
	"event_id", "round", "kickoff_ts", "kickoff_utc",
	"status_type", "status_description",
	"home_team", "home_team_id", "away_team", "away_team_id",
	"home_score", "away_score",
}

func eventRows(records []fixture.Record) [][]string {
	out := make([][]string, 0, len(records))
	for _, r := range records {
		out = append(out, []string{
			strconv.FormatInt(r.EventID, 10),
			optInt(r.Round),
			strconv.FormatInt(r.KickoffUnix, 10),
			r.KickoffUTC(),
			r.StatusType,
			r.StatusDescription,
			r.HomeTeam,
			strconv.FormatInt(r.HomeTeamID, 10),
			r.AwayTeam,
			strconv.FormatInt(r.AwayTeamID, 10),
			optInt(r.HomeScore),
			optInt(r.AwayScore),
		})
	}
	return out
}

func optInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
