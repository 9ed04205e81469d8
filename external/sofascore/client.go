package sofascore

import (
	"context"
	"fmt"
	"strings"

	errors "github.com/cockroachdb/errors"

	"github.com/igorxl1/leaguepull/internal/domain/fixture"
	"github.com/igorxl1/leaguepull/internal/domain/standings"
	"github.com/igorxl1/leaguepull/internal/domain/team"
	"github.com/igorxl1/leaguepull/internal/platform/logging"
	"github.com/igorxl1/leaguepull/internal/platform/webclient"
)

const DefaultBaseURL = "https://api.sofascore.com/api/v1"

// Client is the primary data source: the direct JSON API keyed by
// (tournamentId, seasonId).
type Client struct {
	web     *webclient.Client
	baseURL string
	logger  *logging.Logger
}

func NewClient(web *webclient.Client, baseURL string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{web: web, baseURL: baseURL, logger: logger}
}

// FetchTournamentName is best-effort: it exists only to guess a league
// name for the fallback branch, so every failure collapses to "".
func (c *Client) FetchTournamentName(ctx context.Context, tournamentID int64) string {
	url := fmt.Sprintf("%s/unique-tournament/%d", c.baseURL, tournamentID)
	var envelope tournamentInfoEnvelope
	if err := c.web.GetJSON(ctx, url, &envelope); err != nil {
		c.logger.DebugContext(ctx, "tournament info lookup failed", "tournament_id", tournamentID, "error", err)
		return ""
	}
	return strings.TrimSpace(envelope.UniqueTournament.Name)
}

// FetchStandings flattens the nested group/rows/team structure into
// flat rows. Transport failures propagate; they abort the primary
// path.
func (c *Client) FetchStandings(ctx context.Context, tournamentID, seasonID int64) ([]standings.Row, error) {
	url := fmt.Sprintf("%s/unique-tournament/%d/season/%d/standings", c.baseURL, tournamentID, seasonID)
	var envelope standingsEnvelope
	if err := c.web.GetJSON(ctx, url, &envelope); err != nil {
		return nil, fmt.Errorf("fetch standings tournament_id=%d season_id=%d: %w", tournamentID, seasonID, err)
	}

	rows := make([]standings.Row, 0, 32)
	for _, block := range envelope.Standings {
		group := block.Name
		if group == "" {
			group = block.Type
		}
		for _, row := range block.Rows {
			out := standings.Row{
				Group:        group,
				Position:     row.Position,
				Played:       row.Matches,
				Wins:         row.Wins,
				Draws:        row.Draws,
				Losses:       row.Losses,
				GoalsFor:     pickInt(row.ScoresFor, row.GoalsFor),
				GoalsAgainst: pickInt(row.ScoresAgainst, row.GoalsAgainst),
				GoalDiff:     pickInt(row.ScoreDiff, row.GoalDiff),
				Points:       row.Points,
			}
			if row.Team != nil {
				out.Team = row.Team.Name
				out.TeamID = row.Team.ID
			}
			rows = append(rows, out)
		}
	}
	return rows, nil
}

// FetchTeams flattens the nested country sub-object. Transport
// failures propagate.
func (c *Client) FetchTeams(ctx context.Context, tournamentID, seasonID int64) ([]team.Record, error) {
	url := fmt.Sprintf("%s/unique-tournament/%d/season/%d/teams", c.baseURL, tournamentID, seasonID)
	var envelope teamsEnvelope
	if err := c.web.GetJSON(ctx, url, &envelope); err != nil {
		return nil, fmt.Errorf("fetch teams tournament_id=%d season_id=%d: %w", tournamentID, seasonID, err)
	}

	records := make([]team.Record, 0, len(envelope.Teams))
	for _, item := range envelope.Teams {
		record := team.Record{
			ID:      item.ID,
			Name:    item.Name,
			Slug:    item.Slug,
			City:    item.City,
			Founded: item.Founded,
		}
		if item.Country != nil {
			record.Country = item.Country.Name
			record.CountryCode = item.Country.Alpha2
		}
		records = append(records, record)
	}
	return records, nil
}

// FetchEvents soft-fails: event data is optional, so a transport
// failure collapses to an empty result instead of aborting the
// primary path. Events come back sorted ascending by kickoff.
func (c *Client) FetchEvents(ctx context.Context, tournamentID, seasonID int64) ([]fixture.Record, error) {
	url := fmt.Sprintf("%s/unique-tournament/%d/season/%d/events", c.baseURL, tournamentID, seasonID)
	var envelope eventsEnvelope
	if err := c.web.GetJSON(ctx, url, &envelope); err != nil {
		if errors.Is(err, webclient.ErrTransport) {
			c.logger.WarnContext(ctx, "events unavailable, continuing without them",
				"tournament_id", tournamentID,
				"season_id", seasonID,
				"error", err,
			)
			return []fixture.Record{}, nil
		}
		return nil, err
	}

	records := make([]fixture.Record, 0, len(envelope.Events))
	for _, item := range envelope.Events {
		records = append(records, flattenEvent(item))
	}
	fixture.SortByKickoff(records)
	return records, nil
}

func flattenEvent(item eventItem) fixture.Record {
	record := fixture.Record{
		EventID:     item.ID,
		KickoffUnix: item.StartTimestamp,
	}
	if item.RoundInfo != nil {
		record.Round = item.RoundInfo.Round
	}
	if item.Status != nil {
		record.StatusType = item.Status.Type
		record.StatusDescription = item.Status.Description
	}
	if item.HomeTeam != nil {
		record.HomeTeam = item.HomeTeam.Name
		record.HomeTeamID = item.HomeTeam.ID
	}
	if item.AwayTeam != nil {
		record.AwayTeam = item.AwayTeam.Name
		record.AwayTeamID = item.AwayTeam.ID
	}
	if item.HomeScore != nil {
		record.HomeScore = item.HomeScore.Current
	}
	if item.AwayScore != nil {
		record.AwayScore = item.AwayScore.Current
	}
	return record
}

func pickInt(preferred, fallback *int) int {
	if preferred != nil {
		return *preferred
	}
	if fallback != nil {
		return *fallback
	}
	return 0
}
