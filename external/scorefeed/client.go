package scorefeed

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/igorxl1/leaguepull/internal/domain/playerstats"
	"github.com/igorxl1/leaguepull/internal/platform/cache"
	"github.com/igorxl1/leaguepull/internal/platform/logging"
	"github.com/igorxl1/leaguepull/internal/platform/webclient"
)

const (
	// The fallback source is the same upstream the primary API talks
	// to, reached through the scraping-style season/listing surface
	// instead of the tournament/season pair.
	DefaultBaseURL = "https://api.sofascore.com/api/v1"

	statsPageSize = 100
	maxPages      = 50

	seasonsCacheTTL = 10 * time.Minute
)

// ErrUnknownLeague means the requested canonical name is not in the
// supported-league registry. League-name validation happens here, at
// the capability boundary, not upstream of it.
var ErrUnknownLeague = crerr.New("league not supported by fallback source")

// Client implements the fallback capability: league listing, season
// discovery, match dicts, and accumulated player statistics.
type Client struct {
	web     *webclient.Client
	baseURL string
	logger  *logging.Logger
	seasons *cache.Store
}

func NewClient(web *webclient.Client, baseURL string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		web:     web,
		baseURL: baseURL,
		logger:  logger,
		seasons: cache.NewStore(seasonsCacheTTL),
	}
}

func (c *Client) ListLeagues(_ context.Context) ([]string, error) {
	return SupportedLeagues(), nil
}

// ListSeasons returns the seasonKey -> seasonId mapping for a league.
// Keys keep their upstream string form ("2024" or "24/25"). Lookups
// are cached per league.
func (c *Client) ListSeasons(ctx context.Context, league string) (map[string]int64, error) {
	tournamentID, ok := tournamentIDByLeague[league]
	if !ok {
		return nil, crerr.WithDetailf(ErrUnknownLeague, "league %q", league)
	}

	value, err := c.seasons.GetOrLoad(ctx, "seasons:"+league, func(ctx context.Context) (any, error) {
		return c.fetchSeasons(ctx, league, tournamentID)
	})
	if err != nil {
		return nil, err
	}
	return value.(map[string]int64), nil
}

func (c *Client) fetchSeasons(ctx context.Context, league string, tournamentID int64) (map[string]int64, error) {
	url := fmt.Sprintf("%s/unique-tournament/%d/seasons", c.baseURL, tournamentID)
	var envelope seasonsEnvelope
	if err := c.web.GetJSON(ctx, url, &envelope); err != nil {
		return nil, fmt.Errorf("list seasons for %q: %w", league, err)
	}

	seasons := make(map[string]int64, len(envelope.Seasons))
	for _, item := range envelope.Seasons {
		key := strings.TrimSpace(item.Year)
		if key == "" || item.ID <= 0 {
			continue
		}
		seasons[key] = item.ID
	}
	return seasons, nil
}

// Matches returns the raw match dicts of one (league, seasonKey)
// pair, accumulated across the paged schedule.
func (c *Client) Matches(ctx context.Context, league, seasonKey string) ([]map[string]any, error) {
	tournamentID, seasonID, err := c.resolveSeason(ctx, league, seasonKey)
	if err != nil {
		return nil, err
	}

	matches := make([]map[string]any, 0, 128)
	for page := 0; page < maxPages; page++ {
		url := fmt.Sprintf("%s/unique-tournament/%d/season/%d/events/last/%d", c.baseURL, tournamentID, seasonID, page)
		var envelope eventsPage
		if err := c.web.GetJSON(ctx, url, &envelope); err != nil {
			return nil, fmt.Errorf("fetch matches page %d for %q %s: %w", page, league, seasonKey, err)
		}
		matches = append(matches, envelope.Events...)
		if !envelope.HasNextPage {
			break
		}
	}
	return matches, nil
}

// PlayerStats returns the accumulated player statistics table for one
// (league, seasonKey) pair. The column schema is owned by the
// upstream; it is passed through unchanged.
func (c *Client) PlayerStats(ctx context.Context, league, seasonKey, accumulation string) (playerstats.Table, error) {
	tournamentID, seasonID, err := c.resolveSeason(ctx, league, seasonKey)
	if err != nil {
		return playerstats.Table{}, err
	}
	if accumulation == "" {
		accumulation = "total"
	}

	results := make([]map[string]any, 0, statsPageSize)
	for page := 0; page < maxPages; page++ {
		url := fmt.Sprintf("%s/unique-tournament/%d/season/%d/statistics?limit=%d&offset=%d&accumulation=%s",
			c.baseURL, tournamentID, seasonID, statsPageSize, page*statsPageSize, accumulation)
		var envelope statsPage
		if err := c.web.GetJSON(ctx, url, &envelope); err != nil {
			return playerstats.Table{}, fmt.Errorf("fetch player stats page %d for %q %s: %w", page, league, seasonKey, err)
		}
		results = append(results, envelope.Results...)
		if envelope.Page >= envelope.Pages {
			break
		}
	}
	return buildStatsTable(results), nil
}

func (c *Client) resolveSeason(ctx context.Context, league, seasonKey string) (int64, int64, error) {
	tournamentID, ok := tournamentIDByLeague[league]
	if !ok {
		return 0, 0, crerr.WithDetailf(ErrUnknownLeague, "league %q", league)
	}
	seasons, err := c.ListSeasons(ctx, league)
	if err != nil {
		return 0, 0, err
	}
	seasonID, ok := seasons[strings.TrimSpace(seasonKey)]
	if !ok {
		return 0, 0, fmt.Errorf("season %q is not available for %q", seasonKey, league)
	}
	return tournamentID, seasonID, nil
}

type seasonsEnvelope struct {
	Seasons []struct {
		Year string `json:"year"`
		ID   int64  `json:"id"`
	} `json:"seasons"`
}

type eventsPage struct {
	Events      []map[string]any `json:"events"`
	HasNextPage bool             `json:"hasNextPage"`
}

type statsPage struct {
	Results []map[string]any `json:"results"`
	Page    int              `json:"page"`
	Pages   int              `json:"pages"`
}

// buildStatsTable flattens heterogeneous result dicts into a tabular
// form. Nested objects contribute dotted columns (player.name); the
// column set is the sorted union across rows so optional fields keep
// their place.
func buildStatsTable(results []map[string]any) playerstats.Table {
	if len(results) == 0 {
		return playerstats.Table{}
	}

	flattened := make([]map[string]string, 0, len(results))
	columnSet := make(map[string]struct{}, 32)
	for _, result := range results {
		row := make(map[string]string, len(result))
		flattenInto(row, "", result)
		for column := range row {
			columnSet[column] = struct{}{}
		}
		flattened = append(flattened, row)
	}

	columns := make([]string, 0, len(columnSet))
	for column := range columnSet {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	rows := make([][]string, 0, len(flattened))
	for _, row := range flattened {
		record := make([]string, len(columns))
		for i, column := range columns {
			record[i] = row[column]
		}
		rows = append(rows, record)
	}
	return playerstats.Table{Columns: columns, Rows: rows}
}

func flattenInto(dst map[string]string, prefix string, value map[string]any) {
	for key, item := range value {
		column := key
		if prefix != "" {
			column = prefix + "." + key
		}
		switch typed := item.(type) {
		case map[string]any:
			flattenInto(dst, column, typed)
		case nil:
			dst[column] = ""
		default:
			dst[column] = stringifyValue(typed)
		}
	}
}

func stringifyValue(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
