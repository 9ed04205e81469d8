package usecase

import (
	"context"
	"fmt"

	"github.com/igorxl1/leaguepull/internal/domain/fixture"
	"github.com/igorxl1/leaguepull/internal/domain/playerstats"
	"github.com/igorxl1/leaguepull/internal/domain/season"
	"github.com/igorxl1/leaguepull/internal/platform/logging"
)

// FallbackCapability is the external scraping capability, kept opaque
// behind the four operations the acquisition flow needs. Matches come
// back as raw dicts; flattening them is this layer's job.
type FallbackCapability interface {
	ListLeagues(ctx context.Context) ([]string, error)
	ListSeasons(ctx context.Context, league string) (map[string]int64, error)
	Matches(ctx context.Context, league, seasonKey string) ([]map[string]any, error)
	PlayerStats(ctx context.Context, league, seasonKey, accumulation string) (playerstats.Table, error)
}

// CapabilityFactory builds the fallback capability on first use. The
// capability is only touched when the fallback branch runs, so its
// absence is a constructible error, not a startup crash.
type CapabilityFactory func() (FallbackCapability, error)

// FallbackResult carries the fallback branch's two data categories
// plus the season key that was settled on.
type FallbackResult struct {
	SeasonKey   string
	Matches     Category[[]fixture.Record]
	PlayerStats Category[playerstats.Table]
}

// FallbackService wraps the capability with season-key resolution and
// match flattening.
type FallbackService struct {
	factory    CapabilityFactory
	capability FallbackCapability
	logger     *logging.Logger
}

func NewFallbackService(factory CapabilityFactory, logger *logging.Logger) *FallbackService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackService{factory: factory, logger: logger}
}

// Capability returns the lazily constructed capability, surfacing
// construction failure as ErrMissingCapability.
func (s *FallbackService) Capability() (FallbackCapability, error) {
	if s.capability != nil {
		return s.capability, nil
	}
	if s.factory == nil {
		return nil, ErrMissingCapability
	}
	capability, err := s.factory()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingCapability, err)
	}
	s.capability = capability
	return capability, nil
}

// FetchMatchesAndStats resolves a season key and fetches both fallback
// categories. Season resolution order: the explicit key verbatim when
// given (the string form, never a parsed integer, so "24/25"
// survives), then inversion of a known season id, then the
// chronologically latest season. A league with no seasons at all fails
// with ErrNoSeasonsAvailable.
//
// The returned error covers shared prerequisites only (capability,
// league, season resolution); the two categories fail independently.
func (s *FallbackService) FetchMatchesAndStats(ctx context.Context, canonicalLeague string, knownSeasonID int64, explicitSeasonKey string) (FallbackResult, error) {
	capability, err := s.Capability()
	if err != nil {
		return FallbackResult{}, err
	}

	seasons, err := capability.ListSeasons(ctx, canonicalLeague)
	if err != nil {
		return FallbackResult{}, err
	}

	seasonKey := explicitSeasonKey
	if seasonKey == "" {
		seasonKey = invertSeasonID(seasons, knownSeasonID)
	}
	if seasonKey == "" {
		keys := make([]string, 0, len(seasons))
		for key := range seasons {
			keys = append(keys, key)
		}
		latest, ok := season.Latest(keys)
		if !ok {
			return FallbackResult{}, fmt.Errorf("%w: %q", ErrNoSeasonsAvailable, canonicalLeague)
		}
		seasonKey = latest
	}

	s.logger.InfoContext(ctx, "fallback season resolved",
		"league", canonicalLeague,
		"season_key", seasonKey,
	)

	result := FallbackResult{SeasonKey: seasonKey}

	if dicts, err := capability.Matches(ctx, canonicalLeague, seasonKey); err != nil {
		result.Matches = failed[[]fixture.Record](err)
	} else {
		records := make([]fixture.Record, 0, len(dicts))
		for _, dict := range dicts {
			records = append(records, flattenMatchDict(dict))
		}
		fixture.SortByKickoff(records)
		result.Matches = ok(records)
	}

	if table, err := capability.PlayerStats(ctx, canonicalLeague, seasonKey, "total"); err != nil {
		result.PlayerStats = failed[playerstats.Table](err)
	} else {
		result.PlayerStats = ok(table)
	}

	return result, nil
}

func invertSeasonID(seasons map[string]int64, seasonID int64) string {
	if seasonID <= 0 {
		return ""
	}
	for key, id := range seasons {
		if id == seasonID {
			return key
		}
	}
	return ""
}

// flattenMatchDict maps one raw match dict onto the shared fixture
// shape. Missing sub-objects flatten to zero values instead of
// failing the batch.
func flattenMatchDict(dict map[string]any) fixture.Record {
	record := fixture.Record{
		EventID:     dictInt64(dict, "id"),
		KickoffUnix: dictInt64(dict, "startTimestamp"),
	}
	if round, ok := dictPathInt(dict, "roundInfo", "round"); ok {
		record.Round = &round
	}
	record.StatusType, _ = dictPathString(dict, "status", "type")
	record.StatusDescription, _ = dictPathString(dict, "status", "description")
	record.HomeTeam, _ = dictPathString(dict, "homeTeam", "name")
	record.AwayTeam, _ = dictPathString(dict, "awayTeam", "name")
	if id, ok := dictPathInt64(dict, "homeTeam", "id"); ok {
		record.HomeTeamID = id
	}
	if id, ok := dictPathInt64(dict, "awayTeam", "id"); ok {
		record.AwayTeamID = id
	}
	if score, ok := dictPathInt(dict, "homeScore", "current"); ok {
		record.HomeScore = &score
	}
	if score, ok := dictPathInt(dict, "awayScore", "current"); ok {
		record.AwayScore = &score
	}
	return record
}

func dictInt64(dict map[string]any, key string) int64 {
	if value, ok := dict[key].(float64); ok {
		return int64(value)
	}
	return 0
}

func dictPath(dict map[string]any, path ...string) (any, bool) {
	var current any = dict
	for _, key := range path {
		node, isMap := current.(map[string]any)
		if !isMap {
			return nil, false
		}
		value, exists := node[key]
		if !exists {
			return nil, false
		}
		current = value
	}
	return current, true
}

func dictPathString(dict map[string]any, path ...string) (string, bool) {
	value, found := dictPath(dict, path...)
	if !found {
		return "", false
	}
	text, isString := value.(string)
	return text, isString
}

func dictPathInt(dict map[string]any, path ...string) (int, bool) {
	value, found := dictPath(dict, path...)
	if !found {
		return 0, false
	}
	number, isNumber := value.(float64)
	if !isNumber {
		return 0, false
	}
	return int(number), true
}

func dictPathInt64(dict map[string]any, path ...string) (int64, bool) {
	number, found := dictPathInt(dict, path...)
	return int64(number), found
}
