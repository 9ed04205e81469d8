package usecase

import (
	"context"
	"fmt"

	"github.com/igorxl1/leaguepull/internal/domain/fixture"
	"github.com/igorxl1/leaguepull/internal/domain/league"
	"github.com/igorxl1/leaguepull/internal/domain/playerstats"
	"github.com/igorxl1/leaguepull/internal/domain/standings"
	"github.com/igorxl1/leaguepull/internal/domain/team"
	"github.com/igorxl1/leaguepull/internal/platform/logging"
)

// TournamentRef identifies one tournament season at the primary API.
// Parsed from a URL, immutable, scoped to a single acquisition run.
type TournamentRef struct {
	TournamentID int64
	SeasonID     int64
}

// ReferenceParser turns a tournament URL into a TournamentRef. Must
// fail with ErrMalformedReference when either id is absent.
type ReferenceParser func(rawURL string) (TournamentRef, error)

// PrimaryProvider is the direct JSON API route.
type PrimaryProvider interface {
	FetchTournamentName(ctx context.Context, tournamentID int64) string
	FetchStandings(ctx context.Context, tournamentID, seasonID int64) ([]standings.Row, error)
	FetchTeams(ctx context.Context, tournamentID, seasonID int64) ([]team.Record, error)
	FetchEvents(ctx context.Context, tournamentID, seasonID int64) ([]fixture.Record, error)
}

// FallbackProvider is the scraping-capability route.
type FallbackProvider interface {
	FetchMatchesAndStats(ctx context.Context, canonicalLeague string, knownSeasonID int64, explicitSeasonKey string) (FallbackResult, error)
}

// Request is one acquisition run. A URL drives the primary path; when
// it is absent the caller must supply a league (interactive path) and
// the run goes straight to the fallback branch.
type Request struct {
	URL       string
	League    string
	SeasonKey string
}

// Outcome aggregates per-category results across both paths. Each
// category stands alone: one category failing or coming back empty
// never blocks another's export.
type Outcome struct {
	Ref        *TournamentRef
	PrimaryErr error

	Standings Category[[]standings.Row]
	Teams     Category[[]team.Record]
	Events    Category[[]fixture.Record]

	FallbackLeague    string
	FallbackSeasonKey string
	Matches           Category[[]fixture.Record]
	PlayerStats       Category[playerstats.Table]
}

// UsedFallback reports whether the fallback branch ran.
func (o Outcome) UsedFallback() bool {
	return o.Matches.Attempted || o.PlayerStats.Attempted
}

// AcquisitionService drives one run through the state machine:
// resolve reference, try the primary API, and on standings/teams
// failure hand off to the fallback exactly once.
type AcquisitionService struct {
	parseRef ReferenceParser
	primary  PrimaryProvider
	fallback FallbackProvider
	resolver *league.Resolver
	logger   *logging.Logger
}

func NewAcquisitionService(
	parseRef ReferenceParser,
	primary PrimaryProvider,
	fallback FallbackProvider,
	resolver *league.Resolver,
	logger *logging.Logger,
) *AcquisitionService {
	if logger == nil {
		logger = logging.Default()
	}
	if resolver == nil {
		resolver = league.NewDefaultResolver()
	}
	return &AcquisitionService{
		parseRef: parseRef,
		primary:  primary,
		fallback: fallback,
		resolver: resolver,
		logger:   logger,
	}
}

// Run executes one acquisition. The returned error is branch-fatal
// only: a malformed URL, an unresolvable league, or a fallback
// prerequisite failure. A failed primary path with a successful
// fallback is not an error; the Outcome records what happened.
func (s *AcquisitionService) Run(ctx context.Context, req Request) (Outcome, error) {
	out := Outcome{}

	if req.URL != "" {
		ref, err := s.parseRef(req.URL)
		if err != nil {
			return out, err
		}
		out.Ref = &ref

		if s.tryPrimary(ctx, &out) {
			return out, nil
		}
		s.logger.WarnContext(ctx, "primary api failed, switching to fallback", "error", out.PrimaryErr)
	}

	return s.tryFallback(ctx, req, out)
}

// tryPrimary attempts standings, teams, and events in sequence.
// Standings or teams failing aborts the whole primary path; events
// never do.
func (s *AcquisitionService) tryPrimary(ctx context.Context, out *Outcome) bool {
	ref := *out.Ref

	rows, err := s.primary.FetchStandings(ctx, ref.TournamentID, ref.SeasonID)
	if err != nil {
		out.PrimaryErr = err
		return false
	}
	teams, err := s.primary.FetchTeams(ctx, ref.TournamentID, ref.SeasonID)
	if err != nil {
		out.PrimaryErr = err
		return false
	}

	standings.Sort(rows)
	out.Standings = ok(rows)
	out.Teams = ok(teams)

	// Events are optional: a failure here marks the category and
	// nothing else. Standings and teams are already in hand.
	if events, err := s.primary.FetchEvents(ctx, ref.TournamentID, ref.SeasonID); err != nil {
		s.logger.WarnContext(ctx, "events fetch failed, keeping standings and teams", "error", err)
		out.Events = failed[[]fixture.Record](err)
	} else {
		out.Events = ok(events)
	}
	return true
}

// tryFallback derives a canonical league name, delegates to the
// fallback provider once, and never loops back to the primary.
func (s *AcquisitionService) tryFallback(ctx context.Context, req Request, out Outcome) (Outcome, error) {
	leagueName := s.resolver.Normalize(req.League)
	if leagueName == "" && out.Ref != nil {
		leagueName = s.resolver.Normalize(s.primary.FetchTournamentName(ctx, out.Ref.TournamentID))
	}
	if leagueName == "" {
		return out, fmt.Errorf("%w: pass an explicit league name or run without a url to pick one", ErrUnresolvableLeague)
	}
	out.FallbackLeague = leagueName

	var knownSeasonID int64
	if out.Ref != nil {
		knownSeasonID = out.Ref.SeasonID
	}

	result, err := s.fallback.FetchMatchesAndStats(ctx, leagueName, knownSeasonID, req.SeasonKey)
	if err != nil {
		return out, err
	}

	out.FallbackSeasonKey = result.SeasonKey
	out.Matches = result.Matches
	out.PlayerStats = result.PlayerStats
	return out, nil
}
