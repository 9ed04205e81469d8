// Command leaguepull pulls football competition data and writes it to
// CSV files.
//
// Usage:
//
//	leaguepull --url "https://www.sofascore.com/tournament/football/england/premier-league/17#id:61627"
//	leaguepull --league "EPL" --year "24/25" --out ./data
//	leaguepull leagues
//	leaguepull aliases
//
// Without --url or --league the command prompts for a league and a
// season interactively.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/igorxl1/leaguepull/external/scorefeed"
	"github.com/igorxl1/leaguepull/external/sofascore"
	"github.com/igorxl1/leaguepull/internal/config"
	"github.com/igorxl1/leaguepull/internal/domain/league"
	"github.com/igorxl1/leaguepull/internal/domain/season"
	"github.com/igorxl1/leaguepull/internal/export"
	"github.com/igorxl1/leaguepull/internal/platform/logging"
	"github.com/igorxl1/leaguepull/internal/platform/webclient"
	"github.com/igorxl1/leaguepull/internal/usecase"
)

func main() {
	_ = godotenv.Load(".env")

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		rawURL     string
		leagueName string
		seasonKey  string
		outDir     string
	)

	cmd := &cobra.Command{
		Use:           "leaguepull",
		Short:         "Pull football standings, teams, fixtures and player stats into CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if outDir != "" {
				cfg.OutputDir = outDir
			}

			logger := newLogger(cfg)
			defer logger.Sync()
			logging.SetDefault(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			deps := buildDeps(cfg, logger)

			req := usecase.Request{URL: rawURL, League: leagueName, SeasonKey: seasonKey}
			if req.URL == "" && req.League == "" {
				req, err = promptForRequest(ctx, deps.fallbackService, bufio.NewReader(os.Stdin), cmd.OutOrStdout())
				if err != nil {
					return err
				}
			}

			outcome, err := deps.acquisition.Run(ctx, req)
			if err != nil {
				return err
			}

			written, err := export.NewWriter(cfg.OutputDir, logger).WriteOutcome(outcome)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), outcome, written)
			return nil
		},
	}

	cmd.Flags().StringVar(&rawURL, "url", "", "tournament URL, e.g. https://www.sofascore.com/tournament/football/england/premier-league/17#id:61627")
	cmd.Flags().StringVar(&leagueName, "league", "", "league name or alias for the fallback route")
	cmd.Flags().StringVar(&seasonKey, "year", "", `season key, e.g. "2024" or "24/25"`)
	cmd.Flags().StringVar(&outDir, "out", "", "output directory for CSV files (default: LEAGUEPULL_OUTPUT_DIR or .)")

	cmd.AddCommand(leaguesCmd())
	cmd.AddCommand(aliasesCmd())
	return cmd
}

func leaguesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List the league names the fallback route can scrape",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scorefeed.SupportedLeagues() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func aliasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "aliases",
		Short: "List accepted league aliases and their canonical names",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, pair := range league.NewDefaultResolver().Aliases() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-45s -> %s\n", pair[0], pair[1])
			}
			return nil
		},
	}
}

type deps struct {
	acquisition     *usecase.AcquisitionService
	fallbackService *usecase.FallbackService
}

func buildDeps(cfg config.Config, logger *logging.Logger) deps {
	web := webclient.New(webclient.Config{
		HTTPClient:    &http.Client{Timeout: cfg.HTTPTimeout},
		Profiles:      webclient.DefaultProfiles(),
		MaxRetries:    cfg.MaxRetries,
		BackoffBase:   cfg.BackoffBase,
		RotationDelay: cfg.RotationDelay,
		Logger:        logger,
	})

	primary := sofascore.NewClient(web, cfg.APIBaseURL, logger)

	var factory usecase.CapabilityFactory
	if cfg.FallbackEnabled {
		factory = func() (usecase.FallbackCapability, error) {
			return scorefeed.NewClient(web, cfg.APIBaseURL, logger), nil
		}
	}
	fallbackService := usecase.NewFallbackService(factory, logger)

	return deps{
		acquisition: usecase.NewAcquisitionService(
			sofascore.ParseTournamentURL,
			primary,
			fallbackService,
			league.NewDefaultResolver(),
			logger,
		),
		fallbackService: fallbackService,
	}
}

func newLogger(cfg config.Config) *logging.Logger {
	if cfg.LogJSON {
		return logging.NewJSON(cfg.LogLevel)
	}
	return logging.NewConsole(cfg.LogLevel)
}

// promptForRequest walks the user through a league and season choice.
// Seasons are shown newest first; an empty answer takes the first
// entry.
func promptForRequest(ctx context.Context, fallback *usecase.FallbackService, in *bufio.Reader, out io.Writer) (usecase.Request, error) {
	capability, err := fallback.Capability()
	if err != nil {
		return usecase.Request{}, err
	}

	leagues, err := capability.ListLeagues(ctx)
	if err != nil {
		return usecase.Request{}, err
	}
	fmt.Fprintln(out, "Available leagues:")
	for i, name := range leagues {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, name)
	}

	// A league without seasons sends the user back to the league
	// prompt instead of aborting the run.
	var chosenLeague string
	var keys []string
	for len(keys) == 0 {
		leagueIdx, err := promptIndex(in, out, "League number: ", len(leagues), 0)
		if err != nil {
			return usecase.Request{}, err
		}
		chosenLeague = leagues[leagueIdx]

		seasons, err := capability.ListSeasons(ctx, chosenLeague)
		if err != nil {
			return usecase.Request{}, err
		}
		keys = make([]string, 0, len(seasons))
		for key := range seasons {
			keys = append(keys, key)
		}
		if len(keys) == 0 {
			fmt.Fprintf(out, "no seasons available for %s, pick another league\n", chosenLeague)
		}
	}
	season.SortDescending(keys)

	fmt.Fprintln(out, "Available seasons:")
	for i, key := range keys {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, key)
	}
	seasonIdx, err := promptIndex(in, out, "Season number (enter for latest): ", len(keys), 1)
	if err != nil {
		return usecase.Request{}, err
	}

	return usecase.Request{League: chosenLeague, SeasonKey: keys[seasonIdx]}, nil
}

func promptIndex(in *bufio.Reader, out io.Writer, prompt string, count, defaultOneBased int) (int, error) {
	for {
		fmt.Fprint(out, prompt)
		line, err := in.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("read choice: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" && defaultOneBased > 0 {
			return defaultOneBased - 1, nil
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= count {
			return n - 1, nil
		}
		fmt.Fprintf(out, "enter a number between 1 and %d\n", count)
	}
}

func printSummary(out io.Writer, outcome usecase.Outcome, written []string) {
	if outcome.UsedFallback() {
		fmt.Fprintf(out, "fallback route used (league %q, season %q)\n", outcome.FallbackLeague, outcome.FallbackSeasonKey)
		if outcome.PrimaryErr != nil {
			fmt.Fprintf(out, "primary api failed: %v\n", outcome.PrimaryErr)
		}
	}
	reportCategory(out, "standings", outcome.Standings.Failed(), outcome.Standings.Err, outcome.Standings.OK() && len(outcome.Standings.Data) == 0)
	reportCategory(out, "teams", outcome.Teams.Failed(), outcome.Teams.Err, outcome.Teams.OK() && len(outcome.Teams.Data) == 0)
	reportCategory(out, "events", outcome.Events.Failed(), outcome.Events.Err, outcome.Events.OK() && len(outcome.Events.Data) == 0)
	reportCategory(out, "fallback matches", outcome.Matches.Failed(), outcome.Matches.Err, outcome.Matches.OK() && len(outcome.Matches.Data) == 0)
	reportCategory(out, "player stats", outcome.PlayerStats.Failed(), outcome.PlayerStats.Err, outcome.PlayerStats.OK() && outcome.PlayerStats.Data.Empty())
	if len(written) == 0 {
		fmt.Fprintln(out, "no data to write")
		return
	}
	for _, path := range written {
		fmt.Fprintf(out, "wrote %s\n", path)
	}
}

func reportCategory(out io.Writer, name string, isFailed bool, err error, isEmpty bool) {
	switch {
	case isFailed:
		fmt.Fprintf(out, "%s failed: %v\n", name, err)
	case isEmpty:
		fmt.Fprintf(out, "%s: no data for this season\n", name)
	}
}
