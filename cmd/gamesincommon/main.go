package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/HSAR/GamesInCommon/internal/config"
	"github.com/HSAR/GamesInCommon/internal/domain"
	"github.com/HSAR/GamesInCommon/internal/logging"
	"github.com/HSAR/GamesInCommon/internal/repository/gormdb"
	"github.com/HSAR/GamesInCommon/internal/service"
	"github.com/HSAR/GamesInCommon/internal/steam"
)

// Console front end: reads account names until FIN, computes the
// common-games set, prints names and a total.
func main() {
	filterNames := flag.String("filters", "", "comma-separated filter kinds (e.g. multiplayer,trading-cards)")
	forceWeb := flag.Bool("force-web-check", false, "re-check every game against the web, ignoring the cache")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger := logging.New(cfg.Environment, cfg.LogLevel)

	filters, err := parseFilters(*filterNames)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	db, err := gormdb.NewConnection(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	repos := gormdb.NewRepositories(db)
	if err := repos.GameFilter.SeedFilters(context.Background(), domain.AllFilterKinds()); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed filters")
	}

	client := steam.NewClient(steam.Options{
		ThrottleWait:      cfg.ThrottleWait,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, logger)
	services := service.NewServices(repos, client, logger)

	accounts := readAccounts()
	if len(accounts) == 0 {
		fmt.Fprintln(os.Stderr, "no accounts given")
		os.Exit(1)
	}

	// Ctrl-C cancels the run rather than killing the process mid-write.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := services.Comparison.Compare(ctx, service.CompareInput{
		Accounts:     accounts,
		Filters:      filters,
		ForceRefresh: *forceWeb || cfg.ForceWebCheck,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("comparison failed")
	}

	for _, warning := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: %s: %s\n", warning.Account, warning.Reason)
	}
	for _, game := range result.Games {
		fmt.Println(game.Name)
	}
	fmt.Printf("Total games in common: %d\n", len(result.Games))
}

func parseFilters(names string) ([]domain.FilterKind, error) {
	if names == "" {
		return nil, nil
	}
	var filters []domain.FilterKind
	for _, name := range strings.Split(names, ",") {
		kind, err := domain.ParseFilterKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		filters = append(filters, kind)
	}
	return filters, nil
}

func readAccounts() []string {
	fmt.Println("Enter users one by one, typing 'FIN' when complete:")

	var accounts []string
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "FIN" {
			break
		}
		if line != "" {
			accounts = append(accounts, line)
		}
	}
	return accounts
}
