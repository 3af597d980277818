package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/seabattle/api"
	"github.com/saeidalz13/seabattle/db"
	"github.com/saeidalz13/seabattle/db/sqlc"
	"github.com/saeidalz13/seabattle/internal/config"
	"github.com/saeidalz13/seabattle/internal/console"
	"github.com/saeidalz13/seabattle/internal/logger"
	mb "github.com/saeidalz13/seabattle/models/battleship"
)

const (
	modeInteractive = "interactive"
	modeSimulate    = "simulate"
)

// app holds everything a single game needs besides its strategies.
type app struct {
	cfg       *config.Config
	rng       *rand.Rand
	games     *mb.BattleshipGameManager
	spectator *api.Spectator
	analytics *sqlc.AnalyticsManager
}

func main() {
	mode := flag.String("mode", modeInteractive, "interactive|simulate")
	matches := flag.Int("matches", 100, "number of games in simulate mode")
	flag.Parse()

	cfg := config.Load()
	closeLog := logger.Init(cfg.Stage, cfg.LogLevel)
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}

	switch *mode {
	case modeInteractive:
		err = a.playInteractive(ctx)
	case modeSimulate:
		err = a.simulate(ctx, *matches)
	default:
		log.Fatal().Str("mode", *mode).Msg("mode must be either interactive or simulate")
	}

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
		log.Fatal().Err(err).Msg("game failed")
	}
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	log.Debug().Int64("seed", seed).Str("fleet", cfg.Fleet.String()).Msg("seeded")

	// The generator locks its own rng; strategies and pacing share the
	// other one on the game goroutine.
	pg, err := mb.NewPlacementGenerator(
		mb.WithRand(rand.New(rand.NewSource(rng.Int63()))),
		mb.WithMaxAttempts(cfg.MaxPlacementAttempts),
		mb.WithMaxRestarts(cfg.MaxPlacementRestarts),
	)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:   cfg,
		rng:   rng,
		games: mb.NewBattleshipGameManager(pg),
	}

	if cfg.DatabaseURL != "" {
		sqlDb, err := db.ConnectToDb(cfg.DatabaseURL, cfg.MigrationDir)
		if err != nil {
			return nil, err
		}
		go func() {
			<-ctx.Done()
			_ = sqlDb.Close()
		}()

		ipnet, err := sqlc.ResolveServerIpNet()
		if err != nil {
			return nil, err
		}
		a.analytics = sqlc.NewDbManager(sqlDb, ipnet).Analytics
	}

	if cfg.Port != "" {
		server, err := api.NewServer(api.WithPort(cfg.Port), api.WithStage(cfg.Stage))
		if err != nil {
			return nil, err
		}
		a.spectator = server.Spectator()

		go func() {
			if err := server.Run(ctx); err != nil {
				log.Error().Err(err).Msg("spectator server stopped")
			}
		}()
	}

	return a, nil
}

func (a *app) newGame(ctx context.Context, host, join mb.Strategy) (*mb.Game, error) {
	var optFuncs []mb.GameOption
	if a.cfg.MaxTargetRetries > 0 {
		optFuncs = append(optFuncs, mb.WithTargetRetries(a.cfg.MaxTargetRetries))
	}

	game, err := a.games.CreateGame(ctx, a.cfg.Fleet, host, join, optFuncs...)
	if err != nil {
		return nil, err
	}

	if a.spectator != nil {
		a.spectator.Watch(game)
	}
	if a.analytics != nil {
		if err := a.analytics.IncrementGamesCreatedCount(ctx); err != nil {
			// analytics never stop a game
			log.Warn().Err(err).Msg("failed to count created game")
		}
	}
	return game, nil
}

func (a *app) finishGame(ctx context.Context, game *mb.Game) {
	defer a.games.TerminateGame(game.Uuid())

	if a.analytics == nil || !game.IsOver() {
		return
	}
	if _, err := a.analytics.RecordMatch(ctx, game); err != nil {
		log.Warn().Err(err).Str("game", game.Uuid()).Msg("failed to record match")
	}
}

func (a *app) playInteractive(ctx context.Context) error {
	reader := console.NewReader(os.Stdin, os.Stdout, "Enter row and column: ")
	host := mb.NewInteractiveStrategy(reader)
	join := mb.NewRandomStrategy(a.rng)

	game, err := a.newGame(ctx, host, join)
	if err != nil {
		return err
	}
	defer a.finishGame(ctx, game)

	printer := console.NewPrinter(os.Stdout)
	printer.Attach(game)
	printer.Rules()
	printer.Boards()

	for !game.IsOver() {
		side := game.ActiveSide()
		printer.Turn(side)

		if side == mb.SideJoin {
			if err := a.pace(ctx); err != nil {
				return err
			}
		}

		result, err := game.Step()
		if err != nil {
			return err
		}
		if !result.GameOver {
			printer.Boards()
		}
	}
	return nil
}

// Waits a random time between the configured bounds so the computer's
// moves can be followed.
func (a *app) pace(ctx context.Context) error {
	delay := a.cfg.AIDelayMin
	if spread := a.cfg.AIDelayMax - a.cfg.AIDelayMin; spread > 0 {
		delay += time.Duration(a.rng.Int63n(int64(spread)))
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (a *app) simulate(ctx context.Context, matches int) error {
	tally := make(map[mb.Side]int, 2)
	shots := 0

	for i := 0; i < matches; i++ {
		game, err := a.newGame(ctx, mb.NewRandomStrategy(a.rng), mb.NewRandomStrategy(a.rng))
		if err != nil {
			return err
		}

		winner, err := game.RunToCompletion(ctx)
		a.finishGame(ctx, game)
		if err != nil {
			return err
		}

		tally[winner]++
		shots += game.TotalShots()
	}

	avgShots := 0.0
	if matches > 0 {
		avgShots = float64(shots) / float64(matches)
	}
	log.Info().
		Int("matches", matches).
		Int("host_wins", tally[mb.SideHost]).
		Int("join_wins", tally[mb.SideJoin]).
		Float64("avg_shots", avgShots).
		Msg("simulation finished")

	if a.analytics != nil {
		wins, err := a.analytics.WinsBySide(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("failed to read recorded wins")
			return nil
		}
		log.Info().
			Int64("host_wins", wins[mb.SideHost]).
			Int64("join_wins", wins[mb.SideJoin]).
			Msg("recorded wins on this host")
	}
	return nil
}
