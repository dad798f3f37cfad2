package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/lazharichir/drawpoker/config"
	"github.com/lazharichir/drawpoker/console"
	"github.com/lazharichir/drawpoker/domain"
	"github.com/lazharichir/drawpoker/history"
	"github.com/lazharichir/drawpoker/server"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
}

// game holds what outlives a single game: the terminal, the settings and the outer services
type game struct {
	cfg       *config.Config
	in        *console.LineReader
	out       *console.Presenter
	setup     *console.Setup
	logger    *logrus.Logger
	publisher *history.Publisher
	spectate  *server.Server
}

func run() error {
	help := flag.Bool("h", false, "list the environment variables and exit")
	flag.Parse()
	if *help {
		usage, err := config.Usage()
		if err != nil {
			return err
		}
		fmt.Println(usage)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printBanner()

	in := console.NewLineReader(os.Stdin)
	out := console.NewPresenter(os.Stdout, console.WithClearScreen())
	g := &game{
		cfg:    cfg,
		in:     in,
		out:    out,
		setup:  console.NewSetup(in, out),
		logger: logger,
	}

	if err := g.setup.CompleteSettings(ctx, cfg); err != nil {
		return quietly(err)
	}

	if cfg.RedisAddr != "" {
		rdb, err := history.ConnectRedis(cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			out.Warning("Action queue disabled: %v", err)
		} else {
			defer rdb.Close()
			g.publisher = history.NewPublisher(rdb, cfg.RedisQueue, logger)
			defer g.publisher.Close()
			out.Info("Publishing actions to redis list %s", cfg.RedisQueue)
		}
	}

	if cfg.SpectatorAddr != "" {
		g.spectate = server.NewServer("", nil, logger)
		go func() {
			if err := g.spectate.Start(ctx, cfg.SpectatorAddr); err != nil {
				logger.WithError(err).Error("spectator server stopped")
			}
		}()
		out.Info("Spectators can watch on ws://%s/ws", cfg.SpectatorAddr)
	}

	for {
		if err := g.play(ctx); err != nil {
			return quietly(err)
		}

		again, err := g.setup.PlayAgain(ctx)
		if err != nil || !again {
			return quietly(err)
		}
	}
}

// play runs one game from seating to the last player standing
func (g *game) play(ctx context.Context) error {
	table := domain.NewTable("", g.cfg.Rules(), console.NewDecider(g.in, g.out), domain.WithLogger(g.logger))

	recorder := history.NewRecorder(table.Name)
	table.RegisterEventHandler(recorder.HandleEvent)
	table.RegisterEventHandler(history.LogHandler(g.logger))
	table.RegisterEventHandler(g.out.HandleEvent)
	if g.publisher != nil {
		table.RegisterEventHandler(g.publisher.HandleEvent)
	}
	if g.spectate != nil {
		g.spectate.Follow(table.ID, table.Store())
		table.RegisterEventHandler(g.spectate.HandleEvent)
	}

	g.out.Section("Table " + table.Name)
	if err := g.setup.SeatPlayers(ctx, table, g.cfg); err != nil {
		return err
	}

	winner, err := table.PlayUntilWinner(ctx)
	defer g.saveLog(recorder)

	g.out.ShowStandings(table.BuildView(0).Players)
	if err != nil {
		return err
	}

	g.logger.WithFields(logrus.Fields{
		"table":  table.Name,
		"winner": winner.Name,
		"hands":  table.HandsPlayed,
	}).Info("game over")
	return nil
}

func (g *game) saveLog(recorder *history.Recorder) {
	g.out.Println(recorder.Dump())
	if g.cfg.LogDir == "" {
		return
	}
	path, err := recorder.Save(g.cfg.LogDir)
	if err != nil {
		g.out.Error("%v", err)
		return
	}
	g.out.Info("Table log written to %s", path)
}

// quietly turns the ways a player leaves into a clean exit
func quietly(err error) error {
	switch {
	case err == nil,
		errors.Is(err, console.ErrExit),
		errors.Is(err, context.Canceled),
		errors.Is(err, io.EOF):
		pterm.Println("Thank you for playing...")
		return nil
	default:
		return err
	}
}

// newLogger sends operational logs to a file so they never mix with the game screen
func newLogger(cfg *config.Config) (*logrus.Logger, func(), error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	logger.SetLevel(level)

	if cfg.LogFile == "" {
		logger.SetOutput(io.Discard)
		return logger, func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, func() { f.Close() }, nil
}

func printBanner() {
	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Draw", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("Poker", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err != nil {
		return
	}
	pterm.Print(title)
}
