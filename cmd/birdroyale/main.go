package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"birdroyale/audio"
	"birdroyale/config"
	"birdroyale/protocol"
	"birdroyale/session"
	"birdroyale/tui"
)

var (
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/birdroyale.log")
	serverFlag = flag.String("server", "", "Join a server instead of playing locally, e.g. ws://localhost:8080/ws")
	tuningFlag = flag.String("tuning", "", "YAML tuning file for local games")
	nameFlag   = flag.String("name", "", "Player name")
	quietFlag  = flag.Bool("quiet", false, "Disable sound")
)

func main() {
	flag.Parse()

	log, logFile := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	tuning, err := config.LoadTuning(*tuningFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	settings := tui.DefaultSettings(tuning)
	settings.Audio = !*quietFlag
	if *serverFlag == "" {
		var ok bool
		settings, ok, err = tui.RunSetup(settings)
		if err != nil {
			fmt.Fprintf(os.Stderr, "setup: %v\n", err)
			os.Exit(1)
		}
		if !ok {
			return
		}
	}

	sounds := audio.NewSoundManager()
	if settings.Audio {
		if err := sounds.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, continuing without sound")
		}
		defer sounds.Cleanup()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}

	var res tui.Result
	func() {
		// Restore the terminal even if the game panics.
		defer func() {
			if r := recover(); r != nil {
				// screen.Fini has already run; it was deferred later.
				fmt.Fprintf(os.Stderr, "\nbirdroyale crashed: %v\n%s\n", r, debug.Stack())
				crashCleanup(log, logFile, sounds, r)
				os.Exit(1)
			}
		}()
		defer screen.Fini()
		screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorDefault).Foreground(tcell.ColorWhite))
		screen.Clear()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w, h := tui.ViewSize(screen.Size())
		hello := protocol.Hello{V: protocol.Version, Name: *nameFlag, ViewW: w, ViewH: h}

		var link tui.Link
		if *serverFlag != "" {
			link, err = tui.DialRemote(ctx, *serverFlag, hello)
		} else {
			seed := settings.Seed
			if !settings.SeedSet {
				seed = rand.Uint64()
			}
			log.Info().Uint64("seed", seed).Int("bots", settings.Bots).Str("policy", settings.Policy).Msg("local game")
			link, err = tui.NewLocalLink(session.Options{
				Tuning: settings.Apply(tuning),
				Seed:   seed,
				Logger: log,
			}, hello)
		}
		if err != nil {
			return
		}
		defer link.Close()

		res, err = tui.NewApp(screen, link, sounds, log).Run(ctx)
	}()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if banner := tui.Banner(res); banner != "" {
		fmt.Println(banner)
	}
}
