package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"git.lost.host/meutraa/techmania/internal/config"
	"git.lost.host/meutraa/techmania/internal/log"
)

func main() {
	logger := log.NewPacked(os.Stderr, config.Version)
	if err := godotenv.Load(); nil != err && !errors.Is(err, os.ErrNotExist) {
		logger.Fatal().Err(err).Msg("Failed to load .env file")
	}

	command, err := config.Parse(os.Args[1:])
	if nil != err {
		logger.Fatal().Err(err).Msg("Invalid arguments")
	}

	if *config.Pretty || term.IsTerminal(int(os.Stderr.Fd())) {
		logger = log.NewPretty(os.Stderr, config.Version)
	}
	if *config.Verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	if err := run(command, logger); nil != err {
		logger.Fatal().Func(log.Flaw(err)).Str("command", command).Msg("Command failed")
	}
}

func run(command string, logger zerolog.Logger) error {
	cfg := config.Default()
	if *config.ConfigFile != "" {
		var err error
		if cfg, err = config.FromFile(*config.ConfigFile); nil != err {
			return err
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	p := NewProgram(cfg, os.Stdout, logger)
	if err := p.Init(); nil != err {
		return err
	}
	defer p.Deinit()

	switch command {
	case config.Inspect.FullCommand():
		return p.Inspect(*config.InspectTrack)
	case config.Radar.FullCommand():
		return p.Radar(*config.RadarTrack, *config.RadarPattern)
	case config.Upgrade.FullCommand():
		return p.Upgrade(*config.UpgradeTrack, *config.UpgradeOutput)
	case config.ImportSM.FullCommand():
		return p.ImportSM(*config.ImportSMFile, *config.ImportSMOutput)
	case config.Scan.FullCommand():
		return p.Scan(ctx, *config.ScanFolder)
	case config.Records.FullCommand():
		return p.Records(*config.RecordsTrack, *config.RecordsImport, *config.RecordsExport)
	}
	return errors.New("unknown command " + command)
}
