//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/markkurossi/fantastic4/comm"
	"github.com/markkurossi/fantastic4/config"
	"github.com/markkurossi/fantastic4/env"
	"github.com/markkurossi/fantastic4/fantastic4"
	"github.com/markkurossi/fantastic4/log"
	"github.com/markkurossi/fantastic4/metrics"
	"github.com/markkurossi/fantastic4/p2p"
)

var (
	// Path to the configuration file.
	configFile  string
	partyTiming bool

	partyCmd = &cobra.Command{
		Use:   "party",
		Short: "Run one party of a TCP network",
		Args:  cobra.NoArgs,
		RunE:  partyMain,
	}
)

func init() {
	partyCmd.Flags().StringVar(&configFile, "config", "./party.yml",
		"path to the party config file")
	partyCmd.Flags().BoolVar(&partyTiming, "timing", false,
		"print timing report")
}

func initLogger(cfg *config.Config) (*log.Logger, error) {
	format := logFormat
	level := logLevel
	if cfg.Log != nil {
		if err := format.Set(cfg.Log.Format); err != nil {
			return nil, err
		}
		if err := level.Set(cfg.Log.Level); err != nil {
			return nil, err
		}
	}
	return log.NewLogger("fantastic4", os.Stderr, format, level)
}

func partyMain(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitConfig(configFile)
	if err != nil {
		return err
	}
	if cfg.Input == nil {
		return fmt.Errorf("config %s: missing input", configFile)
	}
	logger, err := initLogger(cfg)
	if err != nil {
		return err
	}
	logger = logger.With("rank", cfg.Party.Rank)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt,
		syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		return err
	}
	if cfg.Metrics != nil {
		pull := metrics.NewPullService(cfg.Metrics.PullEndpoint, reg, logger)
		go func() {
			if err := pull.Run(ctx); err != nil {
				logger.Error("metrics service failed", "err", err)
			}
		}()
	}

	nw, err := p2p.Listen(cfg.Party.Rank, cfg.Party.Peers[cfg.Party.Rank],
		cfg.Party.SessionID(), logger)
	if err != nil {
		return err
	}
	defer nw.Close()

	conns, err := nw.Connect(ctx, cfg.Party.Peers)
	if err != nil {
		return err
	}
	link, err := comm.New(cfg.Party.Rank, conns, logger, &m.Link)
	if err != nil {
		return err
	}
	defer func() {
		if err := link.Close(); err != nil && !errors.Is(err, comm.ErrClosed) {
			logger.Debug("close failed", "err", err)
		}
	}()

	c, err := fantastic4.NewContext(link, &env.Config{
		Logger:     logger,
		Registerer: reg,
	})
	if err != nil {
		return err
	}
	result, err := runPipeline(ctx, c, link, cfg.Party.RingField(), cfg.Input)
	if err != nil {
		return err
	}
	result.Print()
	if partyTiming {
		result.Timing.Print(os.Stdout, result.Stats.Sent, result.Stats.Recvd)
	}
	logger.Info("pipeline done", "elapsed", result.Timing.Total())
	return nil
}
