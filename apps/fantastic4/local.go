//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/markkurossi/fantastic4/comm"
	"github.com/markkurossi/fantastic4/config"
	"github.com/markkurossi/fantastic4/env"
	"github.com/markkurossi/fantastic4/fantastic4"
	"github.com/markkurossi/fantastic4/p2p"
	"github.com/markkurossi/fantastic4/ring"
)

var (
	localField   string
	localInput   config.InputConfig
	localWorkers int
	localTiming  bool

	localCmd = &cobra.Command{
		Use:   "local",
		Short: "Run all four parties in-process",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := ring.ParseField(localField)
			if err != nil {
				return err
			}
			if err := localInput.Validate(); err != nil {
				return err
			}
			results, err := runLocal(cmd.Context(), field, &localInput,
				&env.Config{
					Logger:  newLogger("local"),
					Workers: localWorkers,
				})
			if err != nil {
				return err
			}
			for _, result := range results {
				result.Print()
			}
			if localTiming {
				owner := results[localInput.Owner]
				owner.Timing.Print(os.Stdout, owner.Stats.Sent,
					owner.Stats.Recvd)
			}
			return nil
		},
	}
)

func init() {
	localCmd.Flags().StringVar(&localField, "field", "FM64", "ring width")
	localCmd.Flags().IntVar(&localInput.Owner, "owner", 0,
		"rank of the private input owner")
	localCmd.Flags().StringSliceVar(&localInput.Values, "values", nil,
		"private input values")
	localCmd.Flags().StringSliceVar(&localInput.Public, "public", nil,
		"public input values")
	localCmd.Flags().IntVar(&localWorkers, "workers", 0,
		"per-party worker limit")
	localCmd.Flags().BoolVar(&localTiming, "timing", false,
		"print owner timing report")
}

// runLocal runs the pipeline with four parties connected with
// in-process pipes. The results are returned by rank.
func runLocal(ctx context.Context, field ring.Field,
	input *config.InputConfig, cfg *env.Config) ([]*Result, error) {

	if ctx == nil {
		ctx = context.Background()
	}
	mesh := p2p.Mesh(fantastic4.NumParties)
	links := make([]*comm.Communicator, fantastic4.NumParties)
	for rank := range links {
		link, err := comm.New(rank, mesh[rank], cfg.GetLogger(), nil)
		if err != nil {
			return nil, err
		}
		links[rank] = link
	}
	defer func() {
		for _, link := range links {
			link.Close()
		}
	}()

	results := make([]*Result, fantastic4.NumParties)
	g, ctx := errgroup.WithContext(ctx)
	for rank, link := range links {
		g.Go(func() error {
			c, err := fantastic4.NewContext(link, cfg)
			if err != nil {
				return err
			}
			result, err := runPipeline(ctx, c, link, field, input)
			if err != nil {
				return err
			}
			results[rank] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
