//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/markkurossi/tabulate"
	"github.com/spf13/cobra"

	"github.com/markkurossi/fantastic4/cost"
	"github.com/markkurossi/fantastic4/fantastic4"
	"github.com/markkurossi/fantastic4/ring"
	"github.com/markkurossi/fantastic4/timing"
)

var (
	costsField string
	costsNumel int64

	costsCmd = &cobra.Command{
		Use:   "costs",
		Short: "Print the static costs of the protocol kernels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			field, err := ring.ParseField(costsField)
			if err != nil {
				return err
			}
			if costsNumel < 0 {
				return fmt.Errorf("invalid number of elements: %d", costsNumel)
			}
			printCosts(os.Stdout, fantastic4.NewKernelRegistry(), cost.Params{
				Field: field,
				N:     costsNumel,
			})
			return nil
		},
	}
)

func init() {
	costsCmd.Flags().StringVar(&costsField, "field", "FM64", "ring width")
	costsCmd.Flags().Int64Var(&costsNumel, "numel", 1, "number of elements")
}

func printCosts(w io.Writer, r *fantastic4.Registry, params cost.Params) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Kernel").SetAlign(tabulate.ML)
	tab.Header("Kind").SetAlign(tabulate.ML)
	tab.Header("Rounds").SetAlign(tabulate.MR)
	tab.Header("Comm").SetAlign(tabulate.ML)
	tab.Header(fmt.Sprintf("%s×%d", params.Field, params.N)).
		SetAlign(tabulate.MR)

	for _, k := range r.Kernels() {
		row := tab.Row()
		row.Column(k.Name())
		row.Column(k.Kind().String())
		row.Column(fmt.Sprintf("%d", k.Latency().Eval(params)))
		row.Column(k.Comm().String())
		row.Column(timing.FileSize(k.Comm().Eval(params)).String())
	}
	tab.Print(w)
}
