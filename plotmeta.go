// plotmeta is a thin command-line wrapper around lib/amrio. It only
// supplies paths and flags; all the parsing, comparison, and writing logic
// lives in the library.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mtessier/plotmeta/lib/amrio"
	"github.com/mtessier/plotmeta/lib/geometry"
)

var log *zap.SugaredLogger

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot initialize logging: %s\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log = logger.Sugar()

	root := &cobra.Command{
		Use:           "plotmeta",
		Short:         "inspect and derive AMR plotfile header metadata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(infoCommand(), compareCommand(), filterCommand())

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func infoCommand() *cobra.Command {
	var limitLevel int
	var headerOnly bool

	cmd := &cobra.Command{
		Use:   "info <plotfile>",
		Short: "parse a plotfile header and summarize its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := amrio.Open(args[0], amrio.Config{
				LimitLevel: limitLevel, HeaderOnly: headerOnly,
			})
			if err != nil { return err }

			log.Infow("parsed plotfile",
				"dir", h.Dir(),
				"version", h.Version(),
				"time", h.Time(),
				"ndims", h.NDims(),
				"fields", h.Fields(),
				"max_level", h.MaxLevel(),
				"limit_level", h.LimitLevel(),
			)
			for lv := 0; lv <= h.LimitLevel(); lv++ {
				log.Infow("level",
					"level", lv,
					"boxes", len(h.Boxes(lv)),
					"grid_size", h.GridSizes()[lv],
					"dx", h.Dx()[lv],
					"cell_path", h.CellPath(lv),
				)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limitLevel, "limit-level", -1,
		"finest level to parse (-1 for the file's max level)")
	cmd.Flags().BoolVar(&headerOnly, "header-only", false,
		"skip the per-level cell-index files")
	return cmd
}

func compareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <plotfile> <plotfile>",
		Short: "test whether two plotfiles share the same mesh topology",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h1, err := amrio.Open(args[0])
			if err != nil { return err }
			h2, err := amrio.Open(args[1])
			if err != nil { return err }

			if !amrio.Compatible(h1, h2) {
				return fmt.Errorf("%s and %s do not share the same mesh "+
					"topology", args[0], args[1])
			}
			log.Infow("plotfiles are compatible",
				"a", args[0], "b", args[1],
				"limit_level", h1.LimitLevel(),
			)
			return nil
		},
	}
}

func filterCommand() *cobra.Command {
	var out string
	var fields []string
	var limitLevel int

	cmd := &cobra.Command{
		Use:   "filter <plotfile>",
		Short: "write a derived header restricted to a field subset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := amrio.Open(args[0], amrio.Config{
				LimitLevel: limitLevel, HeaderOnly: true,
			})
			if err != nil { return err }

			boxes := make([][]geometry.Box, h.LimitLevel()+1)
			for lv := range boxes {
				boxes[lv] = h.Boxes(lv)
			}
			if err := h.WriteHeader(out, boxes, fields); err != nil {
				return err
			}
			log.Infow("wrote derived header",
				"out", out, "fields", fields,
				"limit_level", h.LimitLevel(),
			)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "",
		"output plotfile directory")
	cmd.Flags().StringSliceVarP(&fields, "fields", "f", nil,
		"fields to keep in the derived header")
	cmd.Flags().IntVar(&limitLevel, "limit-level", -1,
		"finest level to keep (-1 for the file's max level)")
	cmd.MarkFlagRequired("out")
	cmd.MarkFlagRequired("fields")
	return cmd
}
