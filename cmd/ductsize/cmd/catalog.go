package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"Airduct/internal/calc/duct"
	"Airduct/internal/calc/worstcase"
)

func presetsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the named worst-case limits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps := worstcase.Presets()
			return g.emit(cmd, ps, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tFRICTION\tVELOCITY")
				for _, p := range ps {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, num(p.FrictionRate, 2), num(p.VelocityFPM, 0))
				}
			})
		},
	}
}

func catalogCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the standard duct sizes and liner thicknesses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := struct {
				RoundIn      []float64 `json:"round_in"`
				RectIn       []float64 `json:"rect_in"`
				InsulationIn []float64 `json:"insulation_in"`
			}{duct.RoundSizes(), duct.RectSizes(), duct.StandardInsulation()}
			return g.emit(cmd, c, func(w io.Writer) {
				fmt.Fprintf(w, "Round (in)\t%v\n", c.RoundIn)
				fmt.Fprintf(w, "Rectangular (in)\t%v\n", c.RectIn)
				fmt.Fprintf(w, "Insulation (in)\t%v\n", c.InsulationIn)
			})
		},
	}
}
