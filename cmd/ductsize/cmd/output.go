package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"Airduct/internal/calc/rect"
)

// emit writes v as indented JSON, or calls table with a tab-aligned writer.
func (g *globals) emit(cmd *cobra.Command, v any, table func(w io.Writer)) error {
	out := cmd.OutOrStdout()
	if g.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	table(tw)
	return tw.Flush()
}

func num(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

func printCandidates(w io.Writer, cs []rect.Candidate) {
	if len(cs) == 0 {
		fmt.Fprintln(w, rect.NoAlternative)
		return
	}
	fmt.Fprintln(w, "SIZE\tCLEAR\tAREA (SQ FT)\tDe (IN)\tVELOCITY\tFRICTION\tASPECT")
	for _, c := range cs {
		fmt.Fprintf(w, "%vx%v\t%vx%v\t%s\t%s\t%s\t%s\t%s\n",
			c.WidthIn, c.HeightIn, c.InteriorWidthIn, c.InteriorHeightIn,
			num(c.AreaSqFt, 3), num(c.EquivalentDiameterIn, 2),
			num(c.VelocityFPM, 0), num(c.FrictionRate, 3), c.AspectRatio)
	}
}
