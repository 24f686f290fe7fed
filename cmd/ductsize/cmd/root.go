// Package cmd provides the CLI commands for ductsize.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"Airduct/internal/config"
	"Airduct/internal/logging"
)

const version = "0.3.0"

type globals struct {
	cfgFile string
	verbose bool
	format  string
	cfg     *config.Config
}

// Execute runs the CLI
func Execute() error {
	return newRoot().Execute()
}

func newRoot() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "ductsize",
		Short: "Size round and rectangular HVAC air ducts",
		Long: `ductsize sizes supply and return air ducts with the SMACNA
equal-friction and velocity formulas.

Examples:
  ductsize round --cfm 1000 --friction 0.08
  ductsize worstcase --cfm 1000 --preset low
  ductsize size --cfm 1000 --mode worst-case --preset medium --policy spread
  ductsize batch schedule.xlsx --pdf report.pdf`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.init()
		},
	}

	root.PersistentFlags().StringVar(&g.cfgFile, "config", "", "JSON config file")
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "enable verbose output")
	root.PersistentFlags().StringVarP(&g.format, "format", "f", "table", "output format (table, json)")

	root.AddCommand(
		roundCmd(g),
		worstcaseCmd(g),
		rectCmd(g),
		sizeCmd(g),
		batchCmd(g),
		presetsCmd(g),
		catalogCmd(g),
		configCmd(g),
		versionCmd(),
	)
	return root
}

func (g *globals) init() error {
	switch g.format {
	case "table", "json":
	default:
		return fmt.Errorf("unknown format %q (table, json)", g.format)
	}

	cfg, err := config.Load(g.cfgFile)
	if err != nil {
		return err
	}
	if g.verbose {
		cfg.Logging.Level = "debug"
	} else {
		cfg.Logging.Level = "warn"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
	g.cfg = cfg
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ductsize version %s\n", version)
		},
	}
}
