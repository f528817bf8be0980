package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for nearby Ringly peripherals",
	Long: `Scans for Ringly peripherals (and peripherals advertising in
DFU/recovery mode) and prints a table of what was found.`,
	RunE: runScan,
}

var scanDuration time.Duration

func init() {
	scanCmd.Flags().DurationVarP(&scanDuration, "duration", "d", 10*time.Second, "Scan duration (0 for indefinite)")
}

func runScan(cmd *cobra.Command, _ []string) error {
	logger, err := configureLogger(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	c := newCentral(logger)

	ctx := cmd.Context()
	if scanDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, scanDuration)
		defer cancel()
	}

	if err := c.StartDiscovery(ctx); err != nil && ctx.Err() == nil {
		return fmt.Errorf("scan: %w", err)
	}

	d := c.Discovery()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "UUID\tNAME\tSTATE")
	for _, p := range d.Peripherals {
		state := string(p.ConnectionState())
		col := connectionStateColor(state)
		fmt.Fprintf(w, "%s\t%s\t%s\n", p.Identity.UUID, p.Identity.LocalName, col.Sprint(state))
	}
	for _, rp := range d.RecoveryPeripherals {
		fmt.Fprintf(w, "%s\t<recovery mode>\thardware_index=%d\n", rp.UUID, rp.HardwareIndex)
	}
	return w.Flush()
}
