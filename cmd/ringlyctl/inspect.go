package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/srg/ringlykit/pkg/ringly/bledb"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <uuid>",
	Short: "Connect to a peripheral and print its full GATT service/characteristic table",
	Long: `Connects to a peripheral, discovers every service and characteristic,
and previews readable characteristic values, annotating known UUIDs with
their registered name (adapted from the teacher's inspector package).`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

var (
	inspectTimeout   time.Duration
	inspectReadLimit int
)

func init() {
	inspectCmd.Flags().DurationVar(&inspectTimeout, "timeout", 15*time.Second, "Connect timeout")
	inspectCmd.Flags().IntVar(&inspectReadLimit, "read-limit", 64, "Bytes of each readable characteristic to preview (0 disables reads)")
}

func runInspect(cmd *cobra.Command, args []string) error {
	logger, err := configureLogger(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	uuid := args[0]
	c := newCentral(logger)

	scanCtx, cancel := context.WithTimeout(cmd.Context(), inspectTimeout)
	defer cancel()
	if err := c.StartDiscovery(scanCtx); err != nil && scanCtx.Err() == nil {
		return fmt.Errorf("inspect: scan failed: %w", err)
	}

	if err := c.Connect(cmd.Context(), uuid, inspectTimeout); err != nil {
		return fmt.Errorf("inspect: connect: %w", err)
	}

	services, err := c.Adapter().DiscoverServices(uuid)
	if err != nil {
		return fmt.Errorf("inspect: discover services: %w", err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SERVICE\tCHARACTERISTIC\tVALUE\tASCII")
	for _, svc := range services {
		svcName := friendlyOrRaw(bledb.LookupService(svc), svc)

		chars, err := c.Adapter().DiscoverCharacteristics(uuid, svc)
		if err != nil {
			fmt.Fprintf(w, "%s\t<discover error: %v>\t\t\n", svcName, err)
			continue
		}

		for _, ch := range chars {
			chName := friendlyOrRaw(bledb.LookupCharacteristic(ch), ch)

			var hexVal, asciiVal string
			if inspectReadLimit > 0 {
				if data, err := c.Adapter().ReadValue(uuid, svc, ch); err == nil && len(data) > 0 {
					if len(data) > inspectReadLimit {
						data = data[:inspectReadLimit]
					}
					hexVal = strings.ToUpper(hex.EncodeToString(data))
					asciiVal = asciiPreview(data)
				}
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", svcName, chName, hexVal, asciiVal)
		}
	}
	return w.Flush()
}

func friendlyOrRaw(name, uuid string) string {
	if name == "" {
		return uuid
	}
	return fmt.Sprintf("%s (%s)", name, uuid)
}

// asciiPreview renders a safe ASCII preview, replacing non-printable bytes
// with '.', grounded on the teacher's inspector.asciiPreview.
func asciiPreview(b []byte) string {
	var sb strings.Builder
	for _, c := range b {
		if c >= 32 && c <= 126 {
			sb.WriteByte(c)
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
