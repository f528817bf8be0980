// Command ringlyctl is a terminal front end for the ringlykit core: scan
// for Ringly peripherals, connect, send commands, and watch their
// notification stream, grounded on the teacher's cmd/blim CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"unicode"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
)

func formatVersion(ver string) string {
	if len(ver) > 0 && unicode.IsDigit(rune(ver[0])) {
		return "v" + ver
	}
	return ver
}

var rootCmd = &cobra.Command{
	Use:   "ringlyctl",
	Short: "Ringly peripheral command-line tool",
	Long: `A command-line tool for the Ringly BLE wearable protocol:

- Scan for and discover nearby Ringly peripherals
- Connect and inspect their GATT surface
- Send LED/vibration commands
- Watch the messages they send on the message characteristic`,
	Version: formatVersion(version),
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(connectCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(inspectCmd)

	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Verbose (debug-level) logging")
}
