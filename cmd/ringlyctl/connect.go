package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// scanLongEnoughToFind bounds the pre-connect discovery scan to the
// connect timeout: connecting to a UUID that was never advertised during
// that window fails the same way a direct adapter dial would.
func scanLongEnoughToFind(cmd *cobra.Command, _ string) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), connectTimeout)
}

var connectCmd = &cobra.Command{
	Use:   "connect <uuid>",
	Short: "Connect to a Ringly peripheral",
	Args:  cobra.ExactArgs(1),
	RunE:  runConnect,
}

var connectTimeout time.Duration

func init() {
	connectCmd.Flags().DurationVar(&connectTimeout, "timeout", 15*time.Second, "Connect timeout")
}

func runConnect(cmd *cobra.Command, args []string) error {
	logger, err := configureLogger(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	uuid := args[0]
	c := newCentral(logger)

	scanCtx, cancel := scanLongEnoughToFind(cmd, uuid)
	defer cancel()
	if err := c.StartDiscovery(scanCtx); err != nil && scanCtx.Err() == nil {
		return fmt.Errorf("connect: scan failed: %w", err)
	}

	if err := c.Connect(cmd.Context(), uuid, connectTimeout); err != nil {
		return fmt.Errorf("connect: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s connected\n", connectionStateColor("connected").Sprint(uuid))
	return nil
}
