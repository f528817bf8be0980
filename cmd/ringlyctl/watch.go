package main

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/srg/ringlykit/pkg/ringly/central"
)

var watchCmd = &cobra.Command{
	Use:   "watch <uuid>",
	Short: "Stream decoded messages from a connected peripheral until interrupted",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger, err := configureLogger(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	uuid := args[0]
	c := newCentral(logger)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handle := c.Events().Subscribe(func(e central.Event) {
		m, ok := e.(central.MessageReceived)
		if !ok || m.UUID != uuid {
			return
		}
		ts := time.Now().Format(time.RFC3339)
		if m.Err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  decode error: %v\n", ts, uuid, m.Err)
			return
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %#v\n", ts, uuid, m.Msg)
	})
	defer c.Events().Unsubscribe(handle)

	if err := c.WatchMessages(ctx, uuid); err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s, press Ctrl-C to stop\n", uuid)
	<-ctx.Done()
	return nil
}
