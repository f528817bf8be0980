package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/srg/ringlykit/pkg/ringly/central"
	"github.com/srg/ringlykit/pkg/ringly/command"
)

var sendCmd = &cobra.Command{
	Use:   "send <uuid> <command>",
	Short: "Send a command to a connected Ringly peripheral",
	Long: `Sends a known command to an already-connected peripheral.

Supported <command> values: reset, deep-sleep, clear-bonds, vibrate`,
	Args: cobra.ExactArgs(2),
	RunE: runSend,
}

var sendVibrationPower byte

func init() {
	sendCmd.Flags().Uint8Var(&sendVibrationPower, "power", 100, "Vibration motor power (0-255), used with 'vibrate'")
}

func runSend(cmd *cobra.Command, args []string) error {
	logger, err := configureLogger(cmd)
	if err != nil {
		return err
	}
	cmd.SilenceUsage = true

	uuid, name := args[0], args[1]

	var cmdValue command.Command
	switch name {
	case "reset":
		cmdValue = command.FirmwareResetCommand{}
	case "deep-sleep":
		cmdValue = command.DeepSleepCommand{}
	case "clear-bonds":
		cmdValue = command.ClearBondsCommand{}
	case "vibrate":
		cmdValue = command.LEDVibrationCommand{
			Vibration: command.NewVibrationBehavior(command.VibrationTwoPulses, sendVibrationPower, 10, 10),
		}
	default:
		return fmt.Errorf("send: unknown command %q", name)
	}

	c := newCentral(logger)

	done := make(chan central.CommandWritten, 1)
	handle := c.Events().Subscribe(func(e central.Event) {
		if w, ok := e.(central.CommandWritten); ok && w.UUID == uuid {
			select {
			case done <- w:
			default:
			}
		}
	})
	defer c.Events().Unsubscribe(handle)

	c.WriteCommand(uuid, cmdValue)

	select {
	case w := <-done:
		if w.Err != nil {
			return fmt.Errorf("send: %w", w.Err)
		}
	case <-time.After(sendAckTimeout):
		return fmt.Errorf("send: timed out waiting for %s to acknowledge %s", uuid, name)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "sent %s to %s\n", name, uuid)
	return nil
}

const sendAckTimeout = 5 * time.Second
