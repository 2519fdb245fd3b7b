package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"motiond/internal/hoststream"
)

func newMonitorCommand() *cobra.Command {
	var (
		device string
		baud   int
		dof    int
	)

	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Read back framed trajectory samples from a serial device and log them",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
			return monitorDevice(logger, device, baud, dof)
		},
	}

	cmd.Flags().StringVar(&device, "device", "", "serial device to read sampled motion from")
	cmd.Flags().IntVar(&baud, "baud", 250000, "baud rate for --device")
	cmd.Flags().IntVar(&dof, "dof", 3, "number of axes encoded per frame")
	cmd.MarkFlagRequired("device")

	return cmd
}

func monitorDevice(logger *slog.Logger, device string, baud, dof int) error {
	port, err := openSerialPort(device, baud)
	if err != nil {
		return fmt.Errorf("opening serial device: %w", err)
	}
	reader := hoststream.NewReader(port, dof)
	defer reader.Close()

	logger.Info("monitoring", "device", device, "baud", baud, "dof", dof)
	for {
		position, velocity, acceleration, err := reader.ReadSample()
		if err != nil {
			return fmt.Errorf("reading sample: %w", err)
		}
		logger.Info("sample", "position", position, "velocity", velocity, "acceleration", acceleration)
	}
}
