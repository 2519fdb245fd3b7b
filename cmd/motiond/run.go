package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"motiond/host/serial"
	"motiond/internal/axisconfig"
	"motiond/internal/gcode"
	"motiond/internal/hoststream"
	"motiond/internal/kinematics"
	"motiond/internal/motion"
	"motiond/internal/stepgen"
)

func newRunCommand() *cobra.Command {
	var (
		configPath string
		gcodePath  string
		device     string
		baud       int
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Plan a G-code program and drive it through the trajectory generator",
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			return runProgram(logger, configPath, gcodePath, device, baud)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "machine configuration JSON (default: stock Cartesian config)")
	cmd.Flags().StringVar(&gcodePath, "gcode", "", "G-code program to execute (required)")
	cmd.Flags().StringVar(&device, "device", "", "serial device to stream sampled motion to (optional)")
	cmd.Flags().IntVar(&baud, "baud", 250000, "baud rate for --device")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "log every sampled control-loop cycle")
	cmd.MarkFlagRequired("gcode")

	return cmd
}

func runProgram(logger *slog.Logger, configPath, gcodePath, device string, baud int) error {
	config, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	mapping, err := kinematics.NewMapping(config)
	if err != nil {
		return fmt.Errorf("building axis mapping: %w", err)
	}

	gcodeFile, err := os.Open(gcodePath)
	if err != nil {
		return fmt.Errorf("opening G-code program: %w", err)
	}
	defer gcodeFile.Close()

	sink := newTargetSink(mapping, config)
	interp := gcode.NewInterpreter(mapping, sink, sink.defaultFeedRate())
	parser := gcode.NewParser()
	generator := motion.NewGenerator(config.DeltaTime, mapping.DOF())

	var writer *hoststream.Writer
	if device != "" {
		port, err := openSerialPort(device, baud)
		if err != nil {
			return fmt.Errorf("opening serial device: %w", err)
		}
		writer = hoststream.NewWriter(port, mapping.DOF())
		defer writer.Close()
	}

	steppers, err := stepgen.NewSet(mapping, config)
	if err != nil {
		return fmt.Errorf("building stepper set: %w", err)
	}
	driver := newDryRunDriver()
	if err := steppers.Init(driver); err != nil {
		return fmt.Errorf("initializing stepper GPIO: %w", err)
	}
	steppers.SetPositions(sink.position)
	if err := steppers.EnableAll(driver); err != nil {
		return fmt.Errorf("enabling steppers: %w", err)
	}
	defer steppers.DisableAll(driver)

	logger.Info("starting program", "gcode", gcodePath, "axes", mapping.Names(), "delta_time", config.DeltaTime)

	scanner := bufio.NewScanner(gcodeFile)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		cmd, err := parser.ParseLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if cmd == nil || cmd.Type == 0 {
			continue
		}

		sink.beginCommand()
		if err := interp.Execute(cmd); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !sink.hasMove() {
			continue
		}

		for _, name := range mapping.Names() {
			idx, _ := mapping.Index(name)
			if sink.touched[idx] {
				if err := kinematics.CheckLimits(config, name, sink.targetPos[idx]); err != nil {
					return fmt.Errorf("line %d: %w", lineNo, err)
				}
			}
		}

		if err := driveToTarget(generator, sink, steppers, driver, writer, logger); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading G-code program: %w", err)
	}

	logger.Info("program complete", "steps", driver.stepCount)
	return nil
}

func loadConfig(path string) (*axisconfig.MachineConfig, error) {
	if path == "" {
		return axisconfig.DefaultCartesianConfig(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return axisconfig.Load(data)
}

func openSerialPort(device string, baud int) (serial.Port, error) {
	cfg := serial.DefaultConfig(device)
	cfg.Baud = baud
	return serial.Open(cfg)
}
