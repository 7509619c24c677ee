// Command button-sensor polls a GPIO button and logs debounced press and release events.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sweeney/button-sensor/internal/button"
	"github.com/sweeney/button-sensor/internal/config"
	"github.com/sweeney/button-sensor/internal/gpio"
	"github.com/sweeney/button-sensor/internal/logger"
	"github.com/sweeney/button-sensor/internal/status"
	"github.com/sweeney/button-sensor/internal/timer"
)

var (
	configPath string

	flagDriver   string
	flagPin      int
	flagDebounce time.Duration
	flagPoll     time.Duration

	mainCmd = &cobra.Command{
		Use:           "button-sensor",
		Short:         "Debounced GPIO button events",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Poll the button and log press/release events until interrupted",
		RunE:  runButton,
	}
	stateCmd = &cobra.Command{
		Use:   "state",
		Short: "Print the current button level as JSON and exit",
		RunE:  printState,
	}
)

func main() {
	mainCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "Config path. The path to the TOML configuration file")
	mainCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "GPIO driver: cdev, periph or rpio")
	mainCmd.PersistentFlags().IntVar(&flagPin, "pin", 0, "BCM pin / line offset of the button")
	runCmd.Flags().DurationVar(&flagDebounce, "debounce", 0, "Debounce duration")
	runCmd.Flags().DurationVar(&flagPoll, "poll", 0, "GPIO polling interval")
	mainCmd.AddCommand(runCmd, stateCmd)

	if err := mainCmd.Execute(); err != nil {
		logrus.Fatalf("fatal: %v", err)
	}
}

// loadConfig reads the config file and applies any flags set on cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	applyFlags(cmd, &cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyFlags overrides cfg with the flags set on cmd.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("driver") {
		cfg.Driver = gpio.Driver(flagDriver)
	}
	if flags.Changed("pin") {
		cfg.Pin = flagPin
	}
	if flags.Changed("debounce") {
		cfg.DebounceWindow = config.Duration(flagDebounce)
	}
	if flags.Changed("poll") {
		cfg.PollInterval = config.Duration(flagPoll)
	}
}

// openButton opens the configured pin and builds a button on it.
func openButton(cfg config.Config) (gpio.Pin, *button.Button, error) {
	pin, err := gpio.Open(cfg.PinOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("init gpio: %w", err)
	}

	btn, err := button.New(pin, cfg.PullUp,
		button.WithDebounceTimeout(cfg.Debounce()),
		button.WithInvert(cfg.Invert),
	)
	if err != nil {
		pin.Close()
		return nil, nil, fmt.Errorf("init button: %w", err)
	}
	return pin, btn, nil
}

func statusConfig(cfg config.Config) status.Config {
	return status.Config{
		Driver:    string(cfg.Driver),
		Pin:       cfg.Pin,
		PullUp:    cfg.PullUp,
		Invert:    cfg.Invert,
		Debounce:  cfg.Debounce(),
		Poll:      cfg.Poll(),
		Heartbeat: cfg.Heartbeat(),
	}
}

func printState(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	pin, btn, err := openButton(cfg)
	if err != nil {
		return err
	}
	defer pin.Close()

	now := time.Now()
	tracker := status.NewTracker(now, statusConfig(cfg))
	tracker.SetPressed(btn.IsPressed())
	if err := btn.Err(); err != nil {
		return fmt.Errorf("read gpio: %w", err)
	}

	fmt.Println(string(status.FormatJSON(tracker.Snapshot(now))))
	return nil
}

func runButton(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.New("button")

	pin, btn, err := openButton(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := pin.Close(); err != nil {
			log.WithError(err).Warn("close gpio")
		}
	}()

	tracker := status.NewTracker(time.Now(), statusConfig(cfg))

	log.Infof("started: driver=%s pin=%d pull_up=%v invert=%v poll=%v debounce=%v heartbeat=%v",
		cfg.Driver, cfg.Pin, cfg.PullUp, cfg.Invert, cfg.Poll(), cfg.Debounce(), cfg.Heartbeat())

	ticker := time.NewTicker(cfg.Poll())
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(btn, tracker, cfg.Heartbeat(), timer.SystemClock, ticker.C, sigCh, log)
}

func runLoop(btn *button.Button, tracker *status.Tracker, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal, log *logrus.Entry) error {
	for {
		select {
		case s := <-sig:
			snap := tracker.Snapshot(now())
			log.WithFields(logrus.Fields{
				"pressed":     snap.Counts.Pressed,
				"released":    snap.Counts.Released,
				"read_errors": snap.ReadErrors,
				"uptime":      snap.Uptime().Truncate(time.Second),
			}).Infof("received %v, shutting down", s)
			return nil

		case <-tick:
			t := now()

			// Both detectors run every poll so each keeps its window current.
			// Each samples the pin, so each read is checked on its own.
			pressed := btn.OnPressed()
			checkRead(btn, tracker, log)
			released := btn.OnReleased()
			checkRead(btn, tracker, log)

			if pressed {
				tracker.Record(status.EdgePressed, t)
				tracker.SetPressed(true)
				log.WithField("edge", status.EdgePressed).Info("event: PRESSED")
			}
			if released {
				tracker.Record(status.EdgeReleased, t)
				tracker.SetPressed(false)
				log.WithField("edge", status.EdgeReleased).Info("event: RELEASED")
			}

			if hb := tracker.CheckHeartbeat(t, heartbeat); hb != nil {
				log.WithFields(logrus.Fields{
					"uptime":      hb.Uptime.Truncate(time.Second),
					"pressed":     hb.Counts.Pressed,
					"released":    hb.Counts.Released,
					"read_errors": hb.ReadErrors,
				}).Info("heartbeat")
			}
		}
	}
}

// checkRead counts and logs a failure of the button's last pin read.
func checkRead(btn *button.Button, tracker *status.Tracker, log *logrus.Entry) {
	if err := btn.Err(); err != nil {
		tracker.RecordReadError()
		log.WithError(err).Warn("gpio read error")
	}
}
