package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pleimann/glide-pad/internal/action"
	"github.com/pleimann/glide-pad/internal/config"
	"github.com/pleimann/glide-pad/internal/configpush"
	"github.com/pleimann/glide-pad/internal/display"
	"github.com/pleimann/glide-pad/internal/gesture"
	"github.com/pleimann/glide-pad/internal/pty"
	"github.com/pleimann/glide-pad/internal/touch"
	"github.com/pleimann/glide-pad/internal/ui"
)

const Version = "0.1.0"

func main() {
	// Check for subcommands first
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "list-devices":
			runListDevices()
			return
		case "set-device", "select-device":
			runSetDevice(os.Args[2:])
			return
		case "config-push":
			runConfigPush(os.Args[2:])
			return
		case "help", "-h", "--help":
			printUsage()
			os.Exit(0)
		}
	}

	configPath := flag.String("config", "config.yaml", "path to configuration file")
	verbose := flag.Bool("verbose", false, "enable verbose logging")
	version := flag.Bool("version", false, "print version and exit")

	flag.Usage = printUsage
	flag.Parse()

	if *version {
		ui.PrintVersion(Version)
		os.Exit(0)
	}

	watcher, err := config.NewWatcher(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := watcher.Get()

	if *verbose {
		log.Printf("Loaded configuration from %s", *configPath)
		log.Printf("Device: VendorID=0x%04X, ProductID=0x%04X",
			cfg.Device.VendorID, cfg.Device.ProductID)
		log.Printf("TUI command: %s %v", cfg.TUI.Command, cfg.TUI.Args)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	app, err := newApp(cfg, watcher, *verbose)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	go func() {
		<-sigChan
		if *verbose {
			log.Println("Received shutdown signal")
		}
		cancel()
	}()

	if err := app.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("Application error: %v", err)
	}

	if *verbose {
		log.Println("Shutdown complete")
	}
}

func printUsage() {
	ui.PrintUsage(Version)
}

// runListDevices handles the list-devices subcommand
func runListDevices() {
	devices, err := touch.ListDevices()
	if err != nil {
		ui.PrintFatalError("Failed to list devices", err.Error())
		os.Exit(1)
	}
	uiDevices := make([]ui.DeviceInfo, len(devices))
	for i, d := range devices {
		uiDevices[i] = ui.DeviceInfo{
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Manufacturer: d.Manufacturer,
			Product:      d.Product,
		}
	}
	ui.PrintDeviceList(uiDevices)
}

// runSetDevice handles the set-device subcommand
func runSetDevice(args []string) {
	fs := flag.NewFlagSet("set-device", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	fs.Usage = func() {
		ui.PrintSetDeviceUsage()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	remaining := fs.Args()

	var vendorID, productID uint16

	if len(remaining) >= 2 {
		vid, err := parseID(remaining[0])
		if err != nil {
			ui.PrintFatalError("Invalid vendor_id", fmt.Sprintf("%q: %v", remaining[0], err))
			os.Exit(1)
		}
		pid, err := parseID(remaining[1])
		if err != nil {
			ui.PrintFatalError("Invalid product_id", fmt.Sprintf("%q: %v", remaining[1], err))
			os.Exit(1)
		}
		vendorID = vid
		productID = pid
	} else if len(remaining) == 1 {
		ui.PrintFatalError("Invalid arguments", "Both vendor_id and product_id must be provided, or neither")
		os.Exit(1)
	} else {
		device, err := selectDevice()
		if err != nil {
			ui.PrintFatalError("Device selection failed", err.Error())
			os.Exit(1)
		}
		if device == nil {
			fmt.Println(ui.Muted("No device selected"))
			os.Exit(0)
		}
		vendorID = device.VendorID
		productID = device.ProductID
	}

	if config.Exists(*configPath) {
		if err := config.UpdateDeviceIDs(*configPath, vendorID, productID); err != nil {
			ui.PrintFatalError("Failed to update config", err.Error())
			os.Exit(1)
		}
		ui.PrintDeviceUpdated(*configPath, vendorID, productID)
	} else {
		if err := config.CreateDefaultConfig(*configPath, vendorID, productID); err != nil {
			ui.PrintFatalError("Failed to create config", err.Error())
			os.Exit(1)
		}
		ui.PrintDeviceCreated(*configPath, vendorID, productID)
	}
}

// runConfigPush handles the config-push subcommand
func runConfigPush(args []string) {
	fs := flag.NewFlagSet("config-push", flag.ExitOnError)
	configPath := fs.String("config", "config.yaml", "path to configuration file")
	fs.Usage = func() {
		ui.PrintConfigPushUsage()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	ui.PrintConfigPushProgress(fmt.Sprintf("Reading config from %s...", *configPath))

	cfg, err := config.Load(*configPath)
	if err != nil {
		ui.PrintFatalError("Failed to load config", err.Error())
		os.Exit(1)
	}

	ui.PrintConfigPushProgress(fmt.Sprintf("Converting %d gesture action(s)...", len(cfg.Actions)))

	mountPoint, err := configpush.FindCIRCUITPY()
	if err != nil {
		ui.PrintFatalError("Failed to find device", err.Error())
		os.Exit(1)
	}

	ui.PrintConfigPushProgress(fmt.Sprintf("Found CIRCUITPY at %s", mountPoint))

	if err := configpush.Push(cfg, mountPoint); err != nil {
		ui.PrintFatalError("Failed to push config", err.Error())
		os.Exit(1)
	}

	ui.PrintConfigPushSuccess(mountPoint, len(cfg.Actions))
}

// parseID parses a vendor or product ID from string (supports hex with 0x prefix or decimal)
func parseID(s string) (uint16, error) {
	s = strings.TrimSpace(s)

	var val uint64
	var err error

	if strings.HasPrefix(strings.ToLower(s), "0x") {
		val, err = strconv.ParseUint(s[2:], 16, 16)
	} else {
		val, err = strconv.ParseUint(s, 10, 16)
	}

	if err != nil {
		return 0, err
	}

	return uint16(val), nil
}

// selectDevice displays an interactive device selection menu using huh
func selectDevice() (*ui.DeviceInfo, error) {
	devices, err := touch.ListDevices()
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}

	if len(devices) == 0 {
		return nil, fmt.Errorf("no HID devices found")
	}

	// Deduplicate devices by vendor/product ID
	seen := make(map[uint32]bool)
	var unique []ui.DeviceInfo

	for _, d := range devices {
		key := uint32(d.VendorID)<<16 | uint32(d.ProductID)
		if seen[key] {
			continue
		}
		seen[key] = true

		if d.VendorID == 0 && d.ProductID == 0 {
			continue
		}

		unique = append(unique, ui.DeviceInfo{
			VendorID:     d.VendorID,
			ProductID:    d.ProductID,
			Manufacturer: d.Manufacturer,
			Product:      d.Product,
		})
	}

	if len(unique) == 0 {
		return nil, fmt.Errorf("no identifiable HID devices found")
	}

	return ui.SelectDevice(unique)
}

type App struct {
	config  *config.Config
	watcher *config.Watcher
	verbose bool

	device         *touch.Device
	surface        *touch.EventSurface
	gestureEngine  *gesture.Engine
	actionMapper   *action.Mapper
	actionExecutor *action.Executor
	ptyManager     *pty.Manager
	displayManager *display.Manager
}

func newApp(cfg *config.Config, watcher *config.Watcher, verbose bool) (*App, error) {
	app := &App{
		config:  cfg,
		watcher: watcher,
		verbose: verbose,
	}

	device, err := touch.Open(cfg.Device.VendorID, cfg.Device.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to open touch pad: %w", err)
	}
	app.device = device

	app.actionMapper = action.NewMapper(cfg.Actions)

	ptyManager, err := pty.NewManager(cfg.TUI.Command, cfg.TUI.Args, cfg.TUI.WorkingDir)
	if err != nil {
		device.Close()
		return nil, fmt.Errorf("failed to create PTY manager: %w", err)
	}
	app.ptyManager = ptyManager

	keyDelay := time.Duration(cfg.TUI.KeyDelayMs) * time.Millisecond
	app.actionExecutor = action.NewExecutor(pty.NewWriter(ptyManager, keyDelay))

	app.displayManager = display.NewManager(cfg.Display, device, ptyManager)

	// The surface bridges raw touch reports to the engine and forwards
	// native gesture toggles back to the firmware.
	app.surface = touch.NewEventSurface()
	app.surface.SetNativeGestureFunc(device.SetNativeGestures)

	app.gestureEngine = gesture.NewEngine(app.surface, app.handlers(), cfg.Gestures.Delta())

	watcher.OnReload(app.applyConfig)

	return app, nil
}

// handlers routes recognized gestures to key actions and display feedback.
func (a *App) handlers() gesture.Handlers {
	return gesture.Handlers{
		Tap: func(ev gesture.TapEvent) {
			a.runAction("tap")
		},
		DoubleTap: func(ev gesture.TapEvent) {
			a.runAction("double_tap")
		},
		Swipe: func(ev gesture.SwipeEvent) {
			a.runAction(action.SwipeAction(ev.Direction))
		},
		LongPress: func(ev gesture.TapEvent) {
			a.runAction("long_press")
		},
		Pinch: func(ev gesture.PinchEvent) {
			a.runAction(action.PinchAction(ev.Scale))
		},
		PullToRefresh: func(ev gesture.PullEvent) {
			a.displayManager.SetPullProgress(ev.Progress)
		},
		PullRelease: func(ev gesture.PullReleaseEvent) {
			a.displayManager.SetPullProgress(0)
			if ev.Triggered {
				a.runAction("pull_refresh")
			}
		},
	}
}

func (a *App) runAction(name string) {
	if a.verbose {
		log.Printf("Gesture recognized: %s", name)
	}
	a.displayManager.SetGesture(name)

	keys := a.actionMapper.Map(name)
	if len(keys) == 0 {
		return
	}
	if err := a.actionExecutor.Execute(keys); err != nil {
		log.Printf("Failed to execute action %q: %v", name, err)
	}
}

// applyConfig applies a hot-reloaded config to the running components.
// Device and TUI settings need a restart and are left alone.
func (a *App) applyConfig(cfg *config.Config) {
	a.gestureEngine.UpdateConfig(cfg.Gestures.Delta())
	a.actionMapper.Reload(cfg.Actions)
	a.displayManager.ForceRefresh()

	if a.verbose {
		log.Println("Applied updated gesture thresholds and actions")
	}
}

func (a *App) Run(ctx context.Context) error {
	if err := a.ptyManager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start TUI: %w", err)
	}

	a.displayManager.Start(ctx)
	a.watcher.Start()

	pollInterval := time.Duration(a.config.Device.PollIntervalMs) * time.Millisecond

	for {
		err := a.device.Pump(ctx, a.surface)
		if ctx.Err() != nil {
			a.shutdown()
			return nil
		}

		log.Printf("Touch pad read failed: %v", err)
		log.Println("Waiting for device to reconnect...")

		if err := a.device.WaitForDevice(ctx, pollInterval*10); err != nil {
			a.shutdown()
			return nil
		}

		log.Println("Touch pad reconnected")
		// Firmware restarts with native gestures enabled; reassert ours.
		a.surface.SetNativeGestures(false)
		a.displayManager.ForceRefresh()
	}
}

func (a *App) shutdown() {
	if a.verbose {
		log.Println("Shutting down...")
	}
	a.watcher.Stop()
	a.gestureEngine.Destroy()
	a.displayManager.Stop()
	a.ptyManager.Stop()
	a.device.Close()
}
