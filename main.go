// Package main provides the entry point for the OpenCami desktop shell.
// OpenCami Desktop wraps the OpenCami web application in a native window
// with a system tray icon, extra windows on demand and launch at login.
//
// Usage:
//
//	opencami-desktop [options]
//
// Environment:
//
//	OPENCAMI_REMOTE_URL overrides the address that is loaded.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/yllada/opencami-desktop/autostart"
	"github.com/yllada/opencami-desktop/cli"
	"github.com/yllada/opencami-desktop/common"
	"github.com/yllada/opencami-desktop/config"
	"github.com/yllada/opencami-desktop/remote"
	"github.com/yllada/opencami-desktop/ui"
)

// Build-time variables injected via ldflags (-X main.appVersion=x.y.z)
// Default values are used for local development builds
var (
	appVersion = "dev"
	buildTime  = "unknown"
	commitSHA  = "unknown"
)

var (
	// GUI/General flags
	showVersion = flag.Bool("version", false, "Show version and exit")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	showHelp    = flag.Bool("help", false, "Show help message")
	minimal     = flag.Bool("minimal", false, "Single window without tray")
	startHidden = flag.Bool("hidden", false, "Start with the window hidden")

	// CLI flags
	printURL      = flag.Bool("print-url", false, "Print the address that would be loaded")
	autostartMode = flag.String("autostart", "", "Launch at login: on, off or status")
)

func main() {
	flag.Parse()

	if *showHelp {
		cli.PrintHelp()
		os.Exit(0)
	}

	logLevel := common.LevelInfo
	if *verbose {
		logLevel = common.LevelDebug
	}

	if err := common.InitLogger(common.LogConfig{
		Level:       logLevel,
		EnableFile:  true,
		MaxFileSize: 5 * 1024 * 1024, // 5MB
		MaxBackups:  5,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize file logging: %v\n", err)
	}
	defer common.CloseLogger()

	// .env files only fill in what the environment leaves unset.
	configDir, _ := common.GetConfigDir()
	for _, path := range config.LoadEnv(configDir) {
		common.LogDebug("Loaded environment from %s", path)
	}

	if *showVersion || *printURL || *autostartMode != "" {
		code := runCLI()
		common.CloseLogger()
		os.Exit(code)
	}

	common.LogInfo("Starting %s v%s", common.AppName, appVersion)
	app := ui.NewApplication(common.AppID, ui.Options{
		Version:     appVersion,
		Minimal:     *minimal,
		StartHidden: *startHidden,
	})
	setupSignalHandler(app.Quit)

	exitCode := app.Run(os.Args)
	if exitCode != 0 {
		common.LogWarn("Application exited with code %d", exitCode)
	}
	common.CloseLogger()
	os.Exit(exitCode)
}

// runCLI handles the commands that do not start the GUI and returns the exit code.
func runCLI() int {
	agent, err := autostart.New()
	if err != nil {
		agent = autostart.Unavailable(err)
	}
	c := cli.New(remote.NewResolver(), autostart.NewToggle(agent))

	var cliErr error
	switch {
	case *showVersion:
		c.Version(appVersion, buildTime, commitSHA)
	case *printURL:
		cliErr = c.PrintURL()
	case *autostartMode != "":
		cliErr = c.Autostart(*autostartMode)
	}

	if cliErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cliErr)
		return 1
	}
	return 0
}

// setupSignalHandler quits the application on SIGINT/SIGTERM.
func setupSignalHandler(quit func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		common.LogInfo("Received signal %v, shutting down", sig)
		quit()
	}()
}
