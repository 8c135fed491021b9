// Command orchestrator is a small driver for the session layer: it opens a
// named profile from a workspace config, navigates somewhere, and reports
// what it found. Useful for smoke-testing a driver setup without writing
// workflow code.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/Kasrastar/SeleniumOrchestrator/pkg/browser"
	"github.com/Kasrastar/SeleniumOrchestrator/pkg/config"
	"github.com/Kasrastar/SeleniumOrchestrator/pkg/driver"
	"github.com/Kasrastar/SeleniumOrchestrator/pkg/logging"
	"github.com/Kasrastar/SeleniumOrchestrator/pkg/retry"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "orchestrator",
		Usage:   "manage browser automation sessions",
		Version: version,
		Commands: []*cli.Command{
			openCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func openCommand() *cli.Command {
	return &cli.Command{
		Name:  "open",
		Usage: "open a profile, navigate to a URL and print the page title",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to orchestrator.yaml"},
			&cli.StringFlag{Name: "profile", Value: "default", Usage: "profile (session) name"},
			&cli.StringFlag{Name: "tab", Value: "main", Usage: "name for the initial tab"},
			&cli.StringFlag{Name: "url", Required: true, Usage: "URL to open"},
			&cli.IntFlag{Name: "connect-attempts", Value: 1, Usage: "launch attempts before giving up"},
			&cli.BoolFlag{Name: "keep", Usage: "leave the session open on exit"},
		},
		Action: runOpen,
	}
}

func runOpen(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.LogDir != "" {
		logging.SetLogDirectory(cfg.LogDir)
	}

	logger, _ := logging.NewLogger("cli")
	defer logger.Close()

	manager := browser.NewManager()
	manager.SetMaxSessions(cfg.MaxSessions)

	profile := c.String("profile")
	logger.Infof("opening profile %q (%s)", profile, cfg.Connection.Kind)

	session, err := manager.GetOrCreate(profile, c.String("tab"), dialFunc(c, cfg, logger))
	if err != nil {
		logger.Errorf("connect failed: %v", err)
		return err
	}
	if !c.Bool("keep") {
		defer manager.Remove(profile)
	}
	session.SetPollInterval(cfg.PollInterval())

	url := c.String("url")
	if err := session.Navigate(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}

	title, err := session.Title()
	if err != nil {
		return err
	}

	active, _ := session.ActiveTab()
	fmt.Printf("Profile:  %s\n", profile)
	fmt.Printf("Tab:      %s (%s)\n", active.Name, active.Handle)
	fmt.Printf("URL:      %s\n", url)
	fmt.Printf("Title:    %s\n", title)
	logger.Infof("opened %s (%q)", url, title)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadFromDir(wd)
}

// dialFunc builds the connector closure handed to the registry. Launch
// failures are terminal by default; with --connect-attempts > 1 transient
// initialization failures (a grid node that is still starting up, a
// lingering driver process releasing its port) are retried, while
// configuration mistakes fail immediately.
func dialFunc(c *cli.Context, cfg *config.Config, logger *logging.Logger) browser.DialFunc {
	attempts := c.Int("connect-attempts")
	if attempts < 1 {
		attempts = 1
	}

	return func() (browser.Port, error) {
		var port browser.Port
		policy := retry.Policy{MaxAttempts: uint64(attempts), Delay: time.Second}
		err := retry.Do(c.Context, policy, func() error {
			p, err := driver.Connect(cfg.Options(), cfg.Connection)
			if err != nil {
				var initErr *driver.InitError
				if errors.As(err, &initErr) {
					logger.Warnf("launch attempt failed: %v", err)
					return err
				}
				return retry.Permanent(err)
			}
			port = p
			return nil
		})
		return port, err
	}
}
