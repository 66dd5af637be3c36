package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/ehwaz/internal"
	pkgconfig "github.com/starford/ehwaz/pkg/config"
)

func run(ctx context.Context, cmd *cli.Command) error {
	cfg := internal.NewDefaultConfig()

	configPath := cmd.String("config")
	if cmd.IsSet("config") {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	} else if _, err := os.Stat(configPath); err == nil {
		if err := pkgconfig.Load(configPath, cfg); err != nil {
			return fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Flags override file values.
	if cmd.IsSet("vault") {
		cfg.Vault.Path = cmd.String("vault")
	}
	if cmd.IsSet("site") {
		cfg.Site.Path = cmd.String("site")
	}
	if cmd.IsSet("posts-dir") {
		cfg.Site.PostsDir = cmd.String("posts-dir")
	}
	if cmd.IsSet("assets-dir") {
		cfg.Site.AssetsDir = cmd.String("assets-dir")
	}
	if cmd.IsSet("journal") {
		cfg.Journal.Path = cmd.String("journal")
	}
	if cmd.Bool("watch") {
		cfg.Watch = true
	}
	if cmd.Bool("serve") {
		cfg.App.HTTP.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:   "ehwaz",
		Usage:  "Export a Markdown vault to a Hugo-style site tree, once or continuously under watch",
		Action: run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "vault",
				Aliases: []string{"o"},
				Usage:   "Source vault directory",
			},
			&cli.StringFlag{
				Name:    "site",
				Aliases: []string{"g"},
				Usage:   "Destination site directory",
			},
			&cli.StringFlag{
				Name:    "posts-dir",
				Aliases: []string{"p"},
				Usage:   "Posts subdirectory under the site directory",
			},
			&cli.StringFlag{
				Name:    "assets-dir",
				Aliases: []string{"a"},
				Usage:   "Assets subdirectory under the site directory",
			},
			&cli.StringFlag{
				Name:  "journal",
				Usage: "Path to the export journal database (empty disables it)",
			},
			&cli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Keep running and re-export notes as they change",
			},
			&cli.BoolFlag{
				Name:  "serve",
				Usage: "Serve the status API while watching",
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
