package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/starford/careergraph/internal"
	"github.com/starford/careergraph/internal/models"
	pkgconfig "github.com/starford/careergraph/pkg/config"
)

var version = "dev"

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}
}

func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if err := pkgconfig.Load(cmd.String("config"), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg), internal.WithVersion(version)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func importDataset(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := internal.Import(ctx, cmd.String("from"), internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("import error: %w", err)
	}
	return nil
}

func serveMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return internal.ServeMCP(ctx, internal.WithConfig(cfg), internal.WithVersion(version))
}

func query(_ context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	args := cmd.Args()
	if args.Len() != 2 {
		return fmt.Errorf("usage: query <paths|holders|titles> <argument>")
	}
	engine, _, err := internal.LoadEngine(cfg)
	if err != nil {
		return err
	}

	var out any
	switch op, arg := args.Get(0), args.Get(1); op {
	case "paths":
		out = engine.PathsWithFollowers(arg)
	case "holders":
		out = engine.CurrentHolders(arg)
	case "titles":
		id, convErr := strconv.Atoi(arg)
		if convErr != nil {
			return fmt.Errorf("person id must be an integer: %q", arg)
		}
		out = engine.TitlesHeldBy(models.PersonID(id))
	default:
		return fmt.Errorf("unknown query %q", op)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func main() {
	cmd := &cli.Command{
		Name:    "careergraph",
		Usage:   "Career progression paths, current title holders, and title histories",
		Version: version,
		Action:  serve,
		Flags:   []cli.Flag{configFlag()},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the HTTP API",
				Action: serve,
				Flags:  []cli.Flag{configFlag()},
			},
			{
				Name:   "import",
				Usage:  "Copy a YAML dataset into the SQLite database",
				Action: importDataset,
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "from",
						Usage: "YAML dataset to import (defaults to dataset.path)",
					},
				},
			},
			{
				Name:   "mcp",
				Usage:  "Serve the query tools over MCP stdio",
				Action: serveMCP,
				Flags:  []cli.Flag{configFlag()},
			},
			{
				Name:      "query",
				Usage:     "Run one query and print the JSON result",
				ArgsUsage: "<paths|holders|titles> <argument>",
				Action:    query,
				Flags:     []cli.Flag{configFlag()},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
