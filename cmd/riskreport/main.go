package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"riskreport/internal/cli"
	"riskreport/internal/config"
	"riskreport/internal/database"
	"riskreport/internal/logger"
	"riskreport/internal/report"
	"riskreport/internal/risk"
	"riskreport/internal/services"
	"riskreport/internal/store"
)

func main() {
	os.Exit(int(run()))
}

func run() subcommands.ExitStatus {
	appConfig, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load configuration: %v\n", err)
		return subcommands.ExitFailure
	}
	logger.Init(appConfig.Env)
	defer logger.Sync()

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	mode, err := risk.ParseWriteMode(appConfig.KeyFigureWriteMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	conn := store.New(dbManager.DB())
	app := &cli.App{
		Reports: report.NewService(risk.NewGenerator(conn, risk.WithWriteMode(mode))),
		Catalog: services.NewCatalogService(conn),
	}

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cli.Register(commander, app)

	flag.Parse()
	return commander.Execute(context.Background())
}
