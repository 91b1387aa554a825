// Command station-import mengambil metadata stasiun dari NS API ke CSV
// (fetch) dan memuat CSV tersebut ke tabel stations (load).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"github.com/yeremiapane/bike-reservation/config"
	"github.com/yeremiapane/bike-reservation/database"
	"github.com/yeremiapane/bike-reservation/services"
	"github.com/yeremiapane/bike-reservation/utils"
)

func main() {
	utils.InitLogger()
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "station-import",
		Usage: "import NS station metadata for the bike reservation service",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 2 * time.Minute,
				Usage: "overall deadline for the command",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "fetch",
				Usage: "fetch stations from the NS API and write them as CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Value:   "stations.csv",
						Usage:   "CSV file to write",
					},
				},
				Action: fetchAction,
			},
			{
				Name:  "load",
				Usage: "upsert stations from a CSV file into the stations table",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "input",
						Aliases: []string{"i"},
						Value:   "stations.csv",
						Usage:   "CSV file to read",
					},
				},
				Action: loadAction,
			},
		},
	}
}

func fetchAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	utils.SetLogLevel(cfg.Server.LogLevel)

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	client := services.NewNSClient(&cfg.NS)
	if err := client.ValidateConfig(); err != nil {
		return err
	}

	stations, err := services.NewStationImporter(client).Fetch(ctx)
	if err != nil {
		return err
	}

	path := c.String("output")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := services.WriteStationsCSV(f, stations); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	utils.InfoLogger.Printf("Wrote %d stations to %s", len(stations), path)
	return nil
}

func loadAction(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	utils.SetLogLevel(cfg.Server.LogLevel)

	ctx, cancel := context.WithTimeout(c.Context, c.Duration("timeout"))
	defer cancel()

	path := c.String("input")
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stations, err := services.ReadStationsCSV(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(db.DB, cfg.Database.Schema); err != nil {
		return err
	}

	store := services.NewStore(db.DB, cfg.Database.PoolSize, cfg.Database.AcquireTimeout)
	if _, err := services.NewStationService(store).Upsert(ctx, stations); err != nil {
		return err
	}

	utils.InfoLogger.Printf("Loaded %d stations from %s", len(stations), path)
	return nil
}
