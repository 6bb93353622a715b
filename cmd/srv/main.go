package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	server := &srv{}

	app := &cli.App{
		Name:  "questhive",
		Usage: "QuestHive verification backend",
		Commands: []*cli.Command{
			{
				Name:   "api",
				Usage:  "Start the API server",
				Action: server.startApi,
			},
			{
				Name:   "migrate",
				Usage:  "Migrate the database schema",
				Action: server.migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
