package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "agrigen",
		Usage: "turn forwarded opportunity messages into Agri Updates drafts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/config.yaml",
				Usage:   "path to the YAML config",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "generate a post from a message file, or stdin when no file is given",
				ArgsUsage: "[file]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "polish", Usage: "ask the configured LLM to rewrite the text first"},
					&cli.BoolFlag{Name: "trace", Usage: "print the pipeline states visited"},
				},
				Action: GenerateAction,
			},
			{
				Name:      "polish",
				Usage:     "send a message to the configured LLM and print the raw rewrite",
				ArgsUsage: "[file]",
				Action:    PolishAction,
			},
			{
				Name:   "dbping",
				Usage:  "connect to the configured database and count pending drafts",
				Action: DBPingAction,
			},
		},
	}
}
