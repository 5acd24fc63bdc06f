package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "Parnaso"
	app.Usage = ""
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path of the TOML configuration file",
			Value: "config.toml",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Category:    "Api",
			Description: `Used for start service api, the main service included all apis.`,
			Flags: []cli.Flag{
				&cli.Int64Flag{
					Name:  "node-id",
					Usage: "Snowflake node id of this api instance",
					Value: 0,
				},
			},
		},
		{
			Action:      s.startProxy,
			Name:        "proxy",
			Usage:       "Start service proxy",
			Category:    "Websocket",
			Description: `Used to push realtime events to clients via websocket.`,
		},
		{
			Action:      s.startCron,
			Name:        "cron",
			Usage:       "Start service cron",
			Category:    "Worker",
			Description: `Used to run periodic jobs like finishing competitions.`,
		},
		{
			Action:      s.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database to a specific version",
			Category:    "Worker",
			Description: `Used to migrate database schema to a specific version.`,
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "version",
					Usage: "The version to migrate to",
					Value: "auto",
				},
			},
		},
	}

	s.app = app
}
