package cli

import (
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/maneuver/logging"
)

const (
	// Flags.
	generalFlagDebug   = "debug"
	generalFlagLogFile = "log-file"

	planFlagScene      = "scene"
	planFlagPNG        = "png"
	planFlagJSON       = "json"
	planFlagCellPixels = "cell-pixels"
	planFlagName       = "name"
	planFlagProfile    = "profile"

	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
)

// NewApp returns the maneuver CLI application.
func NewApp() *cli.App {
	var (
		logger   logging.Logger
		fileSink *logging.FileAppender
	)

	return &cli.App{
		Name:  "maneuver",
		Usage: "plan single-arc maneuvers against a costmap",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    generalFlagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.StringFlag{
				Name:  generalFlagLogFile,
				Usage: "also write logs to `FILE`, rotating it as it grows",
			},
		},
		Before: func(c *cli.Context) error {
			// Logs go to stderr; stdout carries the plan.
			logger = logging.NewBlankLogger("cli")
			logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
			if !c.Bool(generalFlagDebug) {
				logger.SetLevel(logging.INFO)
			}
			if path := c.String(generalFlagLogFile); path != "" {
				fileSink = logging.NewFileAppender(path, logFileMaxSizeMB, logFileMaxBackups)
				logger.AddAppender(fileSink)
			}
			logging.ReplaceGlobal(logger)
			return nil
		},
		After: func(c *cli.Context) error {
			if logger == nil {
				return nil
			}
			err := logger.Sync()
			if fileSink != nil {
				err = multierr.Append(err, fileSink.Close())
			}
			return err
		},
		Commands: []*cli.Command{
			{
				Name:      "plan",
				Usage:     "plan the maneuver described by a scene file",
				UsageText: "maneuver plan --scene <scene.json> [--png <out.png>] [--profile <out.png>] [--json]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     planFlagScene,
						Required: true,
						Usage:    "read the planning request from `FILE`",
					},
					&cli.StringFlag{
						Name:  planFlagPNG,
						Usage: "render the costmap and the planned path to `FILE`",
					},
					&cli.StringFlag{
						Name:  planFlagProfile,
						Usage: "plot heading against distance travelled to `FILE`",
					},
					&cli.BoolFlag{
						Name:  planFlagJSON,
						Usage: "print the plan as JSON instead of a table",
					},
					&cli.IntFlag{
						Name:  planFlagCellPixels,
						Value: 4,
						Usage: "pixels per costmap cell when rendering",
					},
					&cli.StringFlag{
						Name:  planFlagName,
						Value: "maneuver_planner",
						Usage: "name of the planner instance, used in logs",
					},
				},
				Action: func(c *cli.Context) error {
					return PlanAction(c, logger)
				},
			},
			{
				Name:  "schema",
				Usage: "print the JSON schema of scene files",
				Action: func(c *cli.Context) error {
					return SchemaAction(c)
				},
			},
		},
	}
}
