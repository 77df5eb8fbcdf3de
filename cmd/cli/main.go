package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"corridor-report/internal/config"
	"corridor-report/internal/pipeline"
	"corridor-report/internal/report"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	var (
		cfgPath    string
		apiKey     string
		outPath    string
		fromDate   string
		toDate     string
		logFile    string
		verbose    bool
		rollover24 bool
		strictCols bool
	)

	app := &cli.App{
		Name:  "corridor-report",
		Usage: "Download and merge PSE and JAO reports from the last 30 days",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "YAML config file path (optional, defaults apply without it)",
				Destination: &cfgPath,
			},
			&cli.StringFlag{
				Name:        "api-key",
				Aliases:     []string{"k"},
				Usage:       "JAO API key; when set, the token file is ignored",
				EnvVars:     []string{"JAO_API_KEY"},
				Destination: &apiKey,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "Output path for the joined report CSV (e.g. ~/myreport.csv)",
				Destination: &outPath,
			},
			&cli.StringFlag{
				Name:        "from",
				Usage:       "Start of the reporting period (YYYY-MM-DD, default: window before --to)",
				Destination: &fromDate,
			},
			&cli.StringFlag{
				Name:        "to",
				Usage:       "End of the reporting period (YYYY-MM-DD, default: today)",
				Destination: &toDate,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "Also write logs to this file",
				Destination: &logFile,
			},
			&cli.BoolFlag{
				Name:        "verbose",
				Aliases:     []string{"v"},
				Usage:       "Enable debug logging",
				Destination: &verbose,
			},
			&cli.BoolFlag{
				Name:        "rollover-24",
				Usage:       "Map PSE hour 24 to 00:00 of the next day instead of the same date",
				Destination: &rollover24,
			},
			&cli.BoolFlag{
				Name:        "strict-columns",
				Usage:       "Fail on column name collisions instead of suffixing _x/_y",
				Destination: &strictCols,
			},
		},
		Action: func(c *cli.Context) error {
			logger, err := buildLogger(verbose, logFile)
			if err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}
			defer logger.Sync()

			cfg := config.Default()
			if cfgPath != "" {
				cfg, err = config.Load(cfgPath)
				if err != nil {
					return err
				}
			}

			params := pipeline.RunParams{
				APIKey: apiKey,
				Out:    outPath,
				PSE:    report.PSEOptions{RolloverHour24: rollover24},
			}
			if strictCols {
				params.Collision = report.ErrorOnCollisions
			}
			if fromDate != "" {
				params.Start, err = time.Parse("2006-01-02", fromDate)
				if err != nil {
					return fmt.Errorf("invalid --from date (expected YYYY-MM-DD): %w", err)
				}
			}
			if toDate != "" {
				params.End, err = time.Parse("2006-01-02", toDate)
				if err != nil {
					return fmt.Errorf("invalid --to date (expected YYYY-MM-DD): %w", err)
				}
			}

			joined, err := pipeline.New(cfg, logger).Run(params)
			if err != nil {
				if pipeline.IsExpected(err) {
					logger.Error("error occurred", zap.Error(err))
					logger.Sync()
					os.Exit(1)
				}
				return err
			}

			fmt.Printf("Joined report has %d rows across %d columns\n", len(joined.Rows), len(joined.Columns))
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// buildLogger assembles the per-run logger: console output, optionally teed
// to a file, debug level behind --verbose.
func buildLogger(verbose bool, logFile string) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	if logFile != "" {
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
	}
	return cfg.Build()
}
