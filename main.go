// Command leaftools extracts To Heart LVNS3*.PAK archives and converts
// their LF2 images to PNG.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "leaftools",
		Usage: "unpack LEAFPACK archives and convert LEAF256 images",
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:  "config",
				Value: defaultConfigPath(),
				Usage: "TOML config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error (overrides config)",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			&cmdList,
			&cmdExtract,
			&cmdGet,
			&cmdConvert,
			&cmdConfig,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("leaftools")
	}
}

func setup(c *cli.Context) error {
	cfg, err := loadConfig(c.Path("config"))
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log.SetHandler(logcli.New(os.Stderr))
	log.SetLevel(level)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata["config"] = cfg
	return nil
}

func appConfig(c *cli.Context) *Config {
	if cfg, ok := c.App.Metadata["config"].(*Config); ok {
		return cfg
	}
	return defaultConfig()
}

var cmdList = cli.Command{
	Name:      "list",
	Usage:     "Print the file table of an archive",
	ArgsUsage: "<archive.pak>",
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("list requires an archive", 1)
		}
		return listBundle(c.Args().First(), appConfig(c), os.Stdout)
	},
}

var cmdExtract = cli.Command{
	Name:      "extract",
	Usage:     "Extract every entry of an archive",
	ArgsUsage: "<archive.pak>",
	Flags: []cli.Flag{
		&cli.PathFlag{Name: "out", Aliases: []string{"o"}, Usage: "output folder (default from config)"},
		&cli.StringFlag{Name: "pattern", Usage: "only entries whose name matches this regexp"},
		&cli.BoolFlag{Name: "convert", Usage: "also write LF2 entries as PNG"},
		&cli.BoolFlag{Name: "exact-rows", Usage: "flip rows with height-1-y instead of the legacy mapping"},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.Exit("extract requires an archive", 1)
		}
		cfg := applyFlags(c, appConfig(c))
		return extractBundle(c.Args().First(), cfg.OutputDir, c.String("pattern"), cfg)
	},
}

var cmdGet = cli.Command{
	Name:      "get",
	Usage:     "Extract a single entry by index (.png output converts LF2)",
	ArgsUsage: "<archive.pak> <index> <output>",
	Flags: []cli.Flag{
		&cli.BoolFlag{Name: "exact-rows", Usage: "flip rows with height-1-y instead of the legacy mapping"},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() != 3 {
			return cli.Exit("get requires <archive.pak> <index> <output>", 1)
		}
		index, err := strconv.Atoi(c.Args().Get(1))
		if err != nil {
			return cli.Exit(fmt.Sprintf("invalid index '%s': must be a number", c.Args().Get(1)), 1)
		}
		return extractSingleFile(c.Args().Get(0), index, c.Args().Get(2), applyFlags(c, appConfig(c)))
	},
}

var cmdConvert = cli.Command{
	Name:      "convert",
	Usage:     "Convert LF2 images (files or folders) to PNG",
	ArgsUsage: "<file-or-folder>...",
	Flags: []cli.Flag{
		&cli.PathFlag{Name: "out", Aliases: []string{"o"}, Usage: "output folder (default from config)"},
		&cli.BoolFlag{Name: "exact-rows", Usage: "flip rows with height-1-y instead of the legacy mapping"},
	},
	Action: func(c *cli.Context) error {
		if c.NArg() == 0 {
			return cli.Exit("convert requires at least one file or folder", 1)
		}
		cfg := applyFlags(c, appConfig(c))
		return convertImages(c.Args().Slice(), cfg.OutputDir, cfg)
	},
}

var cmdConfig = cli.Command{
	Name:  "config",
	Usage: "Manage the config file",
	Subcommands: []*cli.Command{
		{
			Name:  "init",
			Usage: "Write the default config",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "force", Usage: "overwrite an existing file"},
			},
			Action: func(c *cli.Context) error {
				path := c.Path("config")
				if _, err := os.Stat(path); err == nil && !c.Bool("force") {
					return cli.Exit(fmt.Sprintf("%s already exists (use --force)", path), 1)
				}
				if err := saveConfig(path, defaultConfig()); err != nil {
					return err
				}
				log.WithField("path", path).Info("wrote config")
				return nil
			},
		},
	},
}

// applyFlags copies command flags over a copy of cfg.
func applyFlags(c *cli.Context, cfg *Config) *Config {
	out := *cfg
	if c.IsSet("out") {
		out.OutputDir = c.Path("out")
	}
	if c.Bool("convert") {
		out.ConvertImages = true
	}
	if c.Bool("exact-rows") {
		out.RowOrder = "exact"
	}
	return &out
}
