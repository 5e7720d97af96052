package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/romangod6/sitemap-gen/config"
	"github.com/romangod6/sitemap-gen/internal/utils"
)

// mustBindPFlag attempts to bind a specific key to a pflag (as used by cobra) and panics
// if the binding fails with a non-nil error.
func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic("failed to bind pflag: " + err.Error())
	}
}

// bindBuildFlags registers the flags shared by commands that build a
// sitemap and binds them to v.
func bindBuildFlags(command *cobra.Command, v *viper.Viper) {
	flags := command.Flags()

	flags.String("configuration", config.DefaultConfiguration, "path to the route configuration file")
	mustBindPFlag(v, "sitemap.configuration", flags.Lookup("configuration"))

	flags.Int64("mandateId", 0, "restrict fetched values to this website (mandate)")
	mustBindPFlag(v, "database.tenantid", flags.Lookup("mandateId"))

	flags.Bool("allow-empty", false, "let routes whose parameters resolve to no values produce no urls")
	mustBindPFlag(v, "sitemap.allowempty", flags.Lookup("allow-empty"))

	flags.String("scheme", "http", "URL scheme of generated locations (http or https)")
	mustBindPFlag(v, "sitemap.scheme", flags.Lookup("scheme"))

	flags.String("driver", "sqlite3", "database driver (sqlite3, postgres or memory)")
	mustBindPFlag(v, "database.driver", flags.Lookup("driver"))

	flags.String("database-url", "sitemap.db", "database file or connection URL")
	mustBindPFlag(v, "database.url", flags.Lookup("database-url"))

	flags.String("log-level", "info", "log level (debug, info, warn, error or none)")
	mustBindPFlag(v, "log.level", flags.Lookup("log-level"))

	flags.String("log-format", "text", "log format (text or json)")
	mustBindPFlag(v, "log.format", flags.Lookup("log-format"))

	flags.String("log-dir", "", "also write logs to a file in this directory")
	mustBindPFlag(v, "log.dir", flags.Lookup("log-dir"))
}

// loadSettings reads the configuration bound to v and creates its logger.
func loadSettings(v *viper.Viper) (*config.Config, *utils.Logger, error) {
	cfg, err := config.LoadConfig(v)
	if err != nil {
		return nil, nil, err
	}

	logger, err := utils.NewLogger(cfg.Log.Format, cfg.Log.Level, cfg.Log.Dir)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}
