package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/romangod6/sitemap-gen/internal/storage"
)

const (
	DefaultConfiguration = "app/Resources/sitemap/paths.yml"
	DefaultOutput        = "web/xml/"
)

type Config struct {
	Database struct {
		Driver       string
		URL          string
		TenantID     int64
		TenantColumn string
		TenantTable  string
		OrderColumn  string
	}
	Sitemap struct {
		Configuration string
		Output        string
		Scheme        string
		AllowEmpty    bool
	}
	Server struct {
		Port int
	}
	Log struct {
		Level  string
		Format string
		Dir    string
	}
}

// NewViper returns a viper instance with defaults, reading config.yaml from
// the working directory or ./config and SITEMAP_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvPrefix("SITEMAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Default values
	v.SetDefault("database.driver", "sqlite3")
	v.SetDefault("database.url", "sitemap.db")
	v.SetDefault("database.tenantid", 0)
	v.SetDefault("database.tenantcolumn", storage.DefaultTenantColumn)
	v.SetDefault("database.tenanttable", storage.DefaultTenantTable)
	v.SetDefault("database.ordercolumn", storage.DefaultOrderColumn)
	v.SetDefault("sitemap.configuration", DefaultConfiguration)
	v.SetDefault("sitemap.output", DefaultOutput)
	v.SetDefault("sitemap.scheme", "http")
	v.SetDefault("sitemap.allowempty", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.dir", "")

	return v
}

// LoadConfig reads the config file, if there is one, and decodes the
// merged settings.
func LoadConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// StoreOptions returns the storage options of the database section.
func (c *Config) StoreOptions() storage.Options {
	return storage.Options{
		TenantID:     c.Database.TenantID,
		TenantColumn: c.Database.TenantColumn,
		TenantTable:  c.Database.TenantTable,
		OrderColumn:  c.Database.OrderColumn,
	}
}
