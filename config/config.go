package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const configFileEnvName = "LOGBEAUTY_CONFIG_FILE"

type catalog struct {
	ProjectID       string `mapstructure:"project_id"`
	CredentialsFile string `mapstructure:"credentials_file"`
	Collection      string `mapstructure:"collection"`
	StorageBucket   string `mapstructure:"storage_bucket"`
}

type Config struct {
	LogLevel slog.Level `mapstructure:"log_level"`
	StateDir string     `mapstructure:"state_dir"`
	Catalog  catalog    `mapstructure:"catalog"`
}

func Load() Config {
	viper.SetConfigFile(getConfigFilepath())
	viper.SetDefault("catalog.collection", "products")
	viper.SetDefault("state_dir", ".logbeauty")

	err := viper.ReadInConfig()
	if err != nil {
		die(err)
	}

	var cfg Config
	err = viper.Unmarshal(&cfg)
	if err != nil {
		die(err)
	}

	return cfg
}

func getConfigFilepath() string {
	cmdLine := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)
	cmdLine.ParseErrorsWhitelist.UnknownFlags = true
	arg := cmdLine.String("config", "config.yaml", "config file")
	_ = cmdLine.Parse(os.Args[1:])
	env, ok := os.LookupEnv(configFileEnvName)
	if ok {
		return env
	}
	return *arg
}

func die(err error) {
	fmt.Printf("failed to load config file: %v\n", err)
	os.Exit(2)
}

func (c Config) Print() {
	tamplate := `
	General:
	LogLevel=%q
	StateDir=%q

	Catalog:
	ProjectID=%q
	CredentialsFile=%q
	Collection=%q
	StorageBucket=%q

`
	fmt.Println("Loaded config:")
	fmt.Printf(
		strings.TrimLeft(tamplate, "\n"),
		c.LogLevel,
		c.StateDir,
		c.Catalog.ProjectID,
		c.Catalog.CredentialsFile,
		c.Catalog.Collection,
		c.Catalog.StorageBucket,
	)
}
