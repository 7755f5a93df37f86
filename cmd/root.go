package cmd

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-analyzer/internal/analyzer"
)

const (
	app = "resume-analyzer"
)

type Config struct {
	Service *ServiceConfig `mapstructure:"service"`
	Export  *ExportConfig  `mapstructure:"export"`
}

type ServiceConfig struct {
	URL          string        `mapstructure:"url"`
	Token        string        `mapstructure:"token"`
	TokenFile    string        `mapstructure:"token-file"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRetries   int           `mapstructure:"max-retries"`
	UserAgent    string        `mapstructure:"user-agent"`
	MaxLogLength int           `mapstructure:"max-log-length"`
}

type ExportConfig struct {
	// Dir receives exported reports. Empty means the system temp dir.
	Dir string `mapstructure:"dir"`
}

var envBindings = map[string]string{
	"service.url":        "RESUME_ANALYZER_URL",
	"service.token":      tokenEnv,
	"service.token-file": "RESUME_ANALYZER_TOKEN_FILE",
	"export.dir":         "RESUME_ANALYZER_EXPORT_DIR",
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-analyzer is a simple cli for checking resumes against ATS criteria",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	viper.SetDefault("service.url", analyzer.DefaultAPIURL)
	viper.SetDefault("service.timeout", analyzer.DefaultTimeout)
	viper.SetDefault("service.max-retries", analyzer.DefaultMaxRetries)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-analyzer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("url", "", "analysis service base url")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("service.url", rootCmd.PersistentFlags().Lookup("url"))
}

func initConfig() {
	// .env is a convenience for local runs; a missing file is fine.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless given explicitly, but a broken one is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Service == nil {
		config.Service = &ServiceConfig{}
	}
	if config.Export == nil {
		config.Export = &ExportConfig{}
	}

	return config, nil
}
