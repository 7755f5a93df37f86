package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/logger"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the analysis service is up",
	Run: func(cmd *cobra.Command, _ []string) {
		health(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func health(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}

	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	client, err := newClient(config.Service, logger)
	if err != nil {
		logger.Fatal("creating analysis client", zap.Error(err))
	}

	status, err := client.Health(ctx)
	if err != nil {
		logger.Fatal("checking service health", zap.String("url", client.APIURL), zap.Error(err))
	}

	if !status.Healthy() {
		logger.Fatal("service is not healthy", zap.String("status", status.Status))
	}

	fmt.Printf("%s is %s (%s)\n", client.APIURL, status.Status, status.Timestamp)
}
