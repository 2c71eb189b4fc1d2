package main

import (
	"careertest/internal/content"
	"careertest/internal/repository"
	"careertest/internal/service"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		mongoURI string
		database string
		file     string
		version  string
		timeout  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write the question bank and profiles to MongoDB",
		Long: `Seed validates a content bundle and replaces the questions and profiles
stored under its version. Without --file the bundle compiled into the
server is used.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			bundle, err := content.EmbeddedBundle()
			if file != "" {
				var data []byte
				data, err = os.ReadFile(file)
				if err != nil {
					return err
				}
				bundle, err = content.Decode(data)
			}
			if err != nil {
				return err
			}
			if version != "" {
				bundle.Version = version
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
			if err != nil {
				return fmt.Errorf("connect to mongodb: %w", err)
			}
			defer client.Disconnect(context.Background())

			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			defer logger.Sync()

			svc := service.NewContentService(repository.NewContentRepo(client.Database(database)), logger)
			if err := svc.Seed(ctx, bundle); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d questions and %d profiles as %q\n",
				len(bundle.Questions), len(bundle.Profiles), bundle.Version)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&mongoURI, "mongo-uri", envOr("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection string")
	flags.StringVar(&database, "database", envOr("MONGO_DB", "careertest"), "database name")
	flags.StringVarP(&file, "file", "f", "", "YAML bundle to seed instead of the embedded one")
	flags.StringVar(&version, "version", "", "override the bundle version")
	flags.DurationVar(&timeout, "timeout", 10*time.Second, "overall timeout")
	return cmd
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
