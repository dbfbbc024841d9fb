package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/blog-admin-backend/api"
	"github.com/rpupo63/blog-admin-backend/config"
	"github.com/rpupo63/blog-admin-backend/database"
	"github.com/rpupo63/blog-admin-backend/models"
	"github.com/rpupo63/blog-admin-backend/storage"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("Initializing app...")

	c, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading .env file")
	}

	ctx := context.Background()
	loadAWS := lazyAWSConfig(ctx)

	if path := config.GetString(c, "SSM_PARAMETER_PATH", ""); path != "" {
		awsCfg, err := loadAWS()
		if err != nil {
			log.Fatal().Err(err).Msg("Error loading AWS config")
		}
		applied, err := config.OverlaySSM(ctx, ssm.NewFromConfig(awsCfg), path, c)
		if err != nil {
			log.Fatal().Err(err).Msg("Error reading SSM parameters")
		}
		log.Info().Int("parameters", applied).Str("path", path).Msg("Loaded configuration from SSM")
	}

	setLogLevel(config.GetString(c, "LOG_LEVEL", "info"))

	db, err := database.Open(database.Options{
		DSN:             config.GetString(c, "DATABASE_URL", ""),
		ReplicaDSNs:     config.GetStrings(c, "DB_REPLICA_URLS"),
		MaxOpenConns:    config.GetInt(c, "DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    config.GetInt(c, "DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: 30 * time.Minute,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error connecting to database")
	}

	// If generating models, run generation and exit
	if config.GetBool(c, "GENERATE_MODELS", false) {
		log.Info().Msg("Generating models and query helpers...")
		if err := models.GenerateModels(db, "./generated"); err != nil {
			log.Fatal().Err(err).Msg("Error generating models")
		}
		return
	}

	// If generating column mismatch report, run report and exit
	if config.GetBool(c, "GENERATE_COLUMN_REPORT", false) {
		if _, err := models.LogColumnMismatchReport(db); err != nil {
			log.Fatal().Err(err).Msg("Error generating column mismatch report")
		}
		return
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Error migrating database")
	}

	currentDB := database.New(db)
	if err := currentDB.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Error testing database connection")
	}

	var images api.ImageUploader
	if bucket := config.GetString(c, "S3_BUCKET", ""); bucket != "" {
		awsCfg, err := loadAWS()
		if err != nil {
			log.Fatal().Err(err).Msg("Error loading AWS config")
		}
		images = storage.NewS3Storage(s3.NewFromConfig(awsCfg), bucket, config.GetString(c, "S3_PUBLIC_BASE_URL", ""))
	} else {
		log.Warn().Msg("S3_BUCKET is not set, featured image uploads are disabled")
	}

	// Start and listenToInterrupt each send at most once
	errChannel := make(chan error, 2)

	server, err := api.NewServer(currentDB, c, images)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}

// lazyAWSConfig loads the default AWS config on first use only.
func lazyAWSConfig(ctx context.Context) func() (aws.Config, error) {
	var (
		cfg    aws.Config
		err    error
		loaded bool
	)
	return func() (aws.Config, error) {
		if !loaded {
			cfg, err = awsconfig.LoadDefaultConfig(ctx)
			loaded = true
		}
		return cfg, err
	}
}

func setLogLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		log.Warn().Str("level", level).Msg("unknown LOG_LEVEL, using info")
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
}
