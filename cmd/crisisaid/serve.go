package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DurjoyKumar177/CrisisAid-Backend/cmd/config"
	migration "github.com/DurjoyKumar177/CrisisAid-Backend/cmd/database/migrate"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils/mailing"
	"github.com/DurjoyKumar177/CrisisAid-Backend/internal/utils/storage"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:  "serve",
	Usage: "Start the HTTP server",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "migrate",
			Usage: "Run database migrations before serving",
		},
	},
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := utils.LoadConfig(cCtx.String("config"))
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	db, err := config.ConnectDB(cfg)
	if err != nil {
		return err
	}
	if cCtx.Bool("migrate") {
		if err := migration.Migrate(db); err != nil {
			return err
		}
		logger.Info("database migrated")
	}

	s3, err := storage.NewAwsS3(ctx, storage.S3Config{
		Bucket:    cfg.AWSS3Bucket,
		Region:    cfg.AWSS3Region,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
	})
	if err != nil {
		return err
	}
	mailer := mailing.NewSMTPSender(mailing.MailConfig{
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPSender:   cfg.SMTPSenderName,
		SMTPEmail:    cfg.SMTPAuthEmail,
		SMTPPassword: cfg.SMTPAuthPassword,
	})

	app, err := config.NewApp(db, cfg, logger, s3, mailer)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", cfg.ServerPort).Info("server starting")
		if err := app.Listen(":" + cfg.ServerPort); err != nil {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}
