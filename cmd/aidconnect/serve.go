package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"aidconnect/internal/account"
	"aidconnect/internal/aid"
	"aidconnect/internal/mailer"
	"aidconnect/internal/server"
	"aidconnect/internal/storage"
	"aidconnect/internal/store"
	"aidconnect/pkg/types"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	s3Client := s3.NewFromConfig(awsConfig)
	objectStorage := storage.NewS3Storage(s3Client, config.S3Bucket)

	smtp, err := mailer.NewSMTP(
		config.SMTPHost,
		config.SMTPPort,
		config.SMTPUsername,
		config.SMTPPassword,
		config.MailFrom,
	)
	if err != nil {
		return err
	}

	ngoRepo := store.NewNGORepository(
		store.NewFileCollection[types.NGO](filepath.Join(config.DataDir, "ngousers.json")))
	requestRepo := store.NewRequestRepository(
		store.NewFileCollection[types.AidRequest](filepath.Join(config.DataDir, "uploads.json")))
	tokenRepo := store.NewResetTokenRepository(
		store.NewFileCollection[types.ResetToken](filepath.Join(config.DataDir, "reset_tokens.json")))

	aidService := aid.NewService(logger, requestRepo, ngoRepo, objectStorage)
	accounts := account.NewService(logger, ngoRepo, tokenRepo, smtp, account.Config{
		AdminUsername: config.AdminUsername,
		AdminPassword: config.AdminPassword,
		TokenSecret:   config.ResetTokenSecret,
		TokenTTL:      time.Duration(config.ResetTokenTTLMin) * time.Minute,
	})

	srv, err := server.New(config, logger, aidService, accounts)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
