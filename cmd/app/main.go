package main

import (
	"LivenessGateway/internal/config"
	"LivenessGateway/pkg/log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("No .env file loaded: %v", err)
	}

	env, err := config.LoadEnv()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	logger := log.NewLogger(log.Config{
		Level:  env.LogLevel,
		Env:    env.AppEnv,
		LogDir: env.LogDir,
	})

	server, err := config.NewServer(
		config.WithFiber(config.NewFiber()),
		config.WithLogger(logger),
		config.WithEnv(env),
		config.WithValidator(config.NewValidator()),
		config.WithMiddleware(),
		config.WithAWSSession(),
		config.WithRekognitionClient(nil),
		config.WithS3Presigner(nil),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.WithFields(log.Fields{
		"port":                 env.AppPort,
		"region":               env.AWSRegion,
		"liveness_threshold":   env.LivenessConfidenceThreshold,
		"similarity_threshold": env.CompareSimilarityThreshold,
		"rekognition_timeout":  env.RekognitionTimeout.String(),
	}).Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	if err := server.Shutdown(10 * time.Second); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
