package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Env struct {
	AppPort  string
	AppEnv   string
	LogLevel string
	LogDir   string

	AWSRegion          string
	AWSProfile         string
	AWSAccessKeyID     string
	AWSSecretAccessKey string

	LivenessConfidenceThreshold float64
	CompareSimilarityThreshold  float64
	RekognitionTimeout          time.Duration
	AuditImagesLimit            int64
	OutputBucket                string
	OutputKeyPrefix             string
	PresignAuditImages          bool

	CORSAllowOrigins string
}

// LoadEnv reads the process environment. Call godotenv.Load first when a
// .env file should be honoured.
func LoadEnv() (*Env, error) {
	env := &Env{
		AppPort:            getEnv("APP_PORT", "5000"),
		AppEnv:             getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "debug"),
		LogDir:             getEnv("LOG_DIR", "./storage/logs"),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		AWSProfile:         os.Getenv("AWS_PROFILE"),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		OutputBucket:       os.Getenv("LIVENESS_OUTPUT_BUCKET"),
		OutputKeyPrefix:    os.Getenv("LIVENESS_OUTPUT_PREFIX"),
		CORSAllowOrigins:   getEnv("CORS_ALLOW_ORIGINS", "*"),
	}

	var err error
	if env.LivenessConfidenceThreshold, err = getPercent("LIVENESS_CONFIDENCE_THRESHOLD", 80); err != nil {
		return nil, err
	}
	if env.CompareSimilarityThreshold, err = getPercent("COMPARE_SIMILARITY_THRESHOLD", 80); err != nil {
		return nil, err
	}

	if env.RekognitionTimeout, err = time.ParseDuration(getEnv("REKOGNITION_TIMEOUT", "10s")); err != nil {
		return nil, fmt.Errorf("invalid REKOGNITION_TIMEOUT: %w", err)
	}
	if env.RekognitionTimeout <= 0 {
		return nil, fmt.Errorf("REKOGNITION_TIMEOUT must be positive")
	}

	if env.AuditImagesLimit, err = strconv.ParseInt(getEnv("LIVENESS_AUDIT_IMAGES_LIMIT", "0"), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid LIVENESS_AUDIT_IMAGES_LIMIT: %w", err)
	}
	if env.AuditImagesLimit < 0 || env.AuditImagesLimit > 4 {
		return nil, fmt.Errorf("LIVENESS_AUDIT_IMAGES_LIMIT must be between 0 and 4")
	}

	if env.PresignAuditImages, err = strconv.ParseBool(getEnv("PRESIGN_AUDIT_IMAGES", "false")); err != nil {
		return nil, fmt.Errorf("invalid PRESIGN_AUDIT_IMAGES: %w", err)
	}

	return env, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getPercent(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if v < 0 || v > 100 {
		return 0, fmt.Errorf("%s must be between 0 and 100, got %v", key, v)
	}

	return v, nil
}
