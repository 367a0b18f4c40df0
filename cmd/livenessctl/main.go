package main

import (
	livenessService "LivenessGateway/internal/api/liveness/service"
	"LivenessGateway/pkg/log"
	"LivenessGateway/pkg/rekognition"
	"LivenessGateway/pkg/utils"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"
)

var (
	flagRegion = &cli.StringFlag{
		Name:    "region",
		Value:   "us-east-1",
		Usage:   "AWS region of the Rekognition endpoint",
		EnvVars: []string{"AWS_REGION"},
	}
	flagProfile = &cli.StringFlag{
		Name:    "profile",
		Usage:   "AWS shared config profile",
		EnvVars: []string{"AWS_PROFILE"},
	}
	flagTimeout = &cli.DurationFlag{
		Name:    "timeout",
		Value:   10 * time.Second,
		Usage:   "timeout for the Rekognition call",
		EnvVars: []string{"REKOGNITION_TIMEOUT"},
	}
	flagThreshold = &cli.Float64Flag{
		Name:    "threshold",
		Value:   80,
		Usage:   "liveness confidence threshold (0-100)",
		EnvVars: []string{"LIVENESS_CONFIDENCE_THRESHOLD"},
	}
)

func main() {
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "livenessctl",
		Usage: "Create and inspect Rekognition face liveness sessions",
		Flags: []cli.Flag{flagRegion, flagProfile, flagTimeout},
		Commands: []*cli.Command{
			{
				Name:   "create-session",
				Usage:  "Create a face liveness session and print its id",
				Action: createSession,
			},
			{
				Name:  "results",
				Usage: "Print the normalized results of a session",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "session-id", Required: true},
					flagThreshold,
				},
				Action: sessionResults,
			},
			{
				Name:  "compare",
				Usage: "Compare the faces in two image files",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: "source", Required: true},
					&cli.PathFlag{Name: "target", Required: true},
					&cli.Float64Flag{Name: "similarity", Value: 80},
				},
				Action: compareFaces,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newService(cCtx *cli.Context) (livenessService.ILivenessService, error) {
	client, err := rekognition.New(rekognition.Config{
		Region:          cCtx.String(flagRegion.Name),
		Profile:         cCtx.String(flagProfile.Name),
		AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	})
	if err != nil {
		return nil, err
	}

	threshold := flagThreshold.Value
	if cCtx.IsSet(flagThreshold.Name) {
		threshold = cCtx.Float64(flagThreshold.Name)
	}

	return livenessService.NewLivenessService(log.NewDiscardLogger(), client, nil, utils.New(), livenessService.Options{
		LivenessThreshold: threshold,
	}), nil
}

func createSession(cCtx *cli.Context) error {
	svc, err := newService(cCtx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cCtx.Context, cCtx.Duration(flagTimeout.Name))
	defer cancel()

	sessionID, err := svc.CreateSession(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(cCtx.App.Writer, sessionID)
	return nil
}

func sessionResults(cCtx *cli.Context) error {
	svc, err := newService(cCtx)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cCtx.Context, cCtx.Duration(flagTimeout.Name))
	defer cancel()

	result, err := svc.GetSessionResults(ctx, cCtx.String("session-id"))
	if err != nil {
		return err
	}

	return printJSON(cCtx.App.Writer, result)
}

func compareFaces(cCtx *cli.Context) error {
	svc, err := newService(cCtx)
	if err != nil {
		return err
	}

	source, err := readImage(cCtx.Path("source"))
	if err != nil {
		return err
	}
	target, err := readImage(cCtx.Path("target"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cCtx.Context, cCtx.Duration(flagTimeout.Name))
	defer cancel()

	result, err := svc.CompareFaces(ctx, source, target, cCtx.Float64("similarity"))
	if err != nil {
		return err
	}

	return printJSON(cCtx.App.Writer, result)
}

func readImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func printJSON(w io.Writer, v interface{}) error {
	out, err := jsoniter.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
