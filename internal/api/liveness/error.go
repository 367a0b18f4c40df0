package liveness

import (
	"LivenessGateway/pkg/response"
	"net/http"
)

var (
	ErrSessionIDRequired    = response.NewKindError(http.StatusBadRequest, response.KindInvalidInput, "sessionId parameter is required")
	ErrNoJSONData           = response.NewKindError(http.StatusBadRequest, response.KindInvalidInput, "No JSON data provided")
	ErrInvalidJSON          = response.NewKindError(http.StatusBadRequest, response.KindInvalidInput, "request body is not valid JSON")
	ErrImagesRequired       = response.NewKindError(http.StatusBadRequest, response.KindInvalidInput, "Both sourceImage and targetImage are required")
	ErrInvalidThreshold     = response.NewKindError(http.StatusBadRequest, response.KindInvalidInput, "similarityThreshold must be a number between 0 and 100")
	ErrInvalidImageEncoding = response.NewKindError(http.StatusBadRequest, response.KindInvalidInput, "sourceImage and targetImage must be base64 encoded")
	ErrSessionNotFound      = response.NewKindError(http.StatusNotFound, response.KindNotFound, "liveness session not found")
	ErrUpstream             = response.NewKindError(http.StatusInternalServerError, response.KindUpstreamFailure, "biometric service request failed")
)
