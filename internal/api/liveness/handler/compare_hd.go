package livenessHandler

import (
	"LivenessGateway/internal/api/liveness"
	contextPkg "LivenessGateway/pkg/context"
	"LivenessGateway/pkg/handlerUtil"
	"LivenessGateway/pkg/response"
	"bytes"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/net/context"
)

func (h *LivenessHandler) CompareFaces(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	req, threshold, err := h.parseCompareRequest(ctx.Body())
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	result, err := h.livenessService.CompareFaces(c, req.SourceImage, req.TargetImage, threshold)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "compare_faces")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, liveness.CompareFacesResponse{
			Success:              true,
			FaceComparisonResult: *result,
		})
	}
}

// parseCompareRequest reads the body regardless of Content-Type. An empty
// body, or one that decodes to an empty object or null, counts as missing.
func (h *LivenessHandler) parseCompareRequest(body []byte) (liveness.CompareFacesRequest, float64, error) {
	var req liveness.CompareFacesRequest

	if len(bytes.TrimSpace(body)) == 0 {
		return req, 0, liveness.ErrNoJSONData
	}

	var fields map[string]interface{}
	if err := jsoniter.Unmarshal(body, &fields); err != nil {
		return req, 0, response.Wrap(liveness.ErrInvalidJSON, err)
	}
	if len(fields) == 0 {
		return req, 0, liveness.ErrNoJSONData
	}

	if err := jsoniter.Unmarshal(body, &req); err != nil {
		return req, 0, response.Wrap(liveness.ErrInvalidJSON, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return req, 0, liveness.ErrImagesRequired
	}

	threshold := h.similarityThreshold
	if raw, present := fields[liveness.SimilarityThresholdField]; present {
		value, ok := raw.(float64)
		if !ok {
			return req, 0, liveness.ErrInvalidThreshold
		}
		if err := h.validator.Var(value, "gte=0,lte=100"); err != nil {
			return req, 0, liveness.ErrInvalidThreshold
		}
		threshold = value
	}

	return req, threshold, nil
}
