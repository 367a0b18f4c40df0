package livenessHandler

import (
	"LivenessGateway/internal/api/liveness"
	contextPkg "LivenessGateway/pkg/context"
	"LivenessGateway/pkg/handlerUtil"
	"LivenessGateway/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *LivenessHandler) CreateLivenessSession(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	sessionID, err := h.livenessService.CreateSession(c)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "create_liveness_session")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, liveness.CreateSessionResponse{
			SessionID: sessionID,
			Success:   true,
		})
	}
}

func (h *LivenessHandler) GetLivenessResults(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	var req liveness.GetResultsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, liveness.ErrSessionIDRequired, ctx.Path(), "parse_query")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.Handle(ctx, requestID, liveness.ErrSessionIDRequired, ctx.Path(), "validate_query")
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"session_id": req.SessionID,
	}).Debug("Fetching liveness session results")

	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), h.timeout)
	defer cancel()

	result, err := h.livenessService.GetSessionResults(c, req.SessionID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_liveness_results")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, liveness.LivenessResultsResponse{
			Success:        true,
			LivenessResult: *result,
		})
	}
}
