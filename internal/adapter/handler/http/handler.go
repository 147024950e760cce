package http

import (
	"encoding/json"
	"errors"

	"rpc-speed-bot/internal/application/port"
	"rpc-speed-bot/internal/domain"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// StatusHandler serves the latest poll results over HTTP.
type StatusHandler struct {
	monitor port.MonitorService
	logger  *zap.Logger
}

func NewStatusHandler(monitor port.MonitorService, logger *zap.Logger) *StatusHandler {
	return &StatusHandler{
		monitor: monitor,
		logger:  logger.Named("StatusHandler"),
	}
}

// GetSnapshot handles requests for the full latest snapshot.
func (h *StatusHandler) GetSnapshot(ctx *fasthttp.RequestCtx) {
	snapshot, err := h.monitor.Latest(ctx)
	if err != nil {
		h.writeLatestError(ctx, err)
		return
	}
	h.writeJSON(ctx, snapshot)
}

// GetTarget handles requests for one target's latest row.
func (h *StatusHandler) GetTarget(ctx *fasthttp.RequestCtx) {
	name, ok := ctx.UserValue("name").(string)
	if !ok || name == "" {
		h.logger.Error("Failed to get target name from context")
		ctx.Error("Bad Request: Invalid target name", fasthttp.StatusBadRequest)
		return
	}

	snapshot, err := h.monitor.Latest(ctx)
	if err != nil {
		h.writeLatestError(ctx, err)
		return
	}

	row, found := snapshot.Row(name)
	if !found {
		h.logger.Debug("Target not found in latest snapshot", zap.String("name", name),
			zap.Error(domain.ErrTargetNotFound))
		ctx.Error("Not Found", fasthttp.StatusNotFound)
		return
	}
	h.writeJSON(ctx, row)
}

func (h *StatusHandler) writeLatestError(ctx *fasthttp.RequestCtx, err error) {
	if errors.Is(err, domain.ErrNoSnapshot) {
		ctx.Error("Not Found: no completed poll cycle yet", fasthttp.StatusNotFound)
		return
	}
	h.logger.Error("Failed to get latest snapshot", zap.Error(err))
	ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
}

func (h *StatusHandler) writeJSON(ctx *fasthttp.RequestCtx, v any) {
	ctx.SetContentType("application/json")
	if err := json.NewEncoder(ctx).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}
