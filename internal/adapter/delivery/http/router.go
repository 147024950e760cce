package http

import (
	handler "rpc-speed-bot/internal/adapter/handler/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// RegisterRoutes sets up the status routes and the health check.
func RegisterRoutes(r *router.Router, h *handler.StatusHandler, logger *zap.Logger) {
	logger.Debug("Setting up status routes...")

	r.GET("/snapshot", h.GetSnapshot)
	r.GET("/targets/{name}", h.GetTarget)

	r.GET("/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("OK")
	})
}

// LoggingMiddleware logs every request at debug level.
func LoggingMiddleware(next fasthttp.RequestHandler, logger *zap.Logger) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		logger.Debug("Request received",
			zap.ByteString("method", ctx.Method()),
			zap.ByteString("uri", ctx.RequestURI()))
		next(ctx)
	}
}

// NewServer builds the status server with routes and logging wired in.
func NewServer(h *handler.StatusHandler, logger *zap.Logger) *fasthttp.Server {
	r := router.New()
	RegisterRoutes(r, h, logger)
	return &fasthttp.Server{
		Handler: LoggingMiddleware(r.Handler, logger),
		Name:    "rpc-speed-bot",
	}
}
