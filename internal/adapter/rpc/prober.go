package rpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"rpc-speed-bot/internal/domain/entity"
	domainService "rpc-speed-bot/internal/domain/service"
	"rpc-speed-bot/internal/pkg/apperrors"

	"github.com/gorilla/websocket"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Compile-time check
var _ domainService.Prober = (*Prober)(nil)

// Prober implements domainService.Prober by requesting the latest block over HTTP(S) or WS(S).
type Prober struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewProber creates a prober whose requests never outlive timeout.
func NewProber(timeout time.Duration, logger *zap.Logger) *Prober {
	return &Prober{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		timeout: timeout,
		logger:  logger.Named("RPCProber"),
	}
}

// Probe sends the latest-block request to rpcURL. Latency covers the round trip
// and response parsing. An unparseable block number is not an error.
func (p *Prober) Probe(ctx context.Context, rpcURL entity.RPCURL) (entity.ProbeResult, error) {
	startTime := time.Now()
	rawURL := rpcURL.String()

	var (
		body []byte
		err  error
	)
	switch proto := rpcURL.Protocol(); {
	case proto.IsWebsocket():
		body, err = p.fetchWS(ctx, rawURL)
	case proto == entity.ProtocolHTTP || proto == entity.ProtocolHTTPS:
		body, err = p.fetchHTTP(ctx, rawURL)
	default:
		p.logger.Warn("Skipping probe for unsupported protocol", zap.String("url", rawURL))
		return entity.ProbeResult{}, fmt.Errorf("%w: unsupported protocol in URL %s", apperrors.ErrInvalidInput, rawURL)
	}
	if err != nil {
		return entity.ProbeResult{}, err
	}

	number, err := decodeBlockResponse(body)
	if err != nil {
		p.logger.Debug("Probe returned malformed body",
			zap.String("url", rawURL),
			zap.ByteString("body", body[:min(1024, len(body))]),
			zap.Error(err),
		)
		return entity.ProbeResult{}, fmt.Errorf("rpc %s: %w", rawURL, err)
	}
	result := entity.ProbeResult{Latency: time.Since(startTime)}

	blockNumber, err := ParseBlockNumber(number)
	if err != nil {
		p.logger.Debug("Probe returned unparseable block number",
			zap.String("url", rawURL), zap.String("number", number), zap.Error(err))
	} else {
		result.BlockNumber = &blockNumber
	}

	return result, nil
}

// effectiveTimeout narrows the prober timeout to the context deadline when that is sooner.
func (p *Prober) effectiveTimeout(ctx context.Context) time.Duration {
	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		requestTimeout := time.Until(deadline)
		if timeout <= 0 || requestTimeout < timeout {
			timeout = requestTimeout
		}
	}
	return timeout
}

// fetchHTTP POSTs the payload and returns a copy of the response body.
func (p *Prober) fetchHTTP(ctx context.Context, rpcURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(rpcURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(blockByNumberPayload)

	timeout := p.effectiveTimeout(ctx)
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: no time left to probe %s", apperrors.ErrTimeout, rpcURL)
	}

	if err := p.client.DoTimeout(req, resp, timeout); err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			p.logger.Debug("HTTP probe timed out",
				zap.String("url", rpcURL), zap.Duration("timeout", timeout), zap.Error(err))
			return nil, fmt.Errorf("%w: http request to %s timed out after %v: %v",
				apperrors.ErrTimeout, rpcURL, timeout, err,
			)
		}
		p.logger.Debug("HTTP probe request failed", zap.String("url", rpcURL), zap.Error(err))
		return nil, fmt.Errorf("%w: http request to %s failed: %v",
			apperrors.ErrExternalServiceFailure, rpcURL, err,
		)
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		p.logger.Debug("HTTP probe returned non-OK status",
			zap.String("url", rpcURL), zap.Int("statusCode", resp.StatusCode()))
	}

	body := resp.Body()
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

// fetchWS sends the payload as a single text frame and returns the first reply.
func (p *Prober) fetchWS(ctx context.Context, rpcURL string) ([]byte, error) {
	timeout := p.effectiveTimeout(ctx)
	if timeout <= 0 {
		return nil, fmt.Errorf("%w: no time left to probe %s", apperrors.ErrTimeout, rpcURL)
	}

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: timeout,
	}

	conn, _, err := dialer.DialContext(dialCtx, rpcURL, nil)
	if err != nil {
		p.logger.Debug("WS dial failed", zap.String("url", rpcURL), zap.Error(err))
		if errors.Is(dialCtx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: ws dial to %s timed out: %v", apperrors.ErrTimeout, rpcURL, err)
		}
		return nil, fmt.Errorf("%w: ws dial to %s failed: %v", apperrors.ErrExternalServiceFailure, rpcURL, err)
	}
	defer conn.Close()

	deadline, _ := dialCtx.Deadline()
	_ = conn.SetWriteDeadline(deadline)
	_ = conn.SetReadDeadline(deadline)

	if err := conn.WriteMessage(websocket.TextMessage, blockByNumberPayload); err != nil {
		p.logger.Debug("WS write failed", zap.String("url", rpcURL), zap.Error(err))
		return nil, fmt.Errorf("%w: ws write to %s failed: %v", apperrors.ErrExternalServiceFailure, rpcURL, err)
	}

	_, message, err := conn.ReadMessage()
	if err != nil {
		p.logger.Debug("WS read failed", zap.String("url", rpcURL), zap.Error(err))
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: ws read from %s timed out: %v", apperrors.ErrTimeout, rpcURL, err)
		}
		return nil, fmt.Errorf("%w: ws read from %s failed: %v", apperrors.ErrExternalServiceFailure, rpcURL, err)
	}

	return message, nil
}
