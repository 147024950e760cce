package rpc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"rpc-speed-bot/internal/domain"
	"rpc-speed-bot/internal/pkg/apperrors"
)

// blockByNumberPayload asks for the header of the latest block.
var blockByNumberPayload = []byte(`{"id":1,"jsonrpc":"2.0","method":"eth_getBlockByNumber","params":["latest",false]}`)

// BlockResponse is the subset of an eth_getBlockByNumber reply the prober relies on.
// Pointer fields distinguish absent members from zero values.
type BlockResponse struct {
	ID      *uint64       `json:"id"`
	Jsonrpc *string       `json:"jsonrpc"`
	Result  *BlockResult  `json:"result"`
	Error   *JSONRPCError `json:"error,omitempty"`
}

// BlockResult carries the block header fields of interest.
type BlockResult struct {
	Number *string `json:"number"`
}

// JSONRPCError defines the structure for a JSON-RPC error.
type JSONRPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// decodeBlockResponse validates body and returns the raw result.number string.
func decodeBlockResponse(body []byte) (string, error) {
	var resp BlockResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: invalid JSON: %v", apperrors.ErrMalformedResponse, err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("%w: json-rpc error %d %s",
			apperrors.ErrMalformedResponse, resp.Error.Code, resp.Error.Message)
	}
	switch {
	case resp.ID == nil:
		return "", fmt.Errorf("%w: missing id", apperrors.ErrMalformedResponse)
	case resp.Jsonrpc == nil:
		return "", fmt.Errorf("%w: missing jsonrpc", apperrors.ErrMalformedResponse)
	case resp.Result == nil:
		return "", fmt.Errorf("%w: missing result", apperrors.ErrMalformedResponse)
	case resp.Result.Number == nil:
		return "", fmt.Errorf("%w: missing result.number", apperrors.ErrMalformedResponse)
	}
	return *resp.Result.Number, nil
}

// ParseBlockNumber decodes a hex quantity with an optional 0x prefix.
func ParseBlockNumber(s string) (uint64, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	n, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", domain.ErrBlockNumberUnavailable, s, err)
	}
	return n, nil
}
