// Package solana implements on-chain payment verification. The RPC client
// speaks plain JSON-RPC 2.0 over HTTP; the only method the service needs is
// getTransaction with finalized commitment.
package solana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a minimal Solana JSON-RPC client.
type Client struct {
	Endpoint string
	http     *http.Client
}

// NewClient creates a client for the given RPC endpoint with a bounded timeout.
func NewClient(endpoint string) *Client {
	return &Client{
		Endpoint: endpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type rpcRequest struct {
	Jsonrpc string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TransactionMeta holds the balance bookkeeping attached to a confirmed
// transaction. Balances are indexed by account key position.
type TransactionMeta struct {
	Err          interface{} `json:"err"`
	PreBalances  []int64     `json:"preBalances"`
	PostBalances []int64     `json:"postBalances"`
}

// TransactionResult is the decoded getTransaction result.
type TransactionResult struct {
	Meta        *TransactionMeta `json:"meta"`
	Transaction struct {
		Message struct {
			AccountKeys []string `json:"accountKeys"`
		} `json:"message"`
	} `json:"transaction"`
}

type getTransactionResponse struct {
	Result *TransactionResult `json:"result"`
	Error  *rpcError          `json:"error"`
}

// GetTransaction fetches a finalized transaction by signature. A nil result
// with nil error means the chain does not know the signature (or it is not
// finalized yet).
func (c *Client) GetTransaction(ctx context.Context, signature string) (*TransactionResult, error) {
	reqBody := rpcRequest{
		Jsonrpc: "2.0",
		ID:      1,
		Method:  "getTransaction",
		Params: []interface{}{
			signature,
			map[string]interface{}{
				"commitment":                     "finalized",
				"encoding":                       "json",
				"maxSupportedTransactionVersion": 0,
			},
		},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal rpc request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build rpc request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call solana rpc: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("solana rpc error (status %d): %s", resp.StatusCode, string(body))
	}

	var rpcResp getTransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return nil, fmt.Errorf("decode rpc response: %w", err)
	}

	if rpcResp.Error != nil {
		return nil, fmt.Errorf("solana rpc error %d: %s", rpcResp.Error.Code, rpcResp.Error.Message)
	}

	return rpcResp.Result, nil
}
