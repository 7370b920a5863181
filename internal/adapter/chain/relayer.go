// Package chain adapts the token contract behind an external signing
// relayer. The relayer owns the minter key; this service only sends it
// authenticated mint/burn instructions and stores the resulting hashes.
package chain

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"tokenvine/config"

	"github.com/rs/zerolog"
)

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RelayerClient implements ports.ChainClient against the relayer's
// HTTP API. Requests carry an HMAC-SHA256 signature over
// timestamp|body so the relayer can reject forged or replayed calls.
type RelayerClient struct {
	baseURL    string
	secret     []byte
	httpClient HTTPClient
	log        zerolog.Logger
}

// NewRelayerClient creates a new RelayerClient from chain config.
func NewRelayerClient(cfg config.ChainConfig, log zerolog.Logger) *RelayerClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &RelayerClient{
		baseURL:    cfg.RelayerURL,
		secret:     []byte(cfg.RelayerSecret),
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// WithHTTPClient overrides the HTTP client. Test hook.
func (c *RelayerClient) WithHTTPClient(client HTTPClient) *RelayerClient {
	c.httpClient = client
	return c
}

type relayerRequest struct {
	Address string `json:"address"`
	Amount  int64  `json:"amount"`
}

type relayerResponse struct {
	TxHash string `json:"tx_hash"`
	Error  string `json:"error,omitempty"`
}

// Mint credits tokens to address on the contract.
func (c *RelayerClient) Mint(ctx context.Context, address string, amount int64) (string, error) {
	return c.submit(ctx, "/v1/mint", address, amount)
}

// Burn debits tokens from address on the contract.
func (c *RelayerClient) Burn(ctx context.Context, address string, amount int64) (string, error) {
	return c.submit(ctx, "/v1/burn", address, amount)
}

func (c *RelayerClient) submit(ctx context.Context, path, address string, amount int64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("relayer amount must be positive, got %d", amount)
	}

	body, err := json.Marshal(relayerRequest{Address: address, Amount: amount})
	if err != nil {
		return "", fmt.Errorf("marshal relayer request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build relayer request: %w", err)
	}

	timestamp := time.Now().Unix()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Timestamp", strconv.FormatInt(timestamp, 10))
	req.Header.Set("X-Signature", c.sign(timestamp, body))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("relayer request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", fmt.Errorf("read relayer response: %w", err)
	}

	var parsed relayerResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("relayer returned status %d with unparseable body", resp.StatusCode)
	}

	if resp.StatusCode != http.StatusOK {
		msg := parsed.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", fmt.Errorf("relayer rejected %s: %s", path, msg)
	}
	if parsed.TxHash == "" {
		return "", fmt.Errorf("relayer response missing tx_hash")
	}

	return parsed.TxHash, nil
}

// sign computes HMAC-SHA256 over timestamp|body, hex-encoded.
func (c *RelayerClient) sign(timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, c.secret)
	fmt.Fprintf(mac, "%d|", timestamp)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
