package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/investmatch/backend/internal/config"
	"github.com/investmatch/backend/internal/domain"
	"github.com/investmatch/backend/internal/repository"
)

// Client talks to the external points-wallet service. Debits and credits
// carry a caller-supplied reference so the wallet can deduplicate retries;
// the engine never issues more than one debit per decision.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.WalletConfig) repository.WalletGateway {
	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			// A debited-but-unrecorded swipe is the worst failure mode, so
			// wallet calls are bounded and a timeout counts as failure.
			Timeout: cfg.Timeout,
		},
	}
}

type transactionRequest struct {
	UserID    int    `json:"user_id"`
	Amount    int    `json:"amount"`
	Reason    string `json:"reason"`
	Reference string `json:"reference"`
}

type transactionResponse struct {
	Success    bool   `json:"success"`
	NewBalance int    `json:"new_balance"`
	Error      string `json:"error,omitempty"`
}

func (c *Client) Debit(ctx context.Context, userID, amount int, reason, reference string) error {
	return c.post(ctx, "/api/v1/wallet/debit", userID, amount, reason, reference)
}

func (c *Client) Credit(ctx context.Context, userID, amount int, reason, reference string) error {
	return c.post(ctx, "/api/v1/wallet/credit", userID, amount, reason, reference)
}

func (c *Client) post(ctx context.Context, path string, userID, amount int, reason, reference string) error {
	body, err := json.Marshal(transactionRequest{
		UserID:    userID,
		Amount:    amount,
		Reason:    reason,
		Reference: reference,
	})
	if err != nil {
		return fmt.Errorf("failed to encode wallet request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build wallet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrWalletUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusPaymentRequired:
		return domain.ErrInsufficientPoints
	case resp.StatusCode >= 400:
		return fmt.Errorf("%w: wallet returned status %d", domain.ErrWalletUnavailable, resp.StatusCode)
	}

	var result transactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("%w: invalid wallet response: %v", domain.ErrWalletUnavailable, err)
	}
	if !result.Success {
		return fmt.Errorf("%w: %s", domain.ErrWalletUnavailable, result.Error)
	}
	return nil
}
