package minter

import (
	"context"
	"fmt"

	"github.com/citypass-labs/ticketd/internal/adapter"
	"github.com/citypass-labs/ticketd/internal/domain"
)

// TxHandle identifies an accepted mint job on the relayer.
type TxHandle struct {
	TokenID string `json:"token_id"`
	TxHash  string `json:"tx_hash"`
}

// MintRequest is the payload submitted to the relayer mint endpoint.
type MintRequest struct {
	To              string `json:"to"`
	ContractAddress string `json:"contract_address"`
	Metadata        string `json:"metadata"`
}

// ProvisionedWallet is a custodial wallet created by the relayer.
type ProvisionedWallet struct {
	Address string `json:"address"`
}

// MintEngine is the relayer that signs and broadcasts mint transactions on
// behalf of the ticketing contracts.
//
//go:generate mockgen -source=engine.go -destination=../mocks/mint_engine.go -package=mocks -mock_names=MintEngine=MockMintEngine
type MintEngine interface {
	// Mint submits a mint job. A returned handle means the relayer accepted
	// the job and queued the transaction.
	Mint(ctx context.Context, req MintRequest) (*TxHandle, error)
	// CreateWallet provisions a custodial wallet for a buyer identified only
	// by email.
	CreateWallet(ctx context.Context, email string) (*ProvisionedWallet, error)
}

type engineClient struct {
	baseURL    string
	apiKey     string
	httpClient adapter.HTTPClient
}

// NewEngineClient creates a mint engine client against the relayer HTTP API
func NewEngineClient(baseURL, apiKey string, httpClient adapter.HTTPClient) MintEngine {
	return &engineClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

func (c *engineClient) headers() map[string]string {
	return map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}
}

// Mint submits a mint job to the relayer
func (c *engineClient) Mint(ctx context.Context, req MintRequest) (*TxHandle, error) {
	if !domain.IsValidAddress(req.To) {
		return nil, fmt.Errorf("invalid recipient address %q", req.To)
	}

	url := fmt.Sprintf("%s/v1/mints", c.baseURL)

	var handle TxHandle
	if err := c.httpClient.PostJSON(ctx, url, c.headers(), req, &handle); err != nil {
		return nil, fmt.Errorf("%w: failed to submit mint: %v", domain.ErrMintEngine, err)
	}
	if handle.TxHash == "" {
		return nil, fmt.Errorf("%w: relayer returned empty tx hash", domain.ErrMintEngine)
	}

	return &handle, nil
}

// CreateWallet provisions a custodial wallet for a buyer email
func (c *engineClient) CreateWallet(ctx context.Context, email string) (*ProvisionedWallet, error) {
	url := fmt.Sprintf("%s/v1/wallets", c.baseURL)

	body := map[string]string{"email": email}
	var wallet ProvisionedWallet
	if err := c.httpClient.PostJSON(ctx, url, c.headers(), body, &wallet); err != nil {
		return nil, fmt.Errorf("%w: failed to provision wallet: %v", domain.ErrMintEngine, err)
	}
	if !domain.IsValidAddress(wallet.Address) {
		return nil, fmt.Errorf("%w: relayer returned invalid address %q", domain.ErrMintEngine, wallet.Address)
	}

	return &wallet, nil
}
