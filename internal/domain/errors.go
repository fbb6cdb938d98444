package domain

import "errors"

var (
	// ErrTemplateNotFound is returned when a ticket template does not exist
	ErrTemplateNotFound = errors.New("ticket template not found")

	// ErrAlreadyClaimed is returned when the identity already holds a claim
	// for the template
	ErrAlreadyClaimed = errors.New("ticket already claimed")

	// ErrOutOfStock is returned when the template's supply cap is reached
	ErrOutOfStock = errors.New("ticket out of stock")

	// ErrLinkNotFound is returned when a transfer link token does not exist
	ErrLinkNotFound = errors.New("transfer link not found")

	// ErrLinkFinalized is returned when redeeming a link that is no longer active
	ErrLinkFinalized = errors.New("transfer link already finalized")

	// ErrLinkExpired is returned when redeeming a link past its expiry
	ErrLinkExpired = errors.New("transfer link expired")

	// ErrSelfClaim is returned when the giver redeems their own link
	ErrSelfClaim = errors.New("cannot claim own transfer link")

	// ErrLinkNotOwned is returned when someone other than the giver cancels a link
	ErrLinkNotOwned = errors.New("transfer link belongs to another wallet")

	// ErrNotTransferable is returned when a transfer link is requested for a
	// template whose tickets are bound to the claiming wallet.
	ErrNotTransferable = errors.New("ticket template is not transferable")

	// ErrMintLogNotFound is returned when a mint log entry does not exist
	ErrMintLogNotFound = errors.New("mint log entry not found")

	// ErrMintNotRetryable is returned when retrying a mint log entry that is
	// not a failure
	ErrMintNotRetryable = errors.New("mint log entry is not a failed mint")

	// ErrMintEngine is returned when the mint relayer rejects or fails a job
	ErrMintEngine = errors.New("mint engine request failed")

	// ErrLinkReconciliation marks the detected-but-unresolved state where the
	// mint succeeded but the link status write failed. Must never be swallowed.
	ErrLinkReconciliation = errors.New("mint succeeded but transfer link update failed, manual reconciliation required")
)
