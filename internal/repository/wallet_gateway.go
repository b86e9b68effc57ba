package repository

import "context"

// WalletGateway is the external points wallet this engine debits and
// credits. Implementations translate insufficient funds into
// domain.ErrInsufficientPoints and any transport failure or timeout into
// domain.ErrWalletUnavailable. The reference is an idempotency key; the
// engine issues at most one debit per decision.
type WalletGateway interface {
	Debit(ctx context.Context, userID, amount int, reason, reference string) error
	Credit(ctx context.Context, userID, amount int, reason, reference string) error
}
