package account

import (
	"context"

	"github.com/mrvekratl/BE124/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con repos de usuarios y solicitudes atados a ella.
type TxRunner interface {
	RunAccount(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		requestRepo repository.SellerRequestRepository,
	) error) error
}
