package ports

import (
	"context"

	"github.com/adrianguereque/accounts-api/internal/core/domain"
)

// UserRepository defines the interface for account persistence. The service
// layer never touches SQL directly; this is the seam swapped for an in-memory
// stub in tests.
type UserRepository interface {
	Create(ctx context.Context, acct *domain.Account) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	FindByID(ctx context.Context, id int64) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Update(ctx context.Context, id int64, upd domain.AccountUpdate) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
}
