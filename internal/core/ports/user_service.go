package ports

import (
	"context"

	"github.com/adrianguereque/accounts-api/internal/core/domain"
)

type UserService interface {
	Register(ctx context.Context, email, name, password, role string) (*domain.Account, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
	Update(ctx context.Context, id int64, upd domain.AccountUpdate) (*domain.Account, error)
	Delete(ctx context.Context, id int64) error
}
