package service

import (
	"context"
	"errors"

	"github.com/adrianguereque/accounts-api/internal/auth"
	"github.com/adrianguereque/accounts-api/internal/core/domain"
	"github.com/adrianguereque/accounts-api/internal/core/ports"
)

// UserService implements registration, login and account CRUD on top of the
// injected repository. It owns credential handling; the repository only ever
// sees password hashes.
type UserService struct {
	repo   ports.UserRepository
	hasher *auth.Hasher
	codec  *auth.Codec
}

func NewUserService(repo ports.UserRepository, hasher *auth.Hasher, codec *auth.Codec) *UserService {
	return &UserService{repo: repo, hasher: hasher, codec: codec}
}

func (s *UserService) Register(ctx context.Context, email, name, password, role string) (*domain.Account, error) {
	if email == "" || name == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if role == "" {
		role = domain.RoleUser
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	acct := &domain.Account{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
	}
	return s.repo.Create(ctx, acct)
}

// Login checks the password against the stored hash and issues a session
// token. Unknown email surfaces as ErrUnknownEmail and a wrong password as
// ErrInvalidCredentials; both render the same client-facing message.
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	acct, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrUnknownEmail
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, acct.PasswordHash) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(acct)
	if err != nil {
		return "", nil, err
	}
	return token, acct, nil
}

func (s *UserService) List(ctx context.Context) ([]*domain.Account, error) {
	return s.repo.List(ctx)
}

// Update applies a partial update to the account. An empty field set is a
// caller error; a new password is hashed before it reaches the repository.
func (s *UserService) Update(ctx context.Context, id int64, upd domain.AccountUpdate) (*domain.Account, error) {
	if upd.Empty() {
		return nil, domain.ErrNoFields
	}

	if upd.Password != nil {
		hash, err := s.hasher.Hash(*upd.Password)
		if err != nil {
			return nil, err
		}
		upd.Password = &hash
	}

	return s.repo.Update(ctx, id, upd)
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
