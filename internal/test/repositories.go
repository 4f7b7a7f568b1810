package test

import (
	"context"
	"sort"
	"sync"

	domainErrors "github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/errors"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/model"
	"github.com/gustavo230282-a11y/controle-de-retiradas/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	Users []model.User
	Err   error
	// RejectDuplicates mirrors the remote backend's unique id constraint.
	RejectDuplicates bool
}

// NewUserRepositoryStub constructs an empty stub repository.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{}
}

// Create appends user unless the stub has an explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if s.RejectDuplicates {
		for _, u := range s.Users {
			if u.ID == user.ID {
				return domainErrors.Storage("create user", domainErrors.ErrAlreadyExists)
			}
		}
	}
	s.Users = append(s.Users, user)
	return nil
}

// List returns a copy of stored users.
func (s *UserRepositoryStub) List(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return append([]model.User(nil), s.Users...), nil
}

// GetByEmail fetches the first user with email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, u := range s.Users {
		if u.Email == email {
			found := u
			return &found, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// WithdrawalRepositoryStub keeps withdrawals in memory with optional overrides.
type WithdrawalRepositoryStub struct {
	mu      sync.Mutex
	Records []model.Withdrawal
	SaveFn  func(context.Context, model.Withdrawal) error
	ListFn  func(context.Context) ([]model.Withdrawal, error)
	Deleted []string
	Err     error
}

// Save records w unless an override or error is configured.
func (s *WithdrawalRepositoryStub) Save(ctx context.Context, w model.Withdrawal) error {
	if s.SaveFn != nil {
		if err := s.SaveFn(ctx, w); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Records = append(s.Records, w)
	return nil
}

// ListRecent returns stored records newest first, capped at RecentLimit.
func (s *WithdrawalRepositoryStub) ListRecent(ctx context.Context) ([]model.Withdrawal, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := append([]model.Withdrawal(nil), s.Records...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if len(out) > repository.RecentLimit {
		out = out[:repository.RecentLimit]
	}
	return out, nil
}

// Delete removes id, succeeding when it is already absent.
func (s *WithdrawalRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Deleted = append(s.Deleted, id)
	kept := s.Records[:0]
	for _, w := range s.Records {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	s.Records = kept
	return nil
}

// Saved returns a copy of saved records in save order.
func (s *WithdrawalRepositoryStub) Saved() []model.Withdrawal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Withdrawal(nil), s.Records...)
}

// ReceiptStoreStub records uploads and returns deterministic URLs.
type ReceiptStoreStub struct {
	mu       sync.Mutex
	UploadFn func(context.Context, []byte, string) (string, error)
	Names    []string
}

// Upload delegates to the override or returns a URL derived from name.
func (s *ReceiptStoreStub) Upload(ctx context.Context, data []byte, name string) (string, error) {
	s.mu.Lock()
	s.Names = append(s.Names, name)
	s.mu.Unlock()
	if s.UploadFn != nil {
		return s.UploadFn(ctx, data, name)
	}
	return "https://receipts.example/" + name, nil
}

// Calls reports how many uploads were attempted.
func (s *ReceiptStoreStub) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Names)
}

// FactoryStub bundles repository stubs behind repository.Factory.
type FactoryStub struct {
	UserRepo       *UserRepositoryStub
	WithdrawalRepo *WithdrawalRepositoryStub
	ReceiptRepo    *ReceiptStoreStub
	Closed         bool
}

// NewFactoryStub builds a factory with empty stubs.
func NewFactoryStub() *FactoryStub {
	return &FactoryStub{
		UserRepo:       NewUserRepositoryStub(),
		WithdrawalRepo: &WithdrawalRepositoryStub{},
		ReceiptRepo:    &ReceiptStoreStub{},
	}
}

func (f *FactoryStub) Users() repository.UserRepository             { return f.UserRepo }
func (f *FactoryStub) Withdrawals() repository.WithdrawalRepository { return f.WithdrawalRepo }
func (f *FactoryStub) Receipts() repository.ReceiptStore            { return f.ReceiptRepo }
func (f *FactoryStub) Close()                                       { f.Closed = true }

var (
	_ repository.UserRepository       = (*UserRepositoryStub)(nil)
	_ repository.WithdrawalRepository = (*WithdrawalRepositoryStub)(nil)
	_ repository.ReceiptStore         = (*ReceiptStoreStub)(nil)
	_ repository.Factory              = (*FactoryStub)(nil)
)
