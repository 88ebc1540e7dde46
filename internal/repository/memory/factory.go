package memory

import (
	"context"

	"ai-notes-be/internal/repository/contract"
	"ai-notes-be/internal/repository/unitofwork"
)

// RepositoryFactory satisfies unitofwork.RepositoryFactory over the
// in-memory repositories. Transactions are no-ops; data lives for the
// factory's lifetime so tests can observe state across units of work.
type RepositoryFactory struct {
	Notes *NoteRepository
	Users *UserRepository
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{
		Notes: NewNoteRepository(),
		Users: NewUserRepository(),
	}
}

var _ unitofwork.RepositoryFactory = (*RepositoryFactory)(nil)

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{factory: f}
}

type unitOfWork struct {
	factory *RepositoryFactory
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) UserRepository() contract.UserRepository {
	return u.factory.Users
}

func (u *unitOfWork) NoteRepository() contract.NoteRepository {
	return u.factory.Notes
}
