package unitofwork

import (
	"context"

	"loan-booklet-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	SubmissionRepository() contract.SubmissionRepository
}
