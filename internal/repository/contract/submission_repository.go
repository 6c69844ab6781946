package contract

import (
	"context"

	"loan-booklet-be/internal/entity"
	"loan-booklet-be/internal/repository/specification"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.Submission) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Submission, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
