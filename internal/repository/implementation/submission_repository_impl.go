package implementation

import (
	"context"

	"gorm.io/gorm"

	"loan-booklet-be/internal/entity"
	"loan-booklet-be/internal/mapper"
	"loan-booklet-be/internal/model"
	"loan-booklet-be/internal/repository/contract"
	"loan-booklet-be/internal/repository/specification"
)

type SubmissionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubmissionMapper
}

func NewSubmissionRepository(db *gorm.DB) contract.SubmissionRepository {
	return &SubmissionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubmissionMapper(),
	}
}

func (r *SubmissionRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SubmissionRepositoryImpl) Create(ctx context.Context, submission *entity.Submission) error {
	m := r.mapper.ToModel(submission)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*submission = *r.mapper.ToEntity(m)
	return nil
}

func (r *SubmissionRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Submission, error) {
	var models []*model.Submission
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *SubmissionRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Submission{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
