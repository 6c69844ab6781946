package mapper

import (
	"loan-booklet-be/internal/entity"
	"loan-booklet-be/internal/model"
)

type SubmissionMapper struct{}

func NewSubmissionMapper() *SubmissionMapper {
	return &SubmissionMapper{}
}

func (m *SubmissionMapper) ToEntity(s *model.Submission) *entity.Submission {
	if s == nil {
		return nil
	}
	return &entity.Submission{
		Id:           s.Id,
		UserId:       s.UserId,
		Scheme:       s.Scheme,
		Envelope:     s.Envelope,
		DocumentSize: s.DocumentSize,
		CreatedAt:    s.CreatedAt,
	}
}

func (m *SubmissionMapper) ToModel(s *entity.Submission) *model.Submission {
	if s == nil {
		return nil
	}
	return &model.Submission{
		Id:           s.Id,
		UserId:       s.UserId,
		Scheme:       s.Scheme,
		Envelope:     s.Envelope,
		DocumentSize: s.DocumentSize,
		CreatedAt:    s.CreatedAt,
	}
}

func (m *SubmissionMapper) ToEntities(subs []*model.Submission) []*entity.Submission {
	entities := make([]*entity.Submission, len(subs))
	for i, s := range subs {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
