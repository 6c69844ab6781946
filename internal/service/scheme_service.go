package service

import (
	"loan-booklet-be/internal/dto"
	"loan-booklet-be/pkg/booklet/schema"
)

type ISchemeService interface {
	List() []*dto.SchemeResponse
}

type schemeService struct{}

func NewSchemeService() ISchemeService {
	return &schemeService{}
}

func (s *schemeService) List() []*dto.SchemeResponse {
	schemes := schema.All()
	out := make([]*dto.SchemeResponse, 0, len(schemes))
	for _, sc := range schemes {
		out = append(out, &dto.SchemeResponse{
			Code:      sc.Code,
			Title:     sc.Title,
			Steps:     sc.StepLabels,
			AllowJump: sc.AllowJump,
			Lists:     sc.ListOrder,
		})
	}
	return out
}
