package mapper

import (
	"loan-booklet-be/internal/entity"
	"loan-booklet-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:            u.Id,
		Email:         u.Email,
		Mobile:        u.Mobile,
		Name:          u.Name,
		Role:          entity.UserRole(u.Role),
		Status:        entity.UserStatus(u.Status),
		BranchName:    u.BranchName,
		BranchPlace:   u.BranchPlace,
		BranchCode:    u.BranchCode,
		BranchABM:     u.BranchABM,
		BranchManager: u.BranchManager,
		BMDesignation: u.BMDesignation,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:            u.Id,
		Email:         u.Email,
		Mobile:        u.Mobile,
		Name:          u.Name,
		Role:          string(u.Role),
		Status:        string(u.Status),
		BranchName:    u.BranchName,
		BranchPlace:   u.BranchPlace,
		BranchCode:    u.BranchCode,
		BranchABM:     u.BranchABM,
		BranchManager: u.BranchManager,
		BMDesignation: u.BMDesignation,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (m *UserMapper) ToEntities(users []*model.User) []*entity.User {
	entities := make([]*entity.User, len(users))
	for i, u := range users {
		entities[i] = m.ToEntity(u)
	}
	return entities
}
