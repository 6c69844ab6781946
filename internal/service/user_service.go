// FILE: internal/service/user_service.go
package service

import (
	"context"

	"loan-booklet-be/internal/dto"
	"loan-booklet-be/internal/repository/specification"
	"loan-booklet-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IUserService interface {
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewUserService(uowFactory unitofwork.RepositoryFactory) IUserService {
	return &userService{
		uowFactory: uowFactory,
	}
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return &dto.UserProfileResponse{
		Id:            user.Id,
		Email:         user.Email,
		Mobile:        user.Mobile,
		Name:          user.Name,
		Role:          string(user.Role),
		Status:        string(user.Status),
		BranchName:    user.BranchName,
		BranchPlace:   user.BranchPlace,
		BranchCode:    user.BranchCode,
		BranchABM:     user.BranchABM,
		BranchManager: user.BranchManager,
		BMDesignation: user.BMDesignation,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.Name = req.Name
	user.Email = req.Email
	user.BranchName = req.BranchName
	user.BranchPlace = req.BranchPlace
	user.BranchCode = req.BranchCode
	user.BranchABM = req.BranchABM
	user.BranchManager = req.BranchManager
	user.BMDesignation = req.BMDesignation

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}
	return s.GetProfile(ctx, userId)
}
