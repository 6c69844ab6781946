package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	Id     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email  string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Mobile string    `gorm:"type:varchar(15)"`
	Name   string    `gorm:"type:varchar(255);not null"`
	Role   string    `gorm:"type:varchar(50);not null;default:'user'"`
	Status string    `gorm:"type:varchar(50);not null;default:'pending'"`

	BranchName    string `gorm:"type:varchar(255)"`
	BranchPlace   string `gorm:"type:varchar(255)"`
	BranchCode    string `gorm:"type:varchar(50)"`
	BranchABM     string `gorm:"type:varchar(255)"`
	BranchManager string `gorm:"type:varchar(255)"`
	BMDesignation string `gorm:"type:varchar(100)"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
