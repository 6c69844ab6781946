package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"loan-booklet-be/internal/entity"
	"loan-booklet-be/internal/repository/specification"
	"loan-booklet-be/internal/repository/unitofwork"
	"loan-booklet-be/pkg/booklet"
	"loan-booklet-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.SubmissionRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Submission Repository", func(t *testing.T) {
		count, err := uow.SubmissionRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Submission count: %d", count)
	})

	t.Run("Check Submission Audit Round Trip", func(t *testing.T) {
		ctx := context.Background()

		userId := uuid.New()
		user := &entity.User{
			Id:            userId,
			Email:         "test-integration-" + uuid.New().String() + "@example.com",
			Name:          "Integration Test User",
			Role:          "user",
			Status:        "active",
			BranchName:    "Integration Branch",
			BranchPlace:   "Testville",
			BranchCode:    "IT001",
			BranchManager: "Integration Manager",
		}
		err := uow.UserRepository().Create(ctx, user)
		assert.NoError(t, err)

		submission := &entity.Submission{
			UserId:       userId,
			Scheme:       booklet.SchemeLOD,
			Envelope:     `{"user_data":{},"loan_data":{},"borrowers_data":[],"deposits_data":[]}`,
			DocumentSize: 1024,
		}
		err = uow.SubmissionRepository().Create(ctx, submission)
		assert.NoError(t, err)

		rows, err := uow.SubmissionRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: userId},
			specification.ByScheme{Scheme: booklet.SchemeLOD},
		)
		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		if len(rows) == 1 {
			assert.Equal(t, 1024, rows[0].DocumentSize)
		}
	})
}
