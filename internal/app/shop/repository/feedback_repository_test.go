package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"circleshop/internal/app/shop/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// FeedbackRepositoryTestSuite тестовый suite для PostgreSQL repository
type FeedbackRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  FeedbackRepository
	sqlDB *sql.DB
}

func TestFeedbackRepositorySuite(t *testing.T) {
	suite.Run(t, new(FeedbackRepositoryTestSuite))
}

func (s *FeedbackRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewFeedbackRepository(s.db)
}

func (s *FeedbackRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *FeedbackRepositoryTestSuite) TestUpsert_BuildsOnConflictUpdate() {
	ctx := context.Background()
	feedback := &entity.ProductFeedback{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		UserID:    uuid.New(),
		Reaction:  entity.ReactionLike,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT ("product_id","user_id") DO UPDATE SET "reaction"=`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()

	err := s.repo.Upsert(ctx, feedback)

	s.NoError(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *FeedbackRepositoryTestSuite) TestUpsert_DbError() {
	ctx := context.Background()
	feedback := &entity.ProductFeedback{
		ID:        uuid.New(),
		ProductID: uuid.New(),
		UserID:    uuid.New(),
		Reaction:  entity.ReactionDislike,
	}

	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_feedback"`)).
		WillReturnError(errors.New("db error"))
	s.mock.ExpectRollback()

	err := s.repo.Upsert(ctx, feedback)

	s.Error(err)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *FeedbackRepositoryTestSuite) TestCountByProduct() {
	ctx := context.Background()
	productID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "product_feedback"`)).
		WithArgs(productID, string(entity.ReactionLike)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "product_feedback"`)).
		WithArgs(productID, string(entity.ReactionDislike)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	counts, err := s.repo.CountByProduct(ctx, productID)

	s.NoError(err)
	s.Equal(int64(3), counts.Likes)
	s.Equal(int64(1), counts.Dislikes)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *FeedbackRepositoryTestSuite) TestCountByProduct_Empty() {
	ctx := context.Background()
	productID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "product_feedback"`)).
		WithArgs(productID, string(entity.ReactionLike)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "product_feedback"`)).
		WithArgs(productID, string(entity.ReactionDislike)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	counts, err := s.repo.CountByProduct(ctx, productID)

	s.NoError(err)
	s.Equal(int64(0), counts.Likes)
	s.Equal(int64(0), counts.Dislikes)
}
