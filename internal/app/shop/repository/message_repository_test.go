package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MessageRepositoryTestSuite тестовый suite для PostgreSQL repository
type MessageRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  MessageRepository
	sqlDB *sql.DB
}

func TestMessageRepositorySuite(t *testing.T) {
	suite.Run(t, new(MessageRepositoryTestSuite))
}

func (s *MessageRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{})
	require.NoError(s.T(), err)

	s.repo = NewMessageRepository(s.db)
}

func (s *MessageRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *MessageRepositoryTestSuite) TestGetChat_FiltersByParticipant() {
	ctx := context.Background()
	productID := uuid.New()
	participantID := uuid.New()
	senderID := uuid.New()
	now := time.Now()

	messageRows := sqlmock.NewRows([]string{"id", "sender_id", "recipient_id", "product_id", "text", "is_read", "created_at"}).
		AddRow(uuid.New(), participantID, senderID, productID, "first", false, now.Add(-time.Hour)).
		AddRow(uuid.New(), senderID, participantID, productID, "second", false, now)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages" WHERE product_id = $1 AND (sender_id = $2 OR recipient_id = $3) ORDER BY created_at ASC`)).
		WithArgs(productID, participantID, participantID).
		WillReturnRows(messageRows)

	// Preload("Sender") дозагружает отправителей одним запросом
	userRows := sqlmock.NewRows([]string{"id", "username"}).
		AddRow(participantID, "alice").
		AddRow(senderID, "bob")
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
		WillReturnRows(userRows)

	messages, err := s.repo.GetChat(ctx, productID, participantID)

	s.NoError(err)
	s.Len(messages, 2)
	s.Equal("first", messages[0].Text)
	s.Equal("second", messages[1].Text)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *MessageRepositoryTestSuite) TestGetChat_Empty() {
	ctx := context.Background()
	productID := uuid.New()
	participantID := uuid.New()

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "messages"`)).
		WithArgs(productID, participantID, participantID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "sender_id", "recipient_id", "product_id", "text", "is_read", "created_at"}))

	messages, err := s.repo.GetChat(ctx, productID, participantID)

	s.NoError(err)
	s.Empty(messages)
}

func (s *MessageRepositoryTestSuite) TestGetProductIDsForUser_OrdersByRecency() {
	ctx := context.Background()
	userID := uuid.New()
	newerID := uuid.New()
	olderID := uuid.New()

	rows := sqlmock.NewRows([]string{"product_id"}).
		AddRow(newerID).
		AddRow(olderID)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT "product_id" FROM "messages" WHERE sender_id = $1 OR recipient_id = $2 GROUP BY "product_id" ORDER BY MAX(created_at) DESC`)).
		WithArgs(userID, userID).
		WillReturnRows(rows)

	ids, err := s.repo.GetProductIDsForUser(ctx, userID)

	s.NoError(err)
	s.Equal([]uuid.UUID{newerID, olderID}, ids)
	s.NoError(s.mock.ExpectationsWereMet())
}
