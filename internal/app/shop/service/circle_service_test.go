package service

import (
	"context"
	"testing"

	"circleshop/internal/app/shop/entity"
	"circleshop/internal/app/shop/repository"
	"circleshop/internal/app/shop/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestListMembers_Success(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	userRepo := new(mocks.MockUserRepository)
	service := NewCircleService(circleRepo, userRepo)

	ctx := context.Background()
	ownerID := uuid.New()
	memberID := uuid.New()

	circleRepo.On("GetByOwner", ctx, ownerID).Return([]entity.CircleEdge{
		{OwnerID: ownerID, MemberID: memberID, Relation: "sister", Member: &entity.User{ID: memberID, Username: "alice"}},
	}, nil)

	members, err := service.ListMembers(ctx, ownerID)

	assert.NoError(t, err)
	assert.Len(t, members, 1)
	assert.Equal(t, memberID, members[0].ID)
	assert.Equal(t, "alice", members[0].Username)
	assert.Equal(t, "sister", members[0].Relation)
}

func TestListMembers_Empty(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	userRepo := new(mocks.MockUserRepository)
	service := NewCircleService(circleRepo, userRepo)

	ctx := context.Background()
	ownerID := uuid.New()

	circleRepo.On("GetByOwner", ctx, ownerID).Return([]entity.CircleEdge{}, nil)

	members, err := service.ListMembers(ctx, ownerID)

	assert.NoError(t, err)
	assert.Empty(t, members)
}

func TestAddMember_Success(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	userRepo := new(mocks.MockUserRepository)
	service := NewCircleService(circleRepo, userRepo)

	ctx := context.Background()
	ownerID := uuid.New()
	memberID := uuid.New()

	userRepo.On("GetByID", ctx, memberID).Return(&entity.User{ID: memberID, Username: "bob"}, nil)
	circleRepo.On("Create", ctx, mock.MatchedBy(func(e *entity.CircleEdge) bool {
		return e.OwnerID == ownerID && e.MemberID == memberID && e.Relation == "friend"
	})).Return(nil)

	edge, err := service.AddMember(ctx, ownerID, &entity.AddCircleMemberRequest{MemberID: memberID, Relation: "friend"})

	assert.NoError(t, err)
	assert.NotNil(t, edge)
	assert.Equal(t, "bob", edge.Member.Username)
}

func TestAddMember_UserNotFound(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	userRepo := new(mocks.MockUserRepository)
	service := NewCircleService(circleRepo, userRepo)

	ctx := context.Background()
	memberID := uuid.New()

	userRepo.On("GetByID", ctx, memberID).Return(nil, repository.ErrUserNotFound)

	edge, err := service.AddMember(ctx, uuid.New(), &entity.AddCircleMemberRequest{MemberID: memberID})

	assert.ErrorIs(t, err, ErrMemberNotFound)
	assert.Nil(t, edge)
	circleRepo.AssertNotCalled(t, "Create")
}

func TestAddMember_Duplicate(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	userRepo := new(mocks.MockUserRepository)
	service := NewCircleService(circleRepo, userRepo)

	ctx := context.Background()
	memberID := uuid.New()

	userRepo.On("GetByID", ctx, memberID).Return(&entity.User{ID: memberID}, nil)
	circleRepo.On("Create", ctx, mock.Anything).Return(repository.ErrDuplicateEdge)

	edge, err := service.AddMember(ctx, uuid.New(), &entity.AddCircleMemberRequest{MemberID: memberID})

	assert.ErrorIs(t, err, ErrDuplicateMember)
	assert.Nil(t, edge)
}

func TestRemoveMember_Success(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	userRepo := new(mocks.MockUserRepository)
	service := NewCircleService(circleRepo, userRepo)

	ctx := context.Background()
	ownerID := uuid.New()
	memberID := uuid.New()

	circleRepo.On("Delete", ctx, ownerID, memberID).Return(nil)

	err := service.RemoveMember(ctx, ownerID, memberID)

	assert.NoError(t, err)
}

func TestRemoveMember_NotFound(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	userRepo := new(mocks.MockUserRepository)
	service := NewCircleService(circleRepo, userRepo)

	ctx := context.Background()
	ownerID := uuid.New()
	memberID := uuid.New()

	circleRepo.On("Delete", ctx, ownerID, memberID).Return(repository.ErrEdgeNotFound)

	err := service.RemoveMember(ctx, ownerID, memberID)

	assert.ErrorIs(t, err, ErrMemberNotFound)
}
