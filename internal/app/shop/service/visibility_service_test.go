package service

import (
	"context"
	"errors"
	"testing"

	"circleshop/internal/app/shop/entity"
	"circleshop/internal/app/shop/repository/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolve_EmptyCircle(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	purchaseRepo := new(mocks.MockPurchaseRepository)
	service := NewVisibilityService(circleRepo, purchaseRepo)

	ctx := context.Background()
	viewerID := uuid.New()
	productID := uuid.New()

	circleRepo.On("GetByOwner", ctx, viewerID).Return([]entity.CircleEdge{}, nil)

	match, err := service.Resolve(ctx, viewerID, productID)

	assert.NoError(t, err)
	assert.Nil(t, match)
	purchaseRepo.AssertNotCalled(t, "ExistsByUserAndProduct")
}

func TestResolve_NobodyBought(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	purchaseRepo := new(mocks.MockPurchaseRepository)
	service := NewVisibilityService(circleRepo, purchaseRepo)

	ctx := context.Background()
	viewerID := uuid.New()
	productID := uuid.New()
	memberID := uuid.New()

	edges := []entity.CircleEdge{
		{ID: uuid.New(), OwnerID: viewerID, MemberID: memberID, Relation: "sister"},
	}
	circleRepo.On("GetByOwner", ctx, viewerID).Return(edges, nil)
	purchaseRepo.On("ExistsByUserAndProduct", ctx, memberID, productID).Return(false, nil)

	match, err := service.Resolve(ctx, viewerID, productID)

	assert.NoError(t, err)
	assert.Nil(t, match)
}

func TestResolve_FirstMatchWins(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	purchaseRepo := new(mocks.MockPurchaseRepository)
	service := NewVisibilityService(circleRepo, purchaseRepo)

	ctx := context.Background()
	viewerID := uuid.New()
	productID := uuid.New()
	firstID := uuid.New()
	secondID := uuid.New()

	// Обе связи указывают на купивших: победить должна первая по порядку
	edges := []entity.CircleEdge{
		{ID: uuid.New(), OwnerID: viewerID, MemberID: firstID, Relation: "sister"},
		{ID: uuid.New(), OwnerID: viewerID, MemberID: secondID, Relation: "friend"},
	}
	circleRepo.On("GetByOwner", ctx, viewerID).Return(edges, nil)
	purchaseRepo.On("ExistsByUserAndProduct", ctx, firstID, productID).Return(true, nil)

	match, err := service.Resolve(ctx, viewerID, productID)

	assert.NoError(t, err)
	assert.NotNil(t, match)
	assert.Equal(t, firstID, match.MemberID)
	assert.Equal(t, "sister", match.Relation)
	purchaseRepo.AssertNotCalled(t, "ExistsByUserAndProduct", ctx, secondID, productID)
}

func TestResolve_SkipsNonBuyers(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	purchaseRepo := new(mocks.MockPurchaseRepository)
	service := NewVisibilityService(circleRepo, purchaseRepo)

	ctx := context.Background()
	viewerID := uuid.New()
	productID := uuid.New()
	firstID := uuid.New()
	secondID := uuid.New()

	edges := []entity.CircleEdge{
		{ID: uuid.New(), OwnerID: viewerID, MemberID: firstID, Relation: "sister"},
		{ID: uuid.New(), OwnerID: viewerID, MemberID: secondID, Member: &entity.User{ID: secondID, Username: "bob"}},
	}
	circleRepo.On("GetByOwner", ctx, viewerID).Return(edges, nil)
	purchaseRepo.On("ExistsByUserAndProduct", ctx, firstID, productID).Return(false, nil)
	purchaseRepo.On("ExistsByUserAndProduct", ctx, secondID, productID).Return(true, nil)

	match, err := service.Resolve(ctx, viewerID, productID)

	assert.NoError(t, err)
	assert.NotNil(t, match)
	assert.Equal(t, secondID, match.MemberID)
	// Пустая метка отношения заменяется на username участника
	assert.Equal(t, "bob", match.Relation)
}

func TestResolve_RepoError(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	purchaseRepo := new(mocks.MockPurchaseRepository)
	service := NewVisibilityService(circleRepo, purchaseRepo)

	ctx := context.Background()
	viewerID := uuid.New()

	circleRepo.On("GetByOwner", ctx, viewerID).Return(nil, errors.New("db error"))

	match, err := service.Resolve(ctx, viewerID, uuid.New())

	assert.Error(t, err)
	assert.Nil(t, match)
}

func TestResolveAll_EmptyProducts(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	purchaseRepo := new(mocks.MockPurchaseRepository)
	service := NewVisibilityService(circleRepo, purchaseRepo)

	matches, err := service.ResolveAll(context.Background(), uuid.New(), nil)

	assert.NoError(t, err)
	assert.Empty(t, matches)
	circleRepo.AssertNotCalled(t, "GetByOwner")
}

func TestResolveAll_PerProductFirstMatch(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	purchaseRepo := new(mocks.MockPurchaseRepository)
	service := NewVisibilityService(circleRepo, purchaseRepo)

	ctx := context.Background()
	viewerID := uuid.New()
	firstID := uuid.New()
	secondID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()
	productC := uuid.New()

	edges := []entity.CircleEdge{
		{ID: uuid.New(), OwnerID: viewerID, MemberID: firstID, Relation: "sister"},
		{ID: uuid.New(), OwnerID: viewerID, MemberID: secondID, Relation: "friend"},
	}
	circleRepo.On("GetByOwner", ctx, viewerID).Return(edges, nil)

	// productA купили оба участника, productB - только второй, productC - никто
	purchases := []entity.Purchase{
		{UserID: firstID, ProductID: productA},
		{UserID: secondID, ProductID: productA},
		{UserID: secondID, ProductID: productB},
	}
	purchaseRepo.On("ListByUsersAndProducts", ctx, []uuid.UUID{firstID, secondID}, []uuid.UUID{productA, productB, productC}).
		Return(purchases, nil)

	matches, err := service.ResolveAll(ctx, viewerID, []uuid.UUID{productA, productB, productC})

	assert.NoError(t, err)
	assert.Len(t, matches, 2)
	assert.Equal(t, firstID, matches[productA].MemberID)
	assert.Equal(t, "sister", matches[productA].Relation)
	assert.Equal(t, secondID, matches[productB].MemberID)
	assert.Equal(t, "friend", matches[productB].Relation)
	assert.Nil(t, matches[productC])
}

func TestResolveAll_EmptyCircleSkipsPurchaseQuery(t *testing.T) {
	circleRepo := new(mocks.MockCircleRepository)
	purchaseRepo := new(mocks.MockPurchaseRepository)
	service := NewVisibilityService(circleRepo, purchaseRepo)

	ctx := context.Background()
	viewerID := uuid.New()

	circleRepo.On("GetByOwner", ctx, viewerID).Return([]entity.CircleEdge{}, nil)

	matches, err := service.ResolveAll(ctx, viewerID, []uuid.UUID{uuid.New()})

	assert.NoError(t, err)
	assert.Empty(t, matches)
	purchaseRepo.AssertNotCalled(t, "ListByUsersAndProducts")
}
