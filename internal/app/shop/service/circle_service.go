package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"circleshop/internal/app/shop/entity"
	"circleshop/internal/app/shop/repository"

	"github.com/google/uuid"
)

// CircleService управляет составом круга: список, добавление и удаление
// участников. Петли owner == member не запрещаются, как и в исходной системе.
type CircleService struct {
	circleRepo repository.CircleRepository
	userRepo   repository.UserRepository
}

// NewCircleService создает сервис управления кругом
func NewCircleService(
	circleRepo repository.CircleRepository,
	userRepo repository.UserRepository,
) *CircleService {
	return &CircleService{
		circleRepo: circleRepo,
		userRepo:   userRepo,
	}
}

// ListMembers возвращает участников круга владельца в порядке добавления
func (s *CircleService) ListMembers(ctx context.Context, ownerID uuid.UUID) ([]entity.CircleMemberView, error) {
	edges, err := s.circleRepo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load circle: %w", err)
	}

	members := make([]entity.CircleMemberView, 0, len(edges))
	for _, edge := range edges {
		view := entity.CircleMemberView{
			ID:       edge.MemberID,
			Relation: edge.Relation,
		}
		if edge.Member != nil {
			view.Username = edge.Member.Username
		}
		members = append(members, view)
	}

	return members, nil
}

// AddMember добавляет участника в круг владельца
// Повторное добавление той же пары дает ErrDuplicateMember
func (s *CircleService) AddMember(ctx context.Context, ownerID uuid.UUID, req *entity.AddCircleMemberRequest) (*entity.CircleEdge, error) {
	member, err := s.userRepo.GetByID(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to resolve member: %w", err)
	}

	edge := &entity.CircleEdge{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		MemberID:  member.ID,
		Relation:  req.Relation,
		CreatedAt: time.Now(),
	}
	if err := s.circleRepo.Create(ctx, edge); err != nil {
		if errors.Is(err, repository.ErrDuplicateEdge) {
			return nil, ErrDuplicateMember
		}
		return nil, fmt.Errorf("failed to add circle member: %w", err)
	}

	edge.Member = member
	return edge, nil
}

// RemoveMember удаляет участника из круга владельца
func (s *CircleService) RemoveMember(ctx context.Context, ownerID, memberID uuid.UUID) error {
	if err := s.circleRepo.Delete(ctx, ownerID, memberID); err != nil {
		if errors.Is(err, repository.ErrEdgeNotFound) {
			return ErrMemberNotFound
		}
		return fmt.Errorf("failed to remove circle member: %w", err)
	}

	return nil
}
