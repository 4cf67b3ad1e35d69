package service

import (
	"context"
	"fmt"

	"circleshop/internal/app/shop/entity"
	"circleshop/internal/app/shop/repository"

	"github.com/google/uuid"
)

// VisibilityService - единственная реализация правила видимости покупок круга.
// Списки, карточка товара, поиск и уведомления обязаны ходить сюда,
// а не повторять проверку на месте.
type VisibilityService struct {
	circleRepo   repository.CircleRepository
	purchaseRepo repository.PurchaseRepository
}

// NewVisibilityService создает резолвер видимости
func NewVisibilityService(
	circleRepo repository.CircleRepository,
	purchaseRepo repository.PurchaseRepository,
) *VisibilityService {
	return &VisibilityService{
		circleRepo:   circleRepo,
		purchaseRepo: purchaseRepo,
	}
}

// Resolve возвращает первую по порядку добавления связь круга, чей участник
// покупал товар. Побеждает первое совпадение, не "лучшее": если купили
// несколько участников, виден только первый перечисленный.
// nil без ошибки означает "никто из круга не покупал".
func (s *VisibilityService) Resolve(ctx context.Context, viewerID, productID uuid.UUID) (*entity.CirclePurchase, error) {
	edges, err := s.circleRepo.GetByOwner(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load circle: %w", err)
	}

	for _, edge := range edges {
		bought, err := s.purchaseRepo.ExistsByUserAndProduct(ctx, edge.MemberID, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to check purchase: %w", err)
		}
		if bought {
			return matchFromEdge(edge), nil
		}
	}

	return nil, nil
}

// ResolveAll применяет то же правило к каждому товару независимо.
// Связи круга зрителя загружаются один раз на вызов, покупки участников -
// одним запросом: внутри одного запроса состав круга не меняется.
func (s *VisibilityService) ResolveAll(ctx context.Context, viewerID uuid.UUID, productIDs []uuid.UUID) (map[uuid.UUID]*entity.CirclePurchase, error) {
	matches := make(map[uuid.UUID]*entity.CirclePurchase, len(productIDs))
	if len(productIDs) == 0 {
		return matches, nil
	}

	edges, err := s.circleRepo.GetByOwner(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load circle: %w", err)
	}
	if len(edges) == 0 {
		return matches, nil
	}

	memberIDs := make([]uuid.UUID, 0, len(edges))
	for _, edge := range edges {
		memberIDs = append(memberIDs, edge.MemberID)
	}

	purchases, err := s.purchaseRepo.ListByUsersAndProducts(ctx, memberIDs, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load purchases: %w", err)
	}

	// product -> множество купивших участников
	buyers := make(map[uuid.UUID]map[uuid.UUID]bool)
	for _, p := range purchases {
		if buyers[p.ProductID] == nil {
			buyers[p.ProductID] = make(map[uuid.UUID]bool)
		}
		buyers[p.ProductID][p.UserID] = true
	}

	for _, productID := range productIDs {
		productBuyers := buyers[productID]
		if productBuyers == nil {
			continue
		}
		for _, edge := range edges {
			if productBuyers[edge.MemberID] {
				matches[productID] = matchFromEdge(edge)
				break
			}
		}
	}

	return matches, nil
}

// matchFromEdge строит результат: метка отношения, а при пустой метке -
// username участника
func matchFromEdge(edge entity.CircleEdge) *entity.CirclePurchase {
	relation := edge.Relation
	if relation == "" && edge.Member != nil {
		relation = edge.Member.Username
	}
	return &entity.CirclePurchase{
		Relation: relation,
		MemberID: edge.MemberID,
	}
}
