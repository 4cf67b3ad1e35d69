package repository

import (
	"context"
	"errors"

	"circleshop/internal/app/shop/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Код ошибки PostgreSQL для нарушения уникального ограничения
const pgUniqueViolation = "23505"

type circleRepository struct {
	db *gorm.DB
}

// NewCircleRepository создает новый репозиторий связей круга
func NewCircleRepository(db *gorm.DB) CircleRepository {
	return &circleRepository{db: db}
}

// Create создает связь владелец -> участник
// Нарушение уникальности пары (owner, member) превращается в ErrDuplicateEdge
func (r *circleRepository) Create(ctx context.Context, edge *entity.CircleEdge) error {
	result := r.db.WithContext(ctx).Create(edge)

	if result.Error != nil {
		var pgErr *pgconn.PgError
		if errors.As(result.Error, &pgErr) && pgErr.Code == pgUniqueViolation {
			return ErrDuplicateEdge
		}
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEdge
		}
		return result.Error
	}

	return nil
}

// Delete удаляет связь по паре (owner, member)
func (r *circleRepository) Delete(ctx context.Context, ownerID, memberID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND member_id = ?", ownerID, memberID).
		Delete(&entity.CircleEdge{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrEdgeNotFound
	}

	return nil
}

// GetByOwner возвращает связи владельца в порядке добавления
// Порядок существенен: резолвер видимости берет первое совпадение
func (r *circleRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.CircleEdge, error) {
	var edges []entity.CircleEdge
	result := r.db.WithContext(ctx).
		Preload("Member").
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&edges)

	if result.Error != nil {
		return nil, result.Error
	}

	return edges, nil
}

// GetByMember возвращает связи, в которых пользователь состоит участником
func (r *circleRepository) GetByMember(ctx context.Context, memberID uuid.UUID) ([]entity.CircleEdge, error) {
	var edges []entity.CircleEdge
	result := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at ASC, id ASC").
		Find(&edges)

	if result.Error != nil {
		return nil, result.Error
	}

	return edges, nil
}
