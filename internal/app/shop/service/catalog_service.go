package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"circleshop/internal/app/shop/entity"
	"circleshop/internal/app/shop/infrastructure"
	"circleshop/internal/app/shop/repository"
	"circleshop/internal/app/shop/util"

	"github.com/google/uuid"

	"circleshop/pkg/logger"
	"circleshop/pkg/metrics"
)

// Срок жизни кеша списка товаров
const productsCacheTTL = 5 * time.Minute

// CatalogService обрабатывает каталог: списки, карточку, поиск, создание
// товара и фиксацию покупок. Видимость покупок круга всегда резолвится
// заново через VisibilityResolver - кешируются только строки товаров.
type CatalogService struct {
	productRepo   repository.ProductRepository
	purchaseRepo  repository.PurchaseRepository
	visibility    VisibilityResolver
	redisClient   *util.RedisClient
	kafkaProducer infrastructure.MessagePublisher
}

// NewCatalogService создает сервис каталога с внедрением зависимостей
func NewCatalogService(
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
	visibility VisibilityResolver,
	redisClient *util.RedisClient,
	kafkaProducer infrastructure.MessagePublisher,
) *CatalogService {
	return &CatalogService{
		productRepo:   productRepo,
		purchaseRepo:  purchaseRepo,
		visibility:    visibility,
		redisClient:   redisClient,
		kafkaProducer: kafkaProducer,
	}
}

// ListProducts возвращает все товары с аннотацией покупок круга зрителя
// viewerID == nil означает анонимного зрителя - без аннотаций
func (s *CatalogService) ListProducts(ctx context.Context, viewerID *uuid.UUID) ([]entity.ProductWithCircle, error) {
	products, err := s.cachedProducts(ctx)
	if err != nil {
		return nil, err
	}

	return s.annotate(ctx, products, viewerID)
}

// GetProduct возвращает карточку товара с аннотацией покупки круга
func (s *CatalogService) GetProduct(ctx context.Context, id uuid.UUID, viewerID *uuid.UUID) (*entity.ProductWithCircle, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	result := &entity.ProductWithCircle{Product: *product}
	if viewerID != nil {
		match, err := s.visibility.Resolve(ctx, *viewerID, id)
		if err != nil {
			return nil, err
		}
		result.CirclePurchase = match
		if match != nil {
			metrics.CirclePurchaseHits.Inc()
		}
	}

	return result, nil
}

// SearchProducts ищет товары по подстроке имени без учета регистра
// Пустой запрос дает пустую выдачу
func (s *CatalogService) SearchProducts(ctx context.Context, query string, viewerID *uuid.UUID) ([]entity.ProductWithCircle, error) {
	if query == "" {
		return []entity.ProductWithCircle{}, nil
	}

	products, err := s.productRepo.SearchByName(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return s.annotate(ctx, products, viewerID)
}

// CreateProduct создает товар и инвалидирует кеш списка
func (s *CatalogService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	product := &entity.Product{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		CreatedAt:   time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if err := s.redisClient.DeleteProducts(ctx); err != nil {
		// Товар уже создан, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("Failed to invalidate products cache")
	}

	return product, nil
}

// RecordPurchase фиксирует покупку товара пользователем
// Повторные покупки той же пары (user, product) разрешены
func (s *CatalogService) RecordPurchase(ctx context.Context, userID, productID uuid.UUID, quantity int) (*entity.Purchase, error) {
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	purchase := &entity.Purchase{
		ID:        uuid.New(),
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  quantity,
	}
	if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}

	metrics.PurchasesRecorded.Inc()
	s.publishPurchaseEvent(ctx, userID, productID, quantity)

	return purchase, nil
}

// cachedProducts читает список товаров из Redis, при промахе - из БД с
// последующим заполнением кеша
func (s *CatalogService) cachedProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.redisClient.GetProducts(ctx)
	if err == nil && products != nil {
		metrics.RecordCacheHit("shop", "products")
		return products, nil
	}
	if err != nil {
		logger.Warn().Err(err).Msg("Products cache read failed, falling back to database")
	}
	metrics.RecordCacheMiss("shop", "products")

	products, err = s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}

	if err := s.redisClient.SetProducts(ctx, products, productsCacheTTL); err != nil {
		// Данные получены из БД, проблемы с кешем не критичны
		logger.Warn().Err(err).Msg("Failed to cache products")
	}

	return products, nil
}

// annotate добавляет каждому товару аннотацию покупки круга зрителя
func (s *CatalogService) annotate(ctx context.Context, products []entity.Product, viewerID *uuid.UUID) ([]entity.ProductWithCircle, error) {
	annotated := make([]entity.ProductWithCircle, 0, len(products))

	if viewerID == nil {
		for _, p := range products {
			annotated = append(annotated, entity.ProductWithCircle{Product: p})
		}
		return annotated, nil
	}

	productIDs := make([]uuid.UUID, 0, len(products))
	for _, p := range products {
		productIDs = append(productIDs, p.ID)
	}

	matches, err := s.visibility.ResolveAll(ctx, *viewerID, productIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range products {
		item := entity.ProductWithCircle{Product: p, CirclePurchase: matches[p.ID]}
		if item.CirclePurchase != nil {
			metrics.CirclePurchaseHits.Inc()
		}
		annotated = append(annotated, item)
	}

	return annotated, nil
}

// publishPurchaseEvent отправляет событие PURCHASE_CREATED в Kafka
// Покупка уже записана, проблемы с Kafka не критичны
func (s *CatalogService) publishPurchaseEvent(ctx context.Context, userID, productID uuid.UUID, quantity int) {
	event := entity.PurchaseEvent{
		EventType: "PURCHASE_CREATED",
		ProductID: productID,
		UserID:    userID,
		Quantity:  quantity,
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to marshal purchase event")
		return
	}

	if err := s.kafkaProducer.PublishMessage(ctx, productID.String(), data); err != nil {
		logger.Error().Err(err).Msg("Failed to publish purchase event")
	}
}
