package entity

import (
	"time"

	"github.com/google/uuid"
)

// User представляет пользователя магазина
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Username     string    `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"type:varchar(255)"`
	PasswordHash string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt хэш, наружу не отдается
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// Product представляет товар в каталоге
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	Price       float64   `json:"price" gorm:"type:decimal(10,2);not null;check:price >= 0"`
	Category    string    `json:"category" gorm:"type:varchar(120)"`
	Rating      float64   `json:"rating" gorm:"not null;default:0"` // Пересчитывается фоновым воркером из реакций
	ImageURL    string    `json:"image_url" gorm:"type:varchar(512)"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (Product) TableName() string {
	return "products"
}

// CircleEdge представляет направленную связь "владелец круга -> участник"
// Relation - необязательная метка отношения ("sister", "friend" и т.п.)
type CircleEdge struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;uniqueIndex:idx_circle_owner_member,priority:1"`
	MemberID  uuid.UUID `json:"member_id" gorm:"type:uuid;not null;uniqueIndex:idx_circle_owner_member,priority:2"`
	Relation  string    `json:"relation" gorm:"type:varchar(50)"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	Member    *User     `json:"member,omitempty" gorm:"foreignKey:MemberID"`
}

// TableName указывает имя таблицы для GORM
func (CircleEdge) TableName() string {
	return "circles"
}

// Purchase представляет факт покупки товара пользователем
// Повторные покупки одной пары (user, product) разрешены
type Purchase struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity    int       `json:"quantity" gorm:"not null;default:1;check:quantity > 0"`
	PurchasedAt time.Time `json:"purchased_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (Purchase) TableName() string {
	return "purchases"
}

// Message представляет сообщение о товаре между двумя пользователями
// Запись неизменяема после создания, кроме флага IsRead
type Message struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	SenderID    uuid.UUID `json:"sender_id" gorm:"type:uuid;not null;index"`
	RecipientID uuid.UUID `json:"recipient_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Text        string    `json:"text" gorm:"type:text"`
	IsRead      bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	Sender      *User     `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
}

// TableName указывает имя таблицы для GORM
func (Message) TableName() string {
	return "messages"
}

// ReactionType представляет вид реакции на товар
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
)

// Valid проверяет что реакция входит в допустимый набор
func (r ReactionType) Valid() bool {
	return r == ReactionLike || r == ReactionDislike
}

// ProductFeedback представляет единственную реакцию пользователя на товар
// Уникальный ключ (product_id, user_id), повторная реакция перезаписывает строку
type ProductFeedback struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID uuid.UUID    `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_feedback_product_user,priority:1"`
	UserID    uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_feedback_product_user,priority:2"`
	Reaction  ReactionType `json:"reaction" gorm:"type:varchar(10);not null"`
	CreatedAt time.Time    `json:"created_at" gorm:"autoCreateTime"`
}

// TableName указывает имя таблицы для GORM
func (ProductFeedback) TableName() string {
	return "product_feedback"
}

// CirclePurchase - результат резолвера видимости покупок круга
// Relation уже содержит итоговую метку (relation связи или username участника)
type CirclePurchase struct {
	Relation string    `json:"relation"`
	MemberID uuid.UUID `json:"member_id"`
}

// ProductWithCircle содержит товар с аннотацией о покупке в круге зрителя
// CirclePurchase == nil означает "никто из круга не покупал"
type ProductWithCircle struct {
	Product
	CirclePurchase *CirclePurchase `json:"circle_purchase,omitempty"`
}

// FeedbackCounts - агрегат реакций по товару
type FeedbackCounts struct {
	Likes    int64 `json:"likes"`
	Dislikes int64 `json:"dislikes"`
}

// ProductNotification - товар из переписки пользователя с агрегатом реакций
type ProductNotification struct {
	Product  Product        `json:"product"`
	Feedback FeedbackCounts `json:"feedback"`
}

// MessageEvent представляет событие создания сообщений для Kafka
type MessageEvent struct {
	EventType  string    `json:"event_type"` // MESSAGE_POSTED
	SenderID   uuid.UUID `json:"sender_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Recipients int       `json:"recipients"`
	Timestamp  time.Time `json:"timestamp"`
}

// FeedbackEvent представляет событие реакции на товар для Kafka
type FeedbackEvent struct {
	EventType string       `json:"event_type"` // FEEDBACK_SET
	ProductID uuid.UUID    `json:"product_id"`
	UserID    uuid.UUID    `json:"user_id"`
	Reaction  ReactionType `json:"reaction"`
	Timestamp time.Time    `json:"timestamp"`
}

// PurchaseEvent представляет событие покупки для Kafka
type PurchaseEvent struct {
	EventType string    `json:"event_type"` // PURCHASE_CREATED
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Quantity  int       `json:"quantity"`
	Timestamp time.Time `json:"timestamp"`
}
