package entity

import "github.com/google/uuid"

// RegisterRequest - запрос на регистрацию пользователя
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest - запрос на вход
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse - ответ с токеном доступа
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id"`
	Username    string `json:"username"`
}

// CreateProductRequest - запрос на создание товара
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
	Category    string  `json:"category" validate:"max=120"`
	ImageURL    string  `json:"image_url" validate:"omitempty,max=512"`
}

// PurchaseRequest - запрос на фиксацию покупки
type PurchaseRequest struct {
	Quantity int `json:"quantity" validate:"omitempty,min=1"`
}

// AddCircleMemberRequest - запрос на добавление участника в круг
type AddCircleMemberRequest struct {
	MemberID uuid.UUID `json:"member_id" validate:"required"`
	Relation string    `json:"relation" validate:"max=50"`
}

// AskCircleRequest - запрос "спросить мой круг" о товаре
type AskCircleRequest struct {
	ProductID  uuid.UUID   `json:"product_id" validate:"required"`
	Message    string      `json:"message"`
	Recipients []uuid.UUID `json:"recipients" validate:"required,min=1"`
}

// PostChatMessageRequest - запрос на отправку сообщения в чат товара
type PostChatMessageRequest struct {
	Text string `json:"text"`
}

// ReactRequest - запрос на реакцию like/dislike
type ReactRequest struct {
	Reaction ReactionType `json:"reaction" validate:"required,oneof=like dislike"`
}

// CircleMemberView - участник круга для выдачи наружу
type CircleMemberView struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Relation string    `json:"relation,omitempty"`
}

// ChatView - содержимое чата товара вместе с агрегатом реакций
type ChatView struct {
	Product  Product        `json:"product"`
	Messages []Message      `json:"messages"`
	Feedback FeedbackCounts `json:"feedback"`
}

// ProductListResponse - ответ со списком товаров
type ProductListResponse struct {
	Products []ProductWithCircle `json:"products"`
	Total    int                 `json:"total"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}
