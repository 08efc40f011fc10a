package models

// Provider представляет собой провайдера подписочного сервиса.
// Название уникально, цена строго больше нуля.
type Provider struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// DummyProvider используется для приёма данных из JSON-запроса
// на создание или обновление провайдера.
type DummyProvider struct {
	Name  string  `json:"name" validate:"required,max=50"`
	Price float64 `json:"price" validate:"required,gt=0"`
}

// ProviderStats — элемент рейтинга провайдеров по количеству активных подписок.
type ProviderStats struct {
	ProviderName      string `json:"provider_name"`
	SubscriptionCount int64  `json:"subscription_count"`
}
