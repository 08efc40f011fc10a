package models

import (
	"fmt"
	"time"
)

// Subscription представляет собой подписку пользователя на провайдера.
// Связи заданы явными внешними ключами, без обратных ссылок на владельца.
// Поле EndDate может быть nil — подписка бессрочная.
type Subscription struct {
	ID         int64      // Идентификатор подписки
	StartDate  time.Time  // Дата начала подписки
	EndDate    *time.Time // Дата окончания, опциональна
	Active     bool       // Флаг активности, задаётся клиентом
	ProviderID int64      // Ссылка на провайдера
	UserID     int64      // Ссылка на пользователя-владельца
}

// DummySubscription используется для приёма данных из JSON-запроса.
// Даты приходят в виде строк формата DateTimeLayout, чтобы их можно было
// валидировать и парсить вручную. Отсутствующий флаг active означает true.
type DummySubscription struct {
	StartDate  string `json:"start_date" validate:"required,datetime=2006-01-02 15:04:05"`
	EndDate    string `json:"end_date" validate:"omitempty,datetime=2006-01-02 15:04:05"`
	Active     *bool  `json:"active"`
	ProviderID int64  `json:"provider_id" validate:"required,gt=0"`
}

// ToSubscription конвертирует DummySubscription в доменную модель.
// Возвращает ошибку, если даты не соответствуют формату DateTimeLayout.
func (d DummySubscription) ToSubscription(userID int64) (Subscription, error) {
	startDate, err := time.Parse(DateTimeLayout, d.StartDate)
	if err != nil {
		return Subscription{}, fmt.Errorf("invalid start date: %w", err)
	}

	var endDate *time.Time
	if d.EndDate != "" {
		parsed, err := time.Parse(DateTimeLayout, d.EndDate)
		if err != nil {
			return Subscription{}, fmt.Errorf("invalid end date: %w", err)
		}
		endDate = &parsed
	}

	active := true
	if d.Active != nil {
		active = *d.Active
	}

	return Subscription{
		StartDate:  startDate,
		EndDate:    endDate,
		Active:     active,
		ProviderID: d.ProviderID,
		UserID:     userID,
	}, nil
}

// UserSubscription — подписка пользователя вместе со снимком данных провайдера.
// Используется при выдаче списков подписок.
type UserSubscription struct {
	Subscription
	Provider Provider
}

// SubscriptionView — представление подписки в JSON-ответе.
// Владелец задан только идентификатором, цикл сериализации исключён.
type SubscriptionView struct {
	ID        int64    `json:"id"`
	StartDate string   `json:"start_date"`
	EndDate   string   `json:"end_date,omitempty"`
	Active    bool     `json:"active"`
	UserID    int64    `json:"user_id"`
	Provider  Provider `json:"provider"`
}

// NewSubscriptionView собирает SubscriptionView из подписки со снимком провайдера.
func NewSubscriptionView(sub *UserSubscription) SubscriptionView {
	view := SubscriptionView{
		ID:        sub.ID,
		StartDate: sub.StartDate.Format(DateTimeLayout),
		Active:    sub.Active,
		UserID:    sub.UserID,
		Provider:  sub.Provider,
	}
	if sub.EndDate != nil {
		view.EndDate = sub.EndDate.Format(DateTimeLayout)
	}
	return view
}
