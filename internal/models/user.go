// Package models содержит доменные структуры пользователей, провайдеров и подписок,
// а также вспомогательные типы для приёма данных из JSON-запросов и формирования ответов.
package models

import "time"

// DateTimeLayout задаёт текстовый формат дат во всех запросах и ответах API.
const DateTimeLayout = "2006-01-02 15:04:05"

// User представляет собой основную модель пользователя,
// используемую в бизнес-логике и хранилище.
type User struct {
	ID        int64     // Идентификатор пользователя
	Username  string    // Имя пользователя, уникальное
	Email     string    // Электронная почта, уникальная
	FullName  string    // Полное имя, может быть пустым
	CreatedAt time.Time // Дата создания, не изменяется
	UpdatedAt time.Time // Дата последнего обновления
}

// DummyUser используется для приёма данных из JSON-запроса на создание пользователя.
// Вместе с пользователем может быть передан начальный список подписок.
type DummyUser struct {
	Username      string              `json:"username" validate:"required,max=50"`
	Email         string              `json:"email" validate:"required,email,max=100"`
	FullName      string              `json:"full_name" validate:"omitempty,max=100"`
	Subscriptions []DummySubscription `json:"subscriptions" validate:"omitempty,dive"`
}

// DummyUpdateUser используется для приёма данных из JSON-запроса на обновление пользователя.
type DummyUpdateUser struct {
	Username string `json:"username" validate:"required,max=50"`
	Email    string `json:"email" validate:"required,email,max=100"`
	FullName string `json:"full_name" validate:"omitempty,max=100"`
}

// UserView — представление пользователя в JSON-ответе вместе с его
// активными подписками. Даты сериализуются в формате DateTimeLayout.
type UserView struct {
	ID            int64              `json:"id"`
	Username      string             `json:"username"`
	Email         string             `json:"email"`
	FullName      string             `json:"full_name,omitempty"`
	CreatedAt     string             `json:"created_at"`
	UpdatedAt     string             `json:"updated_at"`
	Subscriptions []SubscriptionView `json:"subscriptions"`
}

// NewUserView собирает UserView из модели пользователя и списка его активных подписок.
func NewUserView(user *User, subs []*UserSubscription) UserView {
	views := make([]SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, NewSubscriptionView(sub))
	}
	return UserView{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FullName:      user.FullName,
		CreatedAt:     user.CreatedAt.Format(DateTimeLayout),
		UpdatedAt:     user.UpdatedAt.Format(DateTimeLayout),
		Subscriptions: views,
	}
}
