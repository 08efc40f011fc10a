package repository

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Ошибки бизнес-уровня, возвращаемые хранилищем. Проверки существования
// в сервисах носят рекомендательный характер: последним рубежом служат
// ограничения базы данных, нарушения которых транслируются в те же ошибки.
var (
	// ErrUserNotFound — пользователь с таким идентификатором не найден.
	ErrUserNotFound = errors.New("user with that id was not found")
	// ErrProviderNotFound — провайдер с таким идентификатором не найден.
	ErrProviderNotFound = errors.New("subscription provider with that id was not found")
	// ErrSubscriptionNotFound — подписка не найдена для данного пользователя.
	ErrSubscriptionNotFound = errors.New("no subscriptions was found for this user")

	// ErrUsernameTaken — имя пользователя уже занято.
	ErrUsernameTaken = errors.New("user with this username already exists")
	// ErrEmailTaken — электронная почта уже используется.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrProviderNameTaken — провайдер с таким названием уже существует.
	ErrProviderNameTaken = errors.New("this provider name is already taken")
	// ErrSubscriptionExists — у пользователя уже есть подписка на этого провайдера.
	ErrSubscriptionExists = errors.New("this subscription already exists")
	// ErrProviderHasSubscriptions — провайдер ещё используется подписками.
	ErrProviderHasSubscriptions = errors.New("subscription provider is still referenced by subscriptions")
)

// Имена ограничений из migrations/000001_init.up.sql.
const (
	constraintUsersUsername        = "users_username_key"
	constraintUsersEmail           = "users_email_key"
	constraintProvidersName        = "subscription_providers_name_key"
	constraintSubscriptionsPair    = "subscriptions_user_id_service_id_key"
	constraintSubscriptionsUser    = "subscriptions_user_id_fkey"
	constraintSubscriptionsService = "subscriptions_service_id_fkey"
)

// mapUniqueViolation транслирует нарушения уникальных ограничений PostgreSQL
// в ошибки бизнес-уровня. Прочие ошибки возвращаются без изменений.
func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return err
	}

	switch pgErr.ConstraintName {
	case constraintUsersUsername:
		return ErrUsernameTaken
	case constraintUsersEmail:
		return ErrEmailTaken
	case constraintProvidersName:
		return ErrProviderNameTaken
	case constraintSubscriptionsPair:
		return ErrSubscriptionExists
	}
	return err
}

// violatesForeignKey сообщает, что ошибка — нарушение указанного внешнего
// ключа. Один и тот же ключ subscriptions.service_id нарушается и вставкой
// подписки на несуществующего провайдера, и удалением провайдера с
// подписками, поэтому интерпретация остаётся за вызывающим методом.
func violatesForeignKey(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.ForeignKeyViolation &&
		pgErr.ConstraintName == constraint
}
