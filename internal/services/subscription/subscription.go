// Package subscription содержит бизнес-логику управления подписками
// пользователей и рейтингом провайдеров.
package subscription

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/webrise/subscription-service/internal/models"
	"github.com/webrise/subscription-service/internal/storage/repository"
)

// Repository определяет методы для работы с подписками в хранилище.
type Repository interface {
	// CreateSubscription добавляет новую подписку и возвращает её ID.
	CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error)
	// UpdateSubscription обновляет подписку пользователя и возвращает количество изменённых строк.
	UpdateSubscription(ctx context.Context, sub models.Subscription, subID, userID int64) (int64, error)
	// RemoveSubscription удаляет подписку пользователя и возвращает количество удалённых строк.
	RemoveSubscription(ctx context.Context, subID, userID int64) (int64, error)
	// SubscriptionExists проверяет наличие подписки на пару (пользователь, провайдер).
	SubscriptionExists(ctx context.Context, userID, providerID int64) (bool, error)
	// ListActiveSubscriptions возвращает активные подписки пользователя с провайдерами.
	ListActiveSubscriptions(ctx context.Context, userID int64) ([]*models.UserSubscription, error)
	// TopProviders возвращает рейтинг провайдеров по числу активных подписок.
	TopProviders(ctx context.Context, limit int) ([]*models.ProviderStats, error)
}

// UserGetter описывает зависимость от сервиса пользователей
// для проверки существования владельца подписки.
type UserGetter interface {
	Get(ctx context.Context, id int64) (*models.UserView, error)
}

// ProviderGetter описывает зависимость от сервиса провайдеров
// для проверки ссылки подписки на провайдера.
type ProviderGetter interface {
	Get(ctx context.Context, id int64) (*models.Provider, error)
}

// Service реализует бизнес-логику работы с подписками.
type Service struct {
	repo      Repository
	users     UserGetter
	providers ProviderGetter
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, users UserGetter, providers ProviderGetter, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		users:     users,
		providers: providers,
		log:       log,
	}
}

// Add создает новую подписку пользователя и возвращает её ID.
// Пользователь и провайдер разрешаются через их сервисы; повторная подписка
// на того же провайдера отклоняется независимо от флага активности.
// Проверка дубликата рекомендательная, гонку разрешает ограничение базы.
func (s *Service) Add(ctx context.Context, userID int64, req models.DummySubscription) (int64, error) {
	const op = "services.subscription.Add"

	if _, err := s.users.Get(ctx, userID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := s.providers.Get(ctx, req.ProviderID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := s.repo.SubscriptionExists(ctx, userID, req.ProviderID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return 0, fmt.Errorf("%s: %w", op, repository.ErrSubscriptionExists)
	}

	sub, err := req.ToSubscription(userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateSubscription(ctx, sub)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new subscription",
		slog.Int64("id", id), slog.Int64("user_id", userID))
	return id, nil
}

// Update перезаписывает даты, флаг активности и провайдера подписки,
// принадлежащей данному пользователю.
func (s *Service) Update(ctx context.Context, userID, subID int64, req models.DummySubscription) error {
	const op = "services.subscription.Update"

	if _, err := s.users.Get(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sub, err := req.ToSubscription(userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	count, err := s.repo.UpdateSubscription(ctx, sub, subID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrSubscriptionNotFound)
	}

	s.log.Info("updated subscription",
		slog.Int64("id", subID), slog.Int64("user_id", userID))
	return nil
}

// Remove удаляет подписку пользователя по паре идентификаторов.
func (s *Service) Remove(ctx context.Context, subID, userID int64) error {
	const op = "services.subscription.Remove"

	count, err := s.repo.RemoveSubscription(ctx, subID, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrSubscriptionNotFound)
	}

	s.log.Info("deleted subscription",
		slog.Int64("id", subID), slog.Int64("user_id", userID))
	return nil
}

// ListByUser возвращает активные подписки пользователя, каждую со снимком
// провайдера. Несуществующий пользователь — ошибка; пользователь без
// активных подписок получает пустой список.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]models.SubscriptionView, error) {
	const op = "services.subscription.ListByUser"

	if _, err := s.users.Get(ctx, userID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	subs, err := s.repo.ListActiveSubscriptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	views := make([]models.SubscriptionView, 0, len(subs))
	for _, sub := range subs {
		views = append(views, models.NewSubscriptionView(sub))
	}
	return views, nil
}

// Top возвращает первые limit провайдеров по числу активных подписок.
// Пустой рейтинг считается отсутствием данных и возвращается как ошибка.
func (s *Service) Top(ctx context.Context, limit int) ([]*models.ProviderStats, error) {
	const op = "services.subscription.Top"

	stats, err := s.repo.TopProviders(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(stats) == 0 {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrSubscriptionNotFound)
	}
	return stats, nil
}
