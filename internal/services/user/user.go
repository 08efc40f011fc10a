// Package user содержит бизнес-логику управления пользователями
// и их начальными подписками.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/webrise/subscription-service/internal/models"
	"github.com/webrise/subscription-service/internal/storage/repository"
)

// Repository определяет методы для работы с пользователями в хранилище.
type Repository interface {
	// CreateUser сохраняет пользователя вместе с подписками в одной транзакции.
	CreateUser(ctx context.Context, user models.User, subs []models.Subscription) (int64, error)
	// ReadUser возвращает пользователя по ID.
	ReadUser(ctx context.Context, id int64) (*models.User, error)
	// UpdateUser обновляет данные пользователя и возвращает количество изменённых строк.
	UpdateUser(ctx context.Context, user models.User, id int64) (int64, error)
	// RemoveUser удаляет пользователя и возвращает количество удалённых строк.
	RemoveUser(ctx context.Context, id int64) (int64, error)
	// UserExistsByUsername проверяет занятость имени, исключая запись excludeID.
	UserExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	// UserExistsByEmail проверяет занятость почты, исключая запись excludeID.
	UserExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error)
	// ListActiveSubscriptions возвращает активные подписки пользователя.
	ListActiveSubscriptions(ctx context.Context, userID int64) ([]*models.UserSubscription, error)
}

// ProviderGetter описывает зависимость от сервиса провайдеров
// для проверки ссылок в начальном списке подписок.
type ProviderGetter interface {
	Get(ctx context.Context, id int64) (*models.Provider, error)
}

// Service реализует бизнес-логику работы с пользователями.
type Service struct {
	repo      Repository
	providers ProviderGetter
	log       *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, providers ProviderGetter, log *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		providers: providers,
		log:       log,
	}
}

// Create создает нового пользователя, при необходимости сразу с подписками.
// Уникальность проверяется сначала по имени, затем по почте; первая найденная
// коллизия завершает операцию. Провайдер каждой подписки разрешается через
// сервис провайдеров. Пользователь и подписки сохраняются атомарно: ошибка
// любой подписки откатывает всё.
func (s *Service) Create(ctx context.Context, req models.DummyUser) (int64, error) {
	const op = "services.user.Create"

	if err := s.checkUnique(ctx, req.Username, req.Email, 0); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	subs := make([]models.Subscription, 0, len(req.Subscriptions))
	for _, dummy := range req.Subscriptions {
		if _, err := s.providers.Get(ctx, dummy.ProviderID); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		sub, err := dummy.ToSubscription(0)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		subs = append(subs, sub)
	}

	now := time.Now()
	id, err := s.repo.CreateUser(ctx, models.User{
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		CreatedAt: now,
		UpdatedAt: now,
	}, subs)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new user",
		slog.Int64("id", id), slog.Int("subscriptions", len(subs)))
	return id, nil
}

// Update перезаписывает имя пользователя, почту, полное имя и updated_at.
// Уникальность проверяется по всем остальным пользователям: собственные
// текущие значения записи конфликтом не считаются.
func (s *Service) Update(ctx context.Context, id int64, req models.DummyUpdateUser) error {
	const op = "services.user.Update"

	if _, err := s.repo.ReadUser(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.checkUnique(ctx, req.Username, req.Email, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	count, err := s.repo.UpdateUser(ctx, models.User{
		Username:  req.Username,
		Email:     req.Email,
		FullName:  req.FullName,
		UpdatedAt: time.Now(),
	}, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	s.log.Info("updated user", slog.Int64("id", id))
	return nil
}

// Delete удаляет пользователя вместе со всеми его подписками.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "services.user.Delete"

	count, err := s.repo.RemoveUser(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
	}

	s.log.Info("deleted user with owned subscriptions", slog.Int64("id", id))
	return nil
}

// Get возвращает пользователя вместе с его активными подписками.
// Пользователь без активных подписок — это не ошибка, а пустой список.
func (s *Service) Get(ctx context.Context, id int64) (*models.UserView, error) {
	const op = "services.user.Get"

	u, err := s.repo.ReadUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	subs, err := s.repo.ListActiveSubscriptions(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	view := models.NewUserView(u, subs)
	return &view, nil
}

func (s *Service) checkUnique(ctx context.Context, username, email string, excludeID int64) error {
	taken, err := s.repo.UserExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return repository.ErrUsernameTaken
	}

	taken, err = s.repo.UserExistsByEmail(ctx, email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return repository.ErrEmailTaken
	}
	return nil
}
