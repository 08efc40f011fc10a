// Package provider содержит бизнес-логику управления провайдерами подписок.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/webrise/subscription-service/internal/models"
	"github.com/webrise/subscription-service/internal/storage/repository"
)

// Repository определяет методы для работы с провайдерами в хранилище.
type Repository interface {
	// CreateProvider добавляет нового провайдера и возвращает его ID.
	CreateProvider(ctx context.Context, provider models.Provider) (int64, error)
	// ReadProvider возвращает провайдера по ID.
	ReadProvider(ctx context.Context, id int64) (*models.Provider, error)
	// UpdateProvider обновляет данные провайдера и возвращает количество изменённых строк.
	UpdateProvider(ctx context.Context, provider models.Provider, id int64) (int64, error)
	// RemoveProvider удаляет провайдера и возвращает количество удалённых строк.
	RemoveProvider(ctx context.Context, id int64) (int64, error)
	// ProviderExistsByName проверяет занятость названия.
	ProviderExistsByName(ctx context.Context, name string) (bool, error)
}

// Service реализует бизнес-логику работы с провайдерами подписок.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Create создает нового провайдера и возвращает его ID. Проверка занятости
// названия здесь носит рекомендательный характер: гонку двух одновременных
// созданий разрешает уникальное ограничение базы данных.
func (s *Service) Create(ctx context.Context, req models.DummyProvider) (int64, error) {
	const op = "services.provider.Create"

	exists, err := s.repo.ProviderExistsByName(ctx, req.Name)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return 0, fmt.Errorf("%s: %w", op, repository.ErrProviderNameTaken)
	}

	id, err := s.repo.CreateProvider(ctx, models.Provider{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("created new subscription provider", slog.Int64("id", id))
	return id, nil
}

// Update перезаписывает название и цену провайдера.
func (s *Service) Update(ctx context.Context, id int64, req models.DummyProvider) error {
	const op = "services.provider.Update"

	count, err := s.repo.UpdateProvider(ctx, models.Provider{
		Name:  req.Name,
		Price: req.Price,
	}, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrProviderNotFound)
	}

	s.log.Info("updated subscription provider", slog.Int64("id", id))
	return nil
}

// Delete удаляет провайдера. Провайдер, на которого ещё есть подписки,
// не удаляется: ошибка внешнего ключа поднимается наверх как есть.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "services.provider.Delete"

	count, err := s.repo.RemoveProvider(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrProviderNotFound)
	}

	s.log.Info("deleted subscription provider", slog.Int64("id", id))
	return nil
}

// Get возвращает данные провайдера по ID.
func (s *Service) Get(ctx context.Context, id int64) (*models.Provider, error) {
	const op = "services.provider.Get"

	provider, err := s.repo.ReadProvider(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return provider, nil
}
