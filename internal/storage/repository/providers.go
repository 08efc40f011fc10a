package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/webrise/subscription-service/internal/models"
)

// CreateProvider вставляет нового провайдера и возвращает его ID.
// Нарушение уникальности названия возвращается как ErrProviderNameTaken.
func (s *Storage) CreateProvider(ctx context.Context, provider models.Provider) (int64, error) {
	const op = "storage.CreateProvider"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscription_providers (name, price)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query, provider.Name, provider.Price).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}
	return newID, nil
}

// ReadProvider возвращает данные провайдера по его ID.
func (s *Storage) ReadProvider(ctx context.Context, id int64) (*models.Provider, error) {
	const op = "storage.ReadProvider"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price
			  FROM subscription_providers
			  WHERE id = $1`
	var result models.Provider
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&result.ID, &result.Name, &result.Price); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrProviderNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateProvider обновляет название и цену провайдера по его ID
// и возвращает количество изменённых строк.
func (s *Storage) UpdateProvider(ctx context.Context, provider models.Provider, id int64) (int64, error) {
	const op = "storage.UpdateProvider"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscription_providers
			  SET name = $1, price = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, provider.Name, provider.Price, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveProvider удаляет провайдера по ID и возвращает количество удалённых
// строк. Удаление провайдера, на которого ещё есть подписки, блокируется
// внешним ключом и возвращается как ErrProviderHasSubscriptions.
func (s *Storage) RemoveProvider(ctx context.Context, id int64) (int64, error) {
	const op = "storage.RemoveProvider"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscription_providers WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		if violatesForeignKey(err, constraintSubscriptionsService) {
			return 0, fmt.Errorf("%s: %w", op, ErrProviderHasSubscriptions)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// ProviderExistsByName проверяет занятость названия провайдера.
func (s *Storage) ProviderExistsByName(ctx context.Context, name string) (bool, error) {
	const op = "storage.ProviderExistsByName"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM subscription_providers WHERE name = $1)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
