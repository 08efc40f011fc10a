package repository

import (
	"context"
	"fmt"

	"github.com/webrise/subscription-service/internal/models"
)

// CreateSubscription вставляет новую подписку и возвращает её ID.
// Повторная подписка на ту же пару (пользователь, провайдер) отклоняется
// уникальным ограничением и возвращается как ErrSubscriptionExists.
func (s *Storage) CreateSubscription(ctx context.Context, sub models.Subscription) (int64, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (start_date, end_date, active, service_id, user_id)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		sub.StartDate, sub.EndDate, sub.Active, sub.ProviderID, sub.UserID).Scan(&newID)
	if err != nil {
		if violatesForeignKey(err, constraintSubscriptionsService) {
			return 0, fmt.Errorf("%s: %w", op, ErrProviderNotFound)
		}
		if violatesForeignKey(err, constraintSubscriptionsUser) {
			return 0, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}
	return newID, nil
}

// UpdateSubscription обновляет даты, флаг активности и провайдера подписки,
// принадлежащей данному пользователю, и возвращает количество изменённых строк.
func (s *Storage) UpdateSubscription(ctx context.Context, sub models.Subscription, subID, userID int64) (int64, error) {
	const op = "storage.UpdateSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscriptions
			  SET start_date = $1, end_date = $2, active = $3, service_id = $4
			  WHERE id = $5 AND user_id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		sub.StartDate, sub.EndDate, sub.Active, sub.ProviderID, subID, userID)
	if err != nil {
		if violatesForeignKey(err, constraintSubscriptionsService) {
			return 0, fmt.Errorf("%s: %w", op, ErrProviderNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveSubscription удаляет подписку пользователя по паре идентификаторов
// и возвращает количество удалённых строк.
func (s *Storage) RemoveSubscription(ctx context.Context, subID, userID int64) (int64, error) {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`
	result, err := s.DB.ExecContext(ctx, query, subID, userID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// SubscriptionExists проверяет наличие подписки пользователя на провайдера
// независимо от флага активности.
func (s *Storage) SubscriptionExists(ctx context.Context, userID, providerID int64) (bool, error) {
	const op = "storage.SubscriptionExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
				  SELECT 1 FROM subscriptions
				  WHERE user_id = $1 AND service_id = $2)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, userID, providerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListActiveSubscriptions возвращает активные подписки пользователя,
// каждую вместе со снимком данных провайдера.
func (s *Storage) ListActiveSubscriptions(ctx context.Context, userID int64) ([]*models.UserSubscription, error) {
	const op = "storage.ListActiveSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.start_date, s.end_date, s.active, s.user_id,
				  sp.id, sp.name, sp.price
			  FROM subscriptions s
			  JOIN subscription_providers sp ON sp.id = s.service_id
			  WHERE s.user_id = $1 AND s.active = true
			  ORDER BY s.id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserSubscription
	for rows.Next() {
		var item models.UserSubscription
		if err := rows.Scan(&item.ID, &item.StartDate, &item.EndDate, &item.Active,
			&item.UserID, &item.Provider.ID, &item.Provider.Name, &item.Provider.Price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		item.ProviderID = item.Provider.ID
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// TopProviders группирует активные подписки по провайдерам, считает их
// и возвращает первые limit записей по убыванию количества.
func (s *Storage) TopProviders(ctx context.Context, limit int) ([]*models.ProviderStats, error) {
	const op = "storage.TopProviders"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT sp.name, COUNT(s.id) AS subscription_count
			  FROM subscriptions s
			  JOIN subscription_providers sp ON sp.id = s.service_id
			  WHERE s.active = true
			  GROUP BY sp.name
			  ORDER BY COUNT(s.id) DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ProviderStats
	for rows.Next() {
		var item models.ProviderStats
		if err := rows.Scan(&item.ProviderName, &item.SubscriptionCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
