package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/webrise/subscription-service/internal/models"
)

// CreateUser сохраняет нового пользователя вместе с начальным списком
// подписок в одной транзакции и возвращает его ID. Если хотя бы одна
// подписка не проходит (например, указан несуществующий провайдер),
// откатывается вся операция, включая самого пользователя.
func (s *Storage) CreateUser(ctx context.Context, user models.User, subs []models.Subscription) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID int64
	query := `INSERT INTO users (username, email, full_name, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		user.Username, user.Email, nullString(user.FullName),
		user.CreatedAt, user.UpdatedAt).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}

	subQuery := `INSERT INTO subscriptions (start_date, end_date, active, service_id, user_id)
				 VALUES ($1, $2, $3, $4, $5)`
	for _, sub := range subs {
		if _, err := tx.ExecContext(ctx, subQuery,
			sub.StartDate, sub.EndDate, sub.Active, sub.ProviderID, newID); err != nil {
			if violatesForeignKey(err, constraintSubscriptionsService) {
				return 0, fmt.Errorf("%s: %w", op, ErrProviderNotFound)
			}
			return 0, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadUser возвращает данные пользователя по его ID.
func (s *Storage) ReadUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.ReadUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, email, full_name, created_at, updated_at
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, id)

	var fullName sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &fullName,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if fullName.Valid {
		u.FullName = fullName.String
	}
	return u, nil
}

// UpdateUser обновляет имя пользователя, почту, полное имя и updated_at
// по его ID и возвращает количество изменённых строк.
func (s *Storage) UpdateUser(ctx context.Context, user models.User, id int64) (int64, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET username = $1, email = $2, full_name = $3, updated_at = $4
			  WHERE id = $5`
	result, err := s.DB.ExecContext(ctx, query,
		user.Username, user.Email, nullString(user.FullName), user.UpdatedAt, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, mapUniqueViolation(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// RemoveUser удаляет пользователя по ID и возвращает количество удалённых
// строк. Подписки пользователя удаляются каскадно внешним ключом.
func (s *Storage) RemoveUser(ctx context.Context, id int64) (int64, error) {
	const op = "storage.RemoveUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return rowsAffected, nil
}

// UserExistsByUsername проверяет занятость имени пользователя,
// исключая запись с идентификатором excludeID (0 — без исключений).
func (s *Storage) UserExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error) {
	const op = "storage.UserExistsByUsername"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 AND id <> $2)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, username, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// UserExistsByEmail проверяет занятость электронной почты,
// исключая запись с идентификатором excludeID (0 — без исключений).
func (s *Storage) UserExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	const op = "storage.UserExistsByEmail"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND id <> $2)`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, email, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
