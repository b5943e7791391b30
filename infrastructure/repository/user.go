package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-pipeline-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

const (
	usersTable = "users"
)

type UserRepository interface {
	ListUsers(ctx context.Context) ([]domain.UserRef, error)
	GetUserByID(ctx context.Context, userID string) (*domain.UserRef, error)
}

type userRepository struct {
	conn *postgres.Connection
}

func NewUserRepository(conn *postgres.Connection) UserRepository {
	return &userRepository{
		conn: conn,
	}
}

func (r *userRepository) ListUsers(ctx context.Context) ([]domain.UserRef, error) {
	query, args, err := squirrel.
		Select("id", "name").
		From(usersTable).
		OrderBy("name ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	users := make([]domain.UserRef, 0)
	for rows.Next() {
		var user domain.UserRef
		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, fmt.Errorf("erro ao escanear usuário: %w", err)
		}
		users = append(users, user)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return users, nil
}

// GetUserByID retorna nil quando o usuário não existe
func (r *userRepository) GetUserByID(ctx context.Context, userID string) (*domain.UserRef, error) {
	query, args, err := squirrel.
		Select("id", "name").
		From(usersTable).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	user := &domain.UserRef{}
	err = r.conn.QueryRow(ctx, query, args...).Scan(&user.ID, &user.Name)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao buscar usuário: %w", err)
	}

	return user, nil
}
