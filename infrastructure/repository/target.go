package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vfg2006/sales-pipeline-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

const (
	monthlyTargetsTable = "monthly_targets mt"
)

var targetColumns = []string{
	"mt.id",
	"mt.target_month",
	"mt.sales_target",
	"mt.profit_target",
	"mt.user_id",
	"mt.created_at",
	"mt.updated_at",
}

type TargetRepository interface {
	// ListByMonthRange retorna as metas entre from e to, inclusive. userID nulo retorna as metas da organização
	ListByMonthRange(ctx context.Context, from, to domain.Month, userID *string) ([]domain.MonthlyTarget, error)
	// UpsertOrgTarget cria ou atualiza a meta da organização do mês
	UpsertOrgTarget(ctx context.Context, target *domain.MonthlyTarget) (*domain.MonthlyTarget, error)
}

type targetRepository struct {
	conn *postgres.Connection
}

func NewTargetRepository(conn *postgres.Connection) TargetRepository {
	return &targetRepository{
		conn: conn,
	}
}

func buildListTargetsQuery(from, to domain.Month, userID *string) squirrel.SelectBuilder {
	query := squirrel.
		Select(targetColumns...).
		From(monthlyTargetsTable).
		Where(squirrel.GtOrEq{"mt.target_month": from.Start()}).
		Where(squirrel.LtOrEq{"mt.target_month": to.Start()}).
		OrderBy("mt.target_month ASC", "mt.created_at ASC").
		PlaceholderFormat(squirrel.Dollar)

	if userID == nil {
		return query.Where(squirrel.Eq{"mt.user_id": nil})
	}

	return query.Where(squirrel.Eq{"mt.user_id": *userID})
}

func (r *targetRepository) ListByMonthRange(ctx context.Context, from, to domain.Month, userID *string) ([]domain.MonthlyTarget, error) {
	sqlQuery, args, err := buildListTargetsQuery(from, to, userID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	targets := make([]domain.MonthlyTarget, 0)
	for rows.Next() {
		target, err := scanTarget(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear meta mensal: %w", err)
		}
		targets = append(targets, target)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return targets, nil
}

func buildUpsertOrgTargetQuery(id string, target *domain.MonthlyTarget) squirrel.InsertBuilder {
	return squirrel.StatementBuilder.
		Insert("monthly_targets").
		Columns("id", "target_month", "sales_target", "profit_target", "user_id").
		Values(
			id,
			target.Month.Start(),
			target.SalesTarget,
			target.ProfitTarget,
			nil,
		).
		Suffix(`
			ON CONFLICT (target_month) WHERE user_id IS NULL DO UPDATE SET
				sales_target = EXCLUDED.sales_target,
				profit_target = EXCLUDED.profit_target,
				updated_at = NOW()
			RETURNING id, created_at, updated_at
		`).
		PlaceholderFormat(squirrel.Dollar)
}

func (r *targetRepository) UpsertOrgTarget(ctx context.Context, target *domain.MonthlyTarget) (*domain.MonthlyTarget, error) {
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar id da meta: %w", err)
	}

	sqlQuery, args, err := buildUpsertOrgTargetQuery(id, target).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	saved := *target
	saved.UserID = nil

	err = r.conn.QueryRow(ctx, sqlQuery, args...).Scan(&saved.ID, &saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}

	return &saved, nil
}

func scanTarget(rows *sql.Rows) (domain.MonthlyTarget, error) {
	var (
		target      domain.MonthlyTarget
		targetMonth time.Time
		userID      sql.NullString
	)

	err := rows.Scan(
		&target.ID,
		&targetMonth,
		&target.SalesTarget,
		&target.ProfitTarget,
		&userID,
		&target.CreatedAt,
		&target.UpdatedAt,
	)
	if err != nil {
		return domain.MonthlyTarget{}, err
	}

	target.Month = domain.NewMonth(targetMonth)
	target.UserID = nullStringPtr(userID)

	return target, nil
}
