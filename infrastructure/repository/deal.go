// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/sales-pipeline-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

const (
	dealsTable = "projects p"
)

var dealColumns = []string{
	"p.id",
	"p.company_name",
	"p.contact_person",
	"p.status",
	"p.sales_amount",
	"p.gross_profit",
	"p.probability",
	"p.category",
	"p.expected_order_month",
	"p.expected_booking_month",
	"p.assigned_user_id",
	"COALESCE(u.name, '')",
	"p.created_at",
	"p.updated_at",
	"p.deleted_at",
}

// DealFilter restringe a leitura de negócios. O valor zero retorna todos os negócios ativos
type DealFilter struct {
	AssigneeID     string
	Status         domain.DealStatus
	Category       string
	Search         string // trecho do nome da empresa ou do contato, sem diferenciar maiúsculas
	IncludeDeleted bool
}

type DealRepository interface {
	ListDeals(ctx context.Context, filter DealFilter) ([]domain.Deal, error)
	CountActive(ctx context.Context) (int, error)
}

type dealRepository struct {
	conn *postgres.Connection
}

func NewDealRepository(conn *postgres.Connection) DealRepository {
	return &dealRepository{
		conn: conn,
	}
}

func buildListDealsQuery(filter DealFilter) squirrel.SelectBuilder {
	query := squirrel.
		Select(dealColumns...).
		From(dealsTable).
		LeftJoin("users u ON u.id = p.assigned_user_id").
		OrderBy("p.created_at ASC", "p.id ASC").
		PlaceholderFormat(squirrel.Dollar)

	if !filter.IncludeDeleted {
		query = query.Where(squirrel.Eq{"p.deleted_at": nil})
	}

	if filter.AssigneeID != "" {
		query = query.Where(squirrel.Eq{"p.assigned_user_id": filter.AssigneeID})
	}

	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"p.status": string(filter.Status)})
	}

	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"p.category": filter.Category})
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"p.company_name": pattern},
			squirrel.ILike{"p.contact_person": pattern},
		})
	}

	return query
}

// ListDeals retorna o snapshot de negócios com o nome do responsável já vinculado
func (r *dealRepository) ListDeals(ctx context.Context, filter DealFilter) ([]domain.Deal, error) {
	sqlQuery, args, err := buildListDealsQuery(filter).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sqlQuery, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	deals := make([]domain.Deal, 0)
	for rows.Next() {
		deal, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear negócio: %w", err)
		}
		deals = append(deals, deal)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return deals, nil
}

func (r *dealRepository) CountActive(ctx context.Context) (int, error) {
	sqlQuery, args, err := squirrel.
		Select("COUNT(*)").
		From(dealsTable).
		Where(squirrel.Eq{"p.deleted_at": nil}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int
	if err := r.conn.QueryRow(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("erro ao contar negócios: %w", err)
	}

	return count, nil
}

func scanDeal(rows *sql.Rows) (domain.Deal, error) {
	var (
		deal          domain.Deal
		status        string
		contactPerson sql.NullString
		category      sql.NullString
		orderMonth    sql.NullTime
		bookingMonth  sql.NullTime
		assigneeID    sql.NullString
		deletedAt     sql.NullTime
	)

	err := rows.Scan(
		&deal.ID,
		&deal.CompanyName,
		&contactPerson,
		&status,
		&deal.SalesAmount,
		&deal.GrossProfit,
		&deal.Probability,
		&category,
		&orderMonth,
		&bookingMonth,
		&assigneeID,
		&deal.Assignee.Name,
		&deal.CreatedAt,
		&deal.UpdatedAt,
		&deletedAt,
	)
	if err != nil {
		return domain.Deal{}, err
	}

	// O status não é validado aqui: a agregação rejeita valores fora da enumeração
	deal.Status = domain.DealStatus(status)
	deal.Assignee.ID = assigneeID.String
	deal.ContactPerson = nullStringPtr(contactPerson)
	deal.Category = nullStringPtr(category)
	deal.ExpectedOrderMonth = nullTimePtr(orderMonth)
	deal.ExpectedBookingMonth = nullTimePtr(bookingMonth)
	deal.DeletedAt = nullTimePtr(deletedAt)

	return deal, nil
}

func nullStringPtr(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	return &value.String
}

func nullTimePtr(value sql.NullTime) *time.Time {
	if !value.Valid {
		return nil
	}
	return &value.Time
}
