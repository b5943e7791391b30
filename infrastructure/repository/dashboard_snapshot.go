package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/vfg2006/sales-pipeline-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	dashboardSnapshotsTable = "dashboard_snapshots ds"
)

type DashboardSnapshotRepository interface {
	GetByPeriod(ctx context.Context, period domain.Month, trendMonths int) (*domain.DashboardSnapshot, error)
	SaveOrUpdate(ctx context.Context, snapshot *domain.DashboardSnapshot) error
	DeleteOlderThan(ctx context.Context, period domain.Month) (int64, error)
	DeleteFromPeriod(ctx context.Context, period domain.Month) (int64, error)
	GetAllPeriods(ctx context.Context) ([]string, error)
}

type dashboardSnapshotRepository struct {
	conn *postgres.Connection
}

func NewDashboardSnapshotRepository(conn *postgres.Connection) DashboardSnapshotRepository {
	return &dashboardSnapshotRepository{
		conn: conn,
	}
}

func buildGetSnapshotQuery(period domain.Month, trendMonths int) squirrel.SelectBuilder {
	return squirrel.
		Select("ds.id, ds.period, ds.trend_months, ds.dashboard, ds.created_at, ds.updated_at").
		From(dashboardSnapshotsTable).
		Where(squirrel.Eq{"ds.period": period.String(), "ds.trend_months": trendMonths}).
		PlaceholderFormat(squirrel.Dollar)
}

func buildSaveSnapshotQuery(id string, period domain.Month, trendMonths int, dashboardJSON []byte) squirrel.InsertBuilder {
	return squirrel.StatementBuilder.
		Insert("dashboard_snapshots").
		Columns("id", "period", "trend_months", "dashboard").
		Values(id, period.String(), trendMonths, dashboardJSON).
		Suffix(`
			ON CONFLICT (period, trend_months) DO UPDATE SET
				dashboard = EXCLUDED.dashboard,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar)
}

// buildDeleteSnapshotsQuery remove os períodos anteriores a period ou, com fromPeriod, o próprio period e os seguintes
func buildDeleteSnapshotsQuery(period domain.Month, fromPeriod bool) squirrel.DeleteBuilder {
	var where squirrel.Sqlizer = squirrel.Lt{"period": period.String()}
	if fromPeriod {
		where = squirrel.GtOrEq{"period": period.String()}
	}

	return squirrel.Delete("dashboard_snapshots").
		Where(where).
		PlaceholderFormat(squirrel.Dollar)
}

func buildListPeriodsQuery() squirrel.SelectBuilder {
	return squirrel.
		Select("DISTINCT period").
		From("dashboard_snapshots").
		OrderBy("period ASC").
		PlaceholderFormat(squirrel.Dollar)
}

// GetByPeriod retorna nil quando não há snapshot para o período e janela de tendência
func (r *dashboardSnapshotRepository) GetByPeriod(ctx context.Context, period domain.Month, trendMonths int) (*domain.DashboardSnapshot, error) {
	query, args, err := buildGetSnapshotQuery(period, trendMonths).ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	snapshot := &domain.DashboardSnapshot{}
	var (
		rawPeriod     string
		dashboardJSON []byte
	)

	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&snapshot.ID,
		&rawPeriod,
		&snapshot.TrendMonths,
		&dashboardJSON,
		&snapshot.CreatedAt,
		&snapshot.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear snapshot do dashboard: %w", err)
	}

	if snapshot.Period, err = domain.ParseMonth(rawPeriod); err != nil {
		return nil, fmt.Errorf("período inválido no snapshot %s: %w", snapshot.ID, err)
	}

	dashboard := &domain.Dashboard{}
	if err := json.Unmarshal(dashboardJSON, dashboard); err != nil {
		return nil, fmt.Errorf("erro ao deserializar JSON do dashboard: %w", err)
	}
	snapshot.Dashboard = dashboard

	return snapshot, nil
}

func (r *dashboardSnapshotRepository) SaveOrUpdate(ctx context.Context, snapshot *domain.DashboardSnapshot) error {
	if snapshot.Dashboard == nil {
		return fmt.Errorf("snapshot do período %s sem dashboard", snapshot.Period)
	}

	dashboardJSON, err := json.Marshal(snapshot.Dashboard)
	if err != nil {
		return fmt.Errorf("erro ao serializar dashboard para JSON: %w", err)
	}

	if snapshot.ID == "" {
		if snapshot.ID, err = gonanoid.New(); err != nil {
			return fmt.Errorf("erro ao gerar id do snapshot: %w", err)
		}
	}

	sqlQuery, args, err := buildSaveSnapshotQuery(snapshot.ID, snapshot.Period, snapshot.TrendMonths, dashboardJSON).ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	_, err = r.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return fmt.Errorf("erro no banco de dados: %w (código: %s)", pqErr, pqErr.Code)
		}
		return fmt.Errorf("erro ao executar a query: %w", err)
	}

	return nil
}

// DeleteOlderThan remove os snapshots de períodos anteriores a period
func (r *dashboardSnapshotRepository) DeleteOlderThan(ctx context.Context, period domain.Month) (int64, error) {
	return r.delete(ctx, buildDeleteSnapshotsQuery(period, false))
}

// DeleteFromPeriod remove os snapshots de period em diante. A tendência de um mês
// posterior inclui period, então esses snapshots também ficam desatualizados
func (r *dashboardSnapshotRepository) DeleteFromPeriod(ctx context.Context, period domain.Month) (int64, error) {
	return r.delete(ctx, buildDeleteSnapshotsQuery(period, true))
}

func (r *dashboardSnapshotRepository) delete(ctx context.Context, query squirrel.DeleteBuilder) (int64, error) {
	sqlQuery, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(ctx, sqlQuery, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao executar a query: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("erro ao obter número de linhas afetadas: %w", err)
	}

	return rowsAffected, nil
}

// GetAllPeriods retorna todos os períodos com snapshot no formato yyyy-mm
func (r *dashboardSnapshotRepository) GetAllPeriods(ctx context.Context) ([]string, error) {
	query, args, err := buildListPeriodsQuery().ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	periods := make([]string, 0)
	for rows.Next() {
		var period string
		if err := rows.Scan(&period); err != nil {
			return nil, fmt.Errorf("erro ao escanear período: %w", err)
		}
		periods = append(periods, period)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return periods, nil
}

