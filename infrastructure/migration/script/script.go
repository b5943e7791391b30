package main

import (
	"context"
	"database/sql"
	"flag"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vfg2006/sales-pipeline-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pipeline-api/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline-api/internal/config"
	"github.com/vfg2006/sales-pipeline-api/internal/domain"
	"github.com/vfg2006/sales-pipeline-api/pkg/log"
	"github.com/vfg2006/sales-pipeline-api/pkg/utils"
)

type seedUser struct {
	Name  string
	Email string
}

type seedDeal struct {
	Company     string
	Status      domain.DealStatus
	Sales       string
	Profit      string
	Probability int
	Category    string
	BookingIn   int // meses em relação ao mês corrente
	UserIndex   int
}

func generateID() string {
	id, err := utils.GenerateID()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao gerar identificador")
	}
	return id
}

func seed(ctx context.Context, conn *postgres.Connection, now time.Time) error {
	users := []seedUser{
		{Name: "Ana Souza", Email: "ana@example.com"},
		{Name: "Bruno Lima", Email: "bruno@example.com"},
	}

	deals := []seedDeal{
		{Company: "Acme", Status: domain.DealStatusWon, Sales: "1000000", Profit: "300000", Probability: 100, Category: "software", BookingIn: 0, UserIndex: 0},
		{Company: "Globex", Status: domain.DealStatusNegotiation, Sales: "500000", Profit: "120000", Probability: 50, Category: "consultoria", BookingIn: 0, UserIndex: 1},
		{Company: "Initech", Status: domain.DealStatusProposal, Sales: "250000", Profit: "60000", Probability: 70, Category: "software", BookingIn: 1, UserIndex: 0},
		{Company: "Umbrella", Status: domain.DealStatusWon, Sales: "800000", Profit: "200000", Probability: 100, BookingIn: -1, UserIndex: 1},
		{Company: "Hooli", Status: domain.DealStatusLead, Sales: "150000", Profit: "30000", Probability: 10, Category: "hardware", BookingIn: 2, UserIndex: 0},
		{Company: "Stark", Status: domain.DealStatusLost, Sales: "400000", Profit: "90000", Probability: 0, Category: "hardware", BookingIn: -2, UserIndex: 1},
	}

	current := domain.NewMonth(now)

	return conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		userIDs := make([]string, len(users))
		for i, u := range users {
			userIDs[i] = generateID()
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO users (id, name, email) VALUES ($1, $2, $3)`,
				userIDs[i], u.Name, u.Email,
			); err != nil {
				return err
			}
		}
		log.L.Infof("Inseridos %d usuários", len(users))

		for _, d := range deals {
			var category *string
			if d.Category != "" {
				category = &d.Category
			}

			dealID := generateID()
			booking := current.AddMonths(d.BookingIn).Start()
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO projects (id, company_name, status, sales_amount, gross_profit, probability, category,
					expected_order_month, expected_booking_month, assigned_user_id)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
				dealID, d.Company, string(d.Status),
				decimal.RequireFromString(d.Sales), decimal.RequireFromString(d.Profit),
				d.Probability, category, booking, booking, userIDs[d.UserIndex],
			); err != nil {
				return err
			}

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO activities (id, project_id, activity_type, content, activity_date, created_by)
				 VALUES ($1, $2, $3, $4, $5, $6)`,
				generateID(), dealID, string(domain.ActivityTypeMeeting), "Reunião inicial com "+d.Company, now, userIDs[d.UserIndex],
			); err != nil {
				return err
			}
		}
		log.L.Infof("Inseridos %d negócios", len(deals))

		for i := -5; i <= 0; i++ {
			month := current.AddMonths(i)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO monthly_targets (id, target_month, sales_target, profit_target) VALUES ($1, $2, $3, $4)
				 ON CONFLICT (target_month) WHERE user_id IS NULL DO NOTHING`,
				generateID(), month.Start(), decimal.NewFromInt(1500000), decimal.NewFromInt(400000),
			); err != nil {
				return err
			}
		}
		log.L.Info("Inseridas metas da organização dos últimos seis meses")

		return nil
	})
}

func main() {
	withSeed := flag.Bool("seed", false, "insere dados de exemplo quando a base estiver vazia")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao carregar configuração")
	}
	log.Configure(cfg.App.LogLevel, cfg.App.Env)

	ctx := context.Background()
	startTime := time.Now()

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao banco de dados")
	}
	defer conn.Close()

	version, err := postgres.RunMigrations(conn)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao aplicar as migrações")
	}
	log.L.Infof("Schema na versão %d", version)

	if *withSeed {
		count, err := repository.NewDealRepository(conn).CountActive(ctx)
		if err != nil {
			log.L.WithError(err).Fatal("Erro ao contar negócios")
		}

		if count > 0 {
			log.L.Infof("Base já possui %d negócios, carga de exemplo ignorada", count)
		} else if err := seed(ctx, conn, time.Now()); err != nil {
			log.L.WithError(err).Fatal("Erro na carga de exemplo")
		}
	}

	log.L.Infof("Migração concluída em %v", time.Since(startTime))
}
