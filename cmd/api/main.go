package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/sales-pipeline-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-pipeline-api/infrastructure/exporter"
	"github.com/vfg2006/sales-pipeline-api/infrastructure/repository"
	"github.com/vfg2006/sales-pipeline-api/internal/api"
	"github.com/vfg2006/sales-pipeline-api/internal/api/handler"
	"github.com/vfg2006/sales-pipeline-api/internal/config"
	"github.com/vfg2006/sales-pipeline-api/internal/scheduler"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/dashboarding"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/dealing"
	"github.com/vfg2006/sales-pipeline-api/internal/usecases/targeting"
	"github.com/vfg2006/sales-pipeline-api/pkg/log"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel, cfg.App.Env)
	log.L.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	dealRepo := repository.NewDealRepository(pgConn)
	targetRepo := repository.NewTargetRepository(pgConn)
	userRepo := repository.NewUserRepository(pgConn)
	snapshotRepo := repository.NewDashboardSnapshotRepository(pgConn)

	xlsxExporter := exporter.NewXLSXExporter()

	dashboardService := dashboarding.NewService(
		cfg.Dashboard,
		dealRepo,
		targetRepo,
		userRepo,
		snapshotRepo,
		xlsxExporter,
	)
	dealService := dealing.NewService(dealRepo, xlsxExporter)
	targetService := targeting.NewService(targetRepo, snapshotRepo)

	snapshotSyncService := scheduler.NewDashboardSnapshotSyncService(dashboardService, snapshotRepo, cfg)
	if err := snapshotSyncService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de snapshots do dashboard")
	}

	h := api.NewHandler(
		cfg,
		pgConn,
		dashboardService,
		dealService,
		targetService,
		handler.CronJobServices{DashboardSnapshotSync: snapshotSyncService},
	)

	if err := api.New(cfg, h).Run(ctx); err != nil {
		log.L.WithError(err).Error("Servidor finalizado com erro")
	}
}

// chdirToSource permite encontrar o .env ao executar com go run a partir de outro diretório
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	if err := os.Chdir(path.Dir(file)); err != nil {
		logrus.WithError(err).Debug("Não foi possível mudar para o diretório do binário")
	}
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
