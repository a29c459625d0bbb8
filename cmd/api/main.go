package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/padocalabs/bakery-pos-api/infrastructure/database/postgres"
	"github.com/padocalabs/bakery-pos-api/infrastructure/repository"
	"github.com/padocalabs/bakery-pos-api/internal/api"
	"github.com/padocalabs/bakery-pos-api/internal/config"
	"github.com/padocalabs/bakery-pos-api/internal/scheduler"
	"github.com/padocalabs/bakery-pos-api/internal/usecases/auditing"
	"github.com/padocalabs/bakery-pos-api/internal/usecases/authenticating"
	"github.com/padocalabs/bakery-pos-api/internal/usecases/catalog"
	"github.com/padocalabs/bakery-pos-api/internal/usecases/reporting"
	"github.com/padocalabs/bakery-pos-api/internal/usecases/selling"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	productRepo := repository.NewProductRepository(pgConn)
	categoryRepo := repository.NewCategoryRepository(pgConn)
	saleRepo := repository.NewSaleRepository(pgConn)
	reportRepo := repository.NewReportRepository(pgConn)
	activityLogRepo := repository.NewActivityLogRepository(pgConn)

	authenticator := authenticating.NewService(cfg, userRepo, activityLogRepo)
	reporter := reporting.NewService(cfg, reportRepo)
	seller := selling.NewService(cfg, saleRepo, productRepo, activityLogRepo)
	cataloger := catalog.NewService(cfg, productRepo, categoryRepo, reportRepo, activityLogRepo)
	auditor := auditing.NewService(activityLogRepo)

	// Inicializa os agendadores de rotinas de retaguarda
	lowStockCheckService := scheduler.NewLowStockCheckService(reportRepo, cfg)
	activityLogCleanupService := scheduler.NewActivityLogCleanupService(activityLogRepo, cfg)

	// Inicia os agendadores em background
	if err := lowStockCheckService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o monitor de estoque baixo")
	} else {
		logrus.Info("Monitor de estoque baixo iniciado com sucesso")
	}

	if err := activityLogCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar a limpeza do log de atividades")
	} else {
		logrus.Info("Limpeza do log de atividades iniciada com sucesso")
	}

	server, err := api.New(
		cfg,
		reporter,
		seller,
		cataloger,
		authenticator,
		auditor,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
