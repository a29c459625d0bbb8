package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/padocalabs/bakery-pos-api/infrastructure/repository"
	"github.com/padocalabs/bakery-pos-api/internal/config"
)

// LowStockCheckService verifica periodicamente os produtos com estoque abaixo
// do nível de reposição e registra o resultado para o time da padaria
type LowStockCheckService struct {
	scheduler      *gocron.Scheduler
	cfg            *config.Config
	reportRepo     repository.ReportRepository
	checkRunning   bool
	checkMutex     sync.Mutex
	lastCheckedAt  time.Time
	lastFlaggedQty int
}

func NewLowStockCheckService(reportRepo repository.ReportRepository, cfg *config.Config) *LowStockCheckService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   cfg.LowStockCheck.CronSchedule,
		"enabled":         cfg.LowStockCheck.Enabled,
		"dynamic_reorder": cfg.Report.DynamicReorderLevel,
	}).Info("Configuração do monitor de estoque baixo carregada")

	return &LowStockCheckService{
		scheduler:  scheduler,
		cfg:        cfg,
		reportRepo: reportRepo,
	}
}

// Start inicia o agendador
func (s *LowStockCheckService) Start(ctx context.Context) error {
	if !s.cfg.LowStockCheck.Enabled {
		logrus.Info("Monitor de estoque baixo desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.LowStockCheck.CronSchedule).Info("Iniciando monitor de estoque baixo")

	_, err := s.scheduler.Cron(s.cfg.LowStockCheck.CronSchedule).Do(func() {
		s.checkLowStock()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar verificação de estoque baixo: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando monitor de estoque baixo")
		s.scheduler.Stop()
	}()

	return nil
}

// checkLowStock executa a verificação, ignorando disparos sobrepostos
func (s *LowStockCheckService) checkLowStock() {
	s.checkMutex.Lock()
	if s.checkRunning {
		s.checkMutex.Unlock()
		logrus.Info("Verificação de estoque baixo já em andamento, ignorando")
		return
	}
	s.checkRunning = true
	s.checkMutex.Unlock()

	defer func() {
		s.checkMutex.Lock()
		s.checkRunning = false
		s.checkMutex.Unlock()
	}()

	rows, err := s.reportRepo.LowStock(s.cfg.Report.DynamicReorderLevel)
	if err != nil {
		logrus.WithError(err).Error("Erro ao consultar produtos com estoque baixo")
		return
	}

	s.lastCheckedAt = time.Now()
	s.lastFlaggedQty = len(rows)

	if len(rows) == 0 {
		logrus.Info("Nenhum produto com estoque abaixo do nível de reposição")
		return
	}

	for _, row := range rows {
		logrus.WithFields(logrus.Fields{
			"product_id":     row.ProductID,
			"product":        row.Name,
			"stock":          row.StockQuantity,
			"reorder_level":  row.ReorderLevel,
			"demand_30_days": row.Demand30Days,
		}).Warn("Produto com estoque abaixo do nível de reposição")
	}

	logrus.WithField("total", len(rows)).Info("Verificação de estoque baixo concluída")
}
