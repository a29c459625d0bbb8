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

// ActivityLogCleanupService remove periodicamente entradas antigas do log de
// atividades, respeitando a janela de retenção configurada
type ActivityLogCleanupService struct {
	scheduler       *gocron.Scheduler
	cfg             *config.Config
	activityLogRepo repository.ActivityLogRepository
	cleanupRunning  bool
	cleanupMutex    sync.Mutex
	lastCleanupAt   time.Time
}

func NewActivityLogCleanupService(activityLogRepo repository.ActivityLogRepository, cfg *config.Config) *ActivityLogCleanupService {
	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":  cfg.ActivityLogCleanup.CronSchedule,
		"retention_days": cfg.ActivityLogCleanup.RetentionDays,
		"enabled":        cfg.ActivityLogCleanup.Enabled,
	}).Info("Configuração da limpeza do log de atividades carregada")

	return &ActivityLogCleanupService{
		scheduler:       scheduler,
		cfg:             cfg,
		activityLogRepo: activityLogRepo,
	}
}

// Start inicia o agendador
func (s *ActivityLogCleanupService) Start(ctx context.Context) error {
	if !s.cfg.ActivityLogCleanup.Enabled {
		logrus.Info("Limpeza do log de atividades desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.ActivityLogCleanup.CronSchedule).Info("Iniciando limpeza agendada do log de atividades")

	_, err := s.scheduler.Cron(s.cfg.ActivityLogCleanup.CronSchedule).Do(func() {
		s.cleanup()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do log de atividades: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando limpeza agendada do log de atividades")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *ActivityLogCleanupService) cleanup() {
	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		logrus.Info("Limpeza do log de atividades já em andamento, ignorando")
		return
	}
	s.cleanupRunning = true
	s.cleanupMutex.Unlock()

	defer func() {
		s.cleanupMutex.Lock()
		s.cleanupRunning = false
		s.cleanupMutex.Unlock()
	}()

	retentionDays := s.cfg.ActivityLogCleanup.RetentionDays

	removed, err := s.activityLogRepo.DeleteOlderThan(retentionDays)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover entradas antigas do log de atividades")
		return
	}

	s.lastCleanupAt = time.Now()

	logrus.WithFields(logrus.Fields{
		"removed":        removed,
		"retention_days": retentionDays,
	}).Info("Limpeza do log de atividades concluída")
}
