package auditing

import (
	"github.com/padocalabs/bakery-pos-api/infrastructure/repository"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Auditor expõe a consulta do log de atividades para a retaguarda
type Auditor interface {
	RecentActivity(limit int) ([]*domain.ActivityLog, error)
}

type Service struct {
	activityLogRepo repository.ActivityLogRepository
}

func NewService(activityLogRepo repository.ActivityLogRepository) Auditor {
	return &Service{
		activityLogRepo: activityLogRepo,
	}
}

// RecentActivity lista as entradas mais recentes do log de atividades.
// Limite fora da faixa cai no padrão, nunca rejeita a consulta.
func (s *Service) RecentActivity(limit int) ([]*domain.ActivityLog, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	return s.activityLogRepo.ListRecent(limit)
}
