package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/padocalabs/bakery-pos-api/infrastructure/repository/mocks"
	"github.com/padocalabs/bakery-pos-api/internal/config"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

func TestLowStockCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReportRepo := mocks.NewMockReportRepository(ctrl)

	cfg := &config.Config{}
	cfg.Report.DynamicReorderLevel = true

	service := &LowStockCheckService{
		cfg:        cfg,
		reportRepo: mockReportRepo,
	}

	tests := []struct {
		name        string
		setup       func()
		wantFlagged int
	}{
		{
			name: "Produtos abaixo do nível são contabilizados",
			setup: func() {
				mockReportRepo.EXPECT().
					LowStock(true).
					Return([]*domain.LowStockRow{
						{ProductID: 1, Name: "Pão francês", StockQuantity: 3, ReorderLevel: 5, Demand30Days: 200},
						{ProductID: 2, Name: "Sonho", StockQuantity: 4, ReorderLevel: 5, Demand30Days: 80},
					}, nil)
			},
			wantFlagged: 2,
		},
		{
			name: "Sem produtos abaixo do nível",
			setup: func() {
				mockReportRepo.EXPECT().
					LowStock(true).
					Return([]*domain.LowStockRow{}, nil)
			},
			wantFlagged: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()

			service.checkLowStock()

			assert.Equal(t, tt.wantFlagged, service.lastFlaggedQty)
			assert.False(t, service.checkRunning)
		})
	}
}

func TestLowStockCheckQueryFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReportRepo := mocks.NewMockReportRepository(ctrl)

	cfg := &config.Config{}
	cfg.Report.DynamicReorderLevel = false

	service := &LowStockCheckService{
		cfg:        cfg,
		reportRepo: mockReportRepo,
	}

	mockReportRepo.EXPECT().LowStock(false).Return(nil, assert.AnError)

	service.checkLowStock()

	// Falha na consulta não deixa a flag de execução presa
	assert.False(t, service.checkRunning)
	assert.Equal(t, 0, service.lastFlaggedQty)
}

func TestActivityLogCleanup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockActivityLogRepo := mocks.NewMockActivityLogRepository(ctrl)

	cfg := &config.Config{}
	cfg.ActivityLogCleanup.RetentionDays = 180

	service := &ActivityLogCleanupService{
		cfg:             cfg,
		activityLogRepo: mockActivityLogRepo,
	}

	mockActivityLogRepo.EXPECT().DeleteOlderThan(180).Return(int64(42), nil)

	service.cleanup()

	assert.False(t, service.cleanupRunning)
	assert.False(t, service.lastCleanupAt.IsZero())
}
