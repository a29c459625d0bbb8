package auditing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/padocalabs/bakery-pos-api/infrastructure/repository/mocks"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

func TestRecentActivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockActivityLogRepository(ctrl)
	service := NewService(mockRepo)

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{
			name:      "Limite informado é respeitado",
			limit:     25,
			wantLimit: 25,
		},
		{
			name:      "Limite zerado cai no padrão",
			limit:     0,
			wantLimit: 50,
		},
		{
			name:      "Limite negativo cai no padrão",
			limit:     -3,
			wantLimit: 50,
		},
		{
			name:      "Limite acima do teto é reduzido",
			limit:     9999,
			wantLimit: 200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo.EXPECT().
				ListRecent(tt.wantLimit).
				Return([]*domain.ActivityLog{}, nil)

			entries, err := service.RecentActivity(tt.limit)

			assert.NoError(t, err)
			assert.NotNil(t, entries)
		})
	}
}
