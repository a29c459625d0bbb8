package selling

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/padocalabs/bakery-pos-api/infrastructure/repository"
	"github.com/padocalabs/bakery-pos-api/infrastructure/repository/mocks"
	"github.com/padocalabs/bakery-pos-api/internal/config"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
)

type saleMocks struct {
	sale        *mocks.MockSaleRepository
	product     *mocks.MockProductRepository
	activityLog *mocks.MockActivityLogRepository
}

func newTestService(t *testing.T, taxRate float64) (Seller, *saleMocks) {
	ctrl := gomock.NewController(t)

	m := &saleMocks{
		sale:        mocks.NewMockSaleRepository(ctrl),
		product:     mocks.NewMockProductRepository(ctrl),
		activityLog: mocks.NewMockActivityLogRepository(ctrl),
	}

	cfg := &config.Config{}
	cfg.Sales.TaxRate = taxRate

	return NewService(cfg, m.sale, m.product, m.activityLog), m
}

func activeProduct(id int, price float64, stock int) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          "Pão francês",
		Price:         price,
		CostPrice:     price / 2,
		StockQuantity: stock,
		Status:        domain.ProductStatusActive,
	}
}

func TestCheckout(t *testing.T) {
	service, m := newTestService(t, 0.1)

	req := &domain.CheckoutRequest{
		PaymentMethod:  domain.PaymentMethodPix,
		PaymentStatus:  domain.PaymentStatusPaid,
		DiscountAmount: 5,
		Items: []domain.CheckoutItem{
			{ProductID: 1, Quantity: 10},
			{ProductID: 2, Quantity: 2},
		},
	}

	m.product.EXPECT().GetProductByID(1).Return(activeProduct(1, 0.8, 100), nil)
	m.product.EXPECT().GetProductByID(2).Return(activeProduct(2, 12.5, 20), nil)

	m.sale.EXPECT().
		CreateSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(sale *domain.Sale, items []*domain.SaleItem) (*domain.Sale, error) {
			// subtotal = 8.00 + 25.00, imposto de 10%, desconto de 5
			assert.Equal(t, 33.0, sale.Subtotal)
			assert.Equal(t, 3.3, sale.TaxAmount)
			assert.Equal(t, 5.0, sale.DiscountAmount)
			assert.Equal(t, 31.3, sale.TotalAmount)
			assert.Equal(t, 7, sale.UserID)
			assert.NotEmpty(t, sale.InvoiceNumber)

			assert.Len(t, items, 2)
			assert.Equal(t, 0.8, items[0].UnitPrice)
			assert.Equal(t, 10, items[0].Quantity)

			sale.ID = 42
			return sale, nil
		})

	m.activityLog.EXPECT().Record(gomock.Any()).Return(nil)

	sale, err := service.Checkout(7, req)

	assert.NoError(t, err)
	if assert.NotNil(t, sale) {
		assert.Equal(t, 42, sale.ID)
		// Invariante do total: subtotal + imposto - desconto
		assert.InDelta(t, sale.Subtotal+sale.TaxAmount-sale.DiscountAmount, sale.TotalAmount, 0.001)
	}
}

func TestCheckoutValidations(t *testing.T) {
	tests := []struct {
		name    string
		req     *domain.CheckoutRequest
		setup   func(m *saleMocks)
		wantErr error
	}{
		{
			name:    "Carrinho vazio",
			req:     &domain.CheckoutRequest{PaymentMethod: domain.PaymentMethodCash},
			wantErr: ErrEmptyCart,
		},
		{
			name: "Método de pagamento desconhecido",
			req: &domain.CheckoutRequest{
				PaymentMethod: "cheque",
				Items:         []domain.CheckoutItem{{ProductID: 1, Quantity: 1}},
			},
			wantErr: ErrInvalidPaymentMethod,
		},
		{
			name: "Status de pagamento inválido no checkout",
			req: &domain.CheckoutRequest{
				PaymentMethod: domain.PaymentMethodCash,
				PaymentStatus: domain.PaymentStatusCancelled,
				Items:         []domain.CheckoutItem{{ProductID: 1, Quantity: 1}},
			},
			wantErr: ErrInvalidPaymentStatus,
		},
		{
			name: "Quantidade zerada",
			req: &domain.CheckoutRequest{
				PaymentMethod: domain.PaymentMethodCash,
				Items:         []domain.CheckoutItem{{ProductID: 1, Quantity: 0}},
			},
			wantErr: ErrInvalidQuantity,
		},
		{
			name: "Produto inexistente",
			req: &domain.CheckoutRequest{
				PaymentMethod: domain.PaymentMethodCash,
				Items:         []domain.CheckoutItem{{ProductID: 99, Quantity: 1}},
			},
			setup: func(m *saleMocks) {
				m.product.EXPECT().GetProductByID(99).Return(nil, nil)
			},
			wantErr: ErrProductUnavailable,
		},
		{
			name: "Produto inativo",
			req: &domain.CheckoutRequest{
				PaymentMethod: domain.PaymentMethodCash,
				Items:         []domain.CheckoutItem{{ProductID: 1, Quantity: 1}},
			},
			setup: func(m *saleMocks) {
				product := activeProduct(1, 5, 10)
				product.Status = domain.ProductStatusInactive
				m.product.EXPECT().GetProductByID(1).Return(product, nil)
			},
			wantErr: ErrProductUnavailable,
		},
		{
			name: "Estoque insuficiente detectado antes da transação",
			req: &domain.CheckoutRequest{
				PaymentMethod: domain.PaymentMethodCash,
				Items:         []domain.CheckoutItem{{ProductID: 1, Quantity: 50}},
			},
			setup: func(m *saleMocks) {
				m.product.EXPECT().GetProductByID(1).Return(activeProduct(1, 5, 10), nil)
			},
			wantErr: repository.ErrInsufficientStock,
		},
		{
			name: "Desconto maior que o total",
			req: &domain.CheckoutRequest{
				PaymentMethod:  domain.PaymentMethodCash,
				DiscountAmount: 100,
				Items:          []domain.CheckoutItem{{ProductID: 1, Quantity: 1}},
			},
			setup: func(m *saleMocks) {
				m.product.EXPECT().GetProductByID(1).Return(activeProduct(1, 5, 10), nil)
			},
			wantErr: ErrInvalidDiscount,
		},
		{
			name: "Desconto negativo",
			req: &domain.CheckoutRequest{
				PaymentMethod:  domain.PaymentMethodCash,
				DiscountAmount: -1,
				Items:          []domain.CheckoutItem{{ProductID: 1, Quantity: 1}},
			},
			setup: func(m *saleMocks) {
				m.product.EXPECT().GetProductByID(1).Return(activeProduct(1, 5, 10), nil)
			},
			wantErr: ErrInvalidDiscount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(t, 0)

			if tt.setup != nil {
				tt.setup(m)
			}

			sale, err := service.Checkout(1, tt.req)

			assert.Nil(t, sale)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckoutActivityLogFailureDoesNotBlock(t *testing.T) {
	service, m := newTestService(t, 0)

	req := &domain.CheckoutRequest{
		PaymentMethod: domain.PaymentMethodCash,
		Items:         []domain.CheckoutItem{{ProductID: 1, Quantity: 1}},
	}

	m.product.EXPECT().GetProductByID(1).Return(activeProduct(1, 5, 10), nil)
	m.sale.EXPECT().
		CreateSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(sale *domain.Sale, items []*domain.SaleItem) (*domain.Sale, error) {
			return sale, nil
		})

	// Falha na auditoria não derruba a venda
	m.activityLog.EXPECT().Record(gomock.Any()).Return(assert.AnError)

	sale, err := service.Checkout(1, req)

	assert.NoError(t, err)
	assert.NotNil(t, sale)
}

func TestListSalesPagination(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		limit          int
		wantTotalPages int
	}{
		{
			name:           "Divisão exata",
			total:          40,
			limit:          10,
			wantTotalPages: 4,
		},
		{
			name:           "Página parcial conta como inteira",
			total:          41,
			limit:          10,
			wantTotalPages: 5,
		},
		{
			name:           "Sem registros",
			total:          0,
			limit:          10,
			wantTotalPages: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newTestService(t, 0)

			filters := &domain.SaleListFilters{
				Page:    1,
				Limit:   tt.limit,
				SortBy:  "s.created_at",
				SortDir: "DESC",
			}

			m.sale.EXPECT().ListSales(filters).Return([]*domain.Sale{}, tt.total, nil)

			_, pagination, err := service.ListSales(filters)

			assert.NoError(t, err)
			if assert.NotNil(t, pagination) {
				assert.Equal(t, tt.total, pagination.Total)
				assert.Equal(t, tt.wantTotalPages, pagination.TotalPages)
			}
		})
	}
}

func TestGetSaleNotFound(t *testing.T) {
	service, m := newTestService(t, 0)

	m.sale.EXPECT().GetSaleByID(123).Return(nil, nil)

	sale, err := service.GetSale(123)

	assert.Nil(t, sale)
	assert.ErrorIs(t, err, ErrSaleNotFound)
}

func TestUpdatePaymentStatus(t *testing.T) {
	t.Run("Status válido é repassado e auditado", func(t *testing.T) {
		service, m := newTestService(t, 0)

		m.sale.EXPECT().UpdatePaymentStatus(10, domain.PaymentStatusCancelled).Return(nil)
		m.activityLog.EXPECT().Record(gomock.Any()).Return(nil)

		err := service.UpdatePaymentStatus(1, 10, domain.PaymentStatusCancelled)
		assert.NoError(t, err)
	})

	t.Run("Status desconhecido é rejeitado", func(t *testing.T) {
		service, _ := newTestService(t, 0)

		err := service.UpdatePaymentStatus(1, 10, "estornado")
		assert.ErrorIs(t, err, ErrInvalidPaymentStatus)
	})

	t.Run("Venda inexistente", func(t *testing.T) {
		service, m := newTestService(t, 0)

		m.sale.EXPECT().UpdatePaymentStatus(10, domain.PaymentStatusPaid).Return(sql.ErrNoRows)

		err := service.UpdatePaymentStatus(1, 10, domain.PaymentStatusPaid)
		assert.ErrorIs(t, err, ErrSaleNotFound)
	})
}
