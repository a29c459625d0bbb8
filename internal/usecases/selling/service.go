package selling

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/padocalabs/bakery-pos-api/infrastructure/repository"
	"github.com/padocalabs/bakery-pos-api/internal/config"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
	"github.com/padocalabs/bakery-pos-api/pkg/log"
	"github.com/padocalabs/bakery-pos-api/pkg/utils"
)

var (
	ErrEmptyCart            = fmt.Errorf("a venda precisa de ao menos um item")
	ErrInvalidQuantity      = fmt.Errorf("quantidade inválida")
	ErrInvalidPaymentMethod = fmt.Errorf("método de pagamento inválido")
	ErrInvalidPaymentStatus = fmt.Errorf("status de pagamento inválido")
	ErrInvalidDiscount      = fmt.Errorf("desconto inválido")
	ErrProductUnavailable   = fmt.Errorf("produto indisponível")
	ErrSaleNotFound         = fmt.Errorf("venda não encontrada")
)

type Seller interface {
	Checkout(userID int, req *domain.CheckoutRequest) (*domain.Sale, error)
	GetSale(saleID int) (*domain.Sale, error)
	ListSales(filters *domain.SaleListFilters) ([]*domain.Sale, *domain.Pagination, error)
	UpdatePaymentStatus(userID, saleID int, status string) error
}

type Service struct {
	cfg             *config.Config
	saleRepo        repository.SaleRepository
	productRepo     repository.ProductRepository
	activityLogRepo repository.ActivityLogRepository
}

func NewService(
	cfg *config.Config,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	activityLogRepo repository.ActivityLogRepository,
) Seller {
	return &Service{
		cfg:             cfg,
		saleRepo:        saleRepo,
		productRepo:     productRepo,
		activityLogRepo: activityLogRepo,
	}
}

// Checkout valida o carrinho, calcula os totais e registra a venda com débito
// de estoque em transação única. O total obedece sempre a
// subtotal + imposto - desconto.
func (s *Service) Checkout(userID int, req *domain.CheckoutRequest) (*domain.Sale, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if !validPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	paymentStatus := req.PaymentStatus
	if paymentStatus == "" {
		paymentStatus = domain.PaymentStatusPaid
	}
	if paymentStatus != domain.PaymentStatusPaid && paymentStatus != domain.PaymentStatusUnpaid {
		return nil, ErrInvalidPaymentStatus
	}

	items := make([]*domain.SaleItem, 0, len(req.Items))
	subtotal := 0.0

	for _, reqItem := range req.Items {
		if reqItem.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}

		product, err := s.productRepo.GetProductByID(reqItem.ProductID)
		if err != nil {
			return nil, fmt.Errorf("erro ao buscar produto %d: %w", reqItem.ProductID, err)
		}
		if product == nil || product.Status != domain.ProductStatusActive {
			return nil, ErrProductUnavailable
		}
		if product.StockQuantity < reqItem.Quantity {
			return nil, repository.ErrInsufficientStock
		}

		itemSubtotal := utils.RoundWithTwoDecimalPlace(product.Price * float64(reqItem.Quantity))
		subtotal += itemSubtotal

		items = append(items, &domain.SaleItem{
			ProductID: product.ID,
			Quantity:  reqItem.Quantity,
			UnitPrice: product.Price,
			Subtotal:  itemSubtotal,
		})
	}

	subtotal = utils.RoundWithTwoDecimalPlace(subtotal)
	taxAmount := utils.RoundWithTwoDecimalPlace(subtotal * s.cfg.Sales.TaxRate)

	if req.DiscountAmount < 0 || req.DiscountAmount > subtotal+taxAmount {
		return nil, ErrInvalidDiscount
	}

	totalAmount := utils.RoundWithTwoDecimalPlace(subtotal + taxAmount - req.DiscountAmount)

	invoiceNumber, err := utils.NewInvoiceNumber(time.Now())
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar número da venda: %w", err)
	}

	sale := &domain.Sale{
		InvoiceNumber:  invoiceNumber,
		UserID:         userID,
		CustomerName:   req.CustomerName,
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		DiscountAmount: req.DiscountAmount,
		TotalAmount:    totalAmount,
		PaymentStatus:  paymentStatus,
		PaymentMethod:  req.PaymentMethod,
	}

	created, err := s.saleRepo.CreateSale(sale, items)
	if err != nil {
		return nil, err
	}

	s.recordActivity(userID, domain.ActivityCheckout, fmt.Sprintf(
		"Venda %s registrada: total %.2f (%s/%s)",
		created.InvoiceNumber, created.TotalAmount, created.PaymentMethod, created.PaymentStatus,
	))

	return created, nil
}

func (s *Service) GetSale(saleID int) (*domain.Sale, error) {
	sale, err := s.saleRepo.GetSaleByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, ErrSaleNotFound
	}

	return sale, nil
}

func (s *Service) ListSales(filters *domain.SaleListFilters) ([]*domain.Sale, *domain.Pagination, error) {
	sales, total, err := s.saleRepo.ListSales(filters)
	if err != nil {
		return nil, nil, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + filters.Limit - 1) / filters.Limit
	}

	pagination := &domain.Pagination{
		Page:       filters.Page,
		Limit:      filters.Limit,
		Total:      total,
		TotalPages: totalPages,
	}

	return sales, pagination, nil
}

func (s *Service) UpdatePaymentStatus(userID, saleID int, status string) error {
	if !validPaymentStatus(status) {
		return ErrInvalidPaymentStatus
	}

	err := s.saleRepo.UpdatePaymentStatus(saleID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSaleNotFound
		}
		return err
	}

	s.recordActivity(userID, domain.ActivitySaleStatus, fmt.Sprintf(
		"Venda %d marcada como %s", saleID, status,
	))

	return nil
}

// recordActivity registra a ação no log de atividades sem propagar falhas;
// auditoria não pode impedir a operação principal
func (s *Service) recordActivity(userID int, action, details string) {
	entry := &domain.ActivityLog{
		UserID:  &userID,
		Action:  action,
		Details: details,
	}

	if err := s.activityLogRepo.Record(entry); err != nil {
		log.L.WithError(err).WithField("action", action).Warn("Erro ao registrar log de atividade")
	}
}

func validPaymentMethod(method string) bool {
	switch method {
	case domain.PaymentMethodCash, domain.PaymentMethodCard, domain.PaymentMethodPix:
		return true
	}
	return false
}

func validPaymentStatus(status string) bool {
	switch status {
	case domain.PaymentStatusPaid, domain.PaymentStatusUnpaid, domain.PaymentStatusCancelled:
		return true
	}
	return false
}
