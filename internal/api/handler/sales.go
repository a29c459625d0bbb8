package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/padocalabs/bakery-pos-api/infrastructure/repository"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
	"github.com/padocalabs/bakery-pos-api/internal/usecases/reporting"
	"github.com/padocalabs/bakery-pos-api/internal/usecases/selling"
	"github.com/padocalabs/bakery-pos-api/pkg/apiErrors"
	"github.com/padocalabs/bakery-pos-api/pkg/middleware"
)

type SaleListResponse struct {
	Data       []*domain.Sale     `json:"data"`
	Pagination *domain.Pagination `json:"pagination"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status"`
}

// CreateSale registra uma venda no caixa para o usuário autenticado
func CreateSale(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var req domain.CheckoutRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		sale, err := service.Checkout(userClaims.UserID, &req)
		if err != nil {
			handleCheckoutError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// handleCheckoutError mapeia os erros de venda para as respostas padronizadas
func handleCheckoutError(w http.ResponseWriter, err error) {
	logrus.Error(err)

	switch {
	case errors.Is(err, selling.ErrEmptyCart),
		errors.Is(err, selling.ErrInvalidQuantity),
		errors.Is(err, selling.ErrInvalidPaymentMethod),
		errors.Is(err, selling.ErrInvalidPaymentStatus),
		errors.Is(err, selling.ErrInvalidDiscount):
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

	case errors.Is(err, selling.ErrProductUnavailable):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, err.Error(), nil)

	case errors.Is(err, repository.ErrInsufficientStock):
		apiErrors.WriteError(w, apiErrors.ErrInsufficientStock, err.Error(), nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao registrar venda", nil)
	}
}

// ListSales lista vendas com paginação, ordenação e busca
func ListSales(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		// Parâmetros inválidos caem nos valores padrão, nunca rejeitam a listagem
		filters := reporting.NormalizeSaleListQuery(reporting.RawSaleListQuery{
			Page:     query.Get("page"),
			Limit:    query.Get("limit"),
			SortBy:   query.Get("sort_by"),
			SortDir:  query.Get("sort_dir"),
			Search:   query.Get("search"),
			DateFrom: query.Get("date_from"),
			DateTo:   query.Get("date_to"),
		})

		sales, pagination, err := service.ListSales(filters)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar vendas", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(SaleListResponse{
			Data:       sales,
			Pagination: pagination,
		})
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// GetSale retorna uma venda com seus itens
func GetSale(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saleID, ok := pathID(w, r)
		if !ok {
			return
		}

		sale, err := service.GetSale(saleID)
		if err != nil {
			if errors.Is(err, selling.ErrSaleNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Venda não encontrada", nil)
				return
			}

			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar venda", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(sale); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// UpdateSalePaymentStatus altera o status de pagamento de uma venda
func UpdateSalePaymentStatus(service selling.Seller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		saleID, ok := pathID(w, r)
		if !ok {
			return
		}

		var req UpdatePaymentStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		err := service.UpdatePaymentStatus(userClaims.UserID, saleID, req.PaymentStatus)
		if err != nil {
			switch {
			case errors.Is(err, selling.ErrInvalidPaymentStatus):
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)

			case errors.Is(err, selling.ErrSaleNotFound):
				apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, "Venda não encontrada", nil)

			default:
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao atualizar venda", nil)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
	}
}

// pathID extrai o parâmetro :id da URL respondendo o erro padronizado quando inválido
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	idStr := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if idStr == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID não fornecido", nil)
		return 0, false
	}

	id, err := strconv.Atoi(idStr)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID inválido", nil)
		return 0, false
	}

	return id, true
}
