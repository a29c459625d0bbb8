package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/padocalabs/bakery-pos-api/internal/domain"
	"github.com/padocalabs/bakery-pos-api/internal/usecases/catalog"
	"github.com/padocalabs/bakery-pos-api/pkg/apiErrors"
	"github.com/padocalabs/bakery-pos-api/pkg/middleware"
)

// ListCategories lista as categorias na ordem de exibição
func ListCategories(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := service.ListCategories()
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar categorias", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(categories); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// CreateCategory cadastra uma nova categoria
func CreateCategory(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateCategory")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		var category *domain.Category
		if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		category, err := service.CreateCategory(userClaims.UserID, category)
		if err != nil {
			handleCatalogError(w, err, "Erro ao criar categoria")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(category); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// UpdateCategory atualiza campos de uma categoria existente
func UpdateCategory(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateCategory")

		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		categoryID, ok := pathID(w, r)
		if !ok {
			return
		}

		var req domain.UpdateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		req.ID = categoryID

		category, err := service.UpdateCategory(userClaims.UserID, &req)
		if err != nil {
			handleCatalogError(w, err, "Erro ao atualizar categoria")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(category); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}

// DeleteCategory remove uma categoria sem produtos vinculados
func DeleteCategory(service catalog.Cataloger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		categoryID, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := service.DeleteCategory(userClaims.UserID, categoryID); err != nil {
			handleCatalogError(w, err, "Erro ao remover categoria")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
