package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/padocalabs/bakery-pos-api/internal/usecases/auditing"
	"github.com/padocalabs/bakery-pos-api/pkg/apiErrors"
)

// ListActivityLog lista as entradas mais recentes do log de atividades
func ListActivityLog(service auditing.Auditor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Limite inválido cai no padrão dentro do serviço
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		entries, err := service.RecentActivity(limit)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar log de atividades", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entries); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
			return
		}
	}
}
