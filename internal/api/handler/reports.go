package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/padocalabs/bakery-pos-api/internal/usecases/reporting"
	"github.com/padocalabs/bakery-pos-api/pkg/apiErrors"
	"github.com/padocalabs/bakery-pos-api/pkg/log"
)

// GetReport gera um dos relatórios gerenciais a partir dos parâmetros da query string.
// Parâmetros fora do padrão são normalizados e a correção é informada nas mensagens,
// a requisição nunca é rejeitada por filtro inválido.
func GetReport(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		raw := reporting.RawReportQuery{
			Report:    r.URL.Query().Get("report"),
			StartDate: r.URL.Query().Get("start_date"),
			EndDate:   r.URL.Query().Get("end_date"),
		}

		filters, messages := reporting.NormalizeReportQuery(raw, time.Now())

		logger.WithFields(log.Fields{
			"report":     filters.Report,
			"start_date": filters.StartDate.Format(time.DateOnly),
			"end_date":   filters.EndDate.Format(time.DateOnly),
		}).Info("relatorios: gerando relatório")

		result := service.GenerateReport(filters)

		// As mensagens de normalização vêm antes das mensagens do relatório
		if len(messages) > 0 {
			result.Messages = append(messages, result.Messages...)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithFields(log.Fields{
				"report": filters.Report,
				"error":  err.Error(),
			}).Error("relatorios: falha ao codificar resposta")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao enviar resposta", nil)
		}
	})
}
