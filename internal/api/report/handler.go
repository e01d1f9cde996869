package report

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/pkg/logger"
)

// ReportService define o contrato que o Handler espera da camada de Serviço.
type ReportService interface {
	MonthlyReport(ctx context.Context, year int, month int) (domain.MonthlyReport, error)
	Dashboard(ctx context.Context) (domain.DashboardSummary, error)
	StockView(ctx context.Context, search string, category domain.Category) ([]domain.StockRow, error)
}

// Handler agrupa os métodos de Handler das visões derivadas.
type Handler struct {
	Service ReportService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ReportService, log logger.Logger) *Handler {
	return &Handler{
		Service: svc,
		Logger:  log,
	}
}

// handleServiceResponse processa erros de serviço e envia respostas padronizadas ao cliente.
func (h *Handler) handleServiceResponse(w http.ResponseWriter, r *http.Request, data interface{}, err error, successStatus int) {
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(successStatus)
		if data != nil {
			if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
				h.Logger.Error("Falha ao codificar JSON de resposta", jsonErr)
			}
		}
		return
	}

	status, category, message, fields := apperror.MapToHTTPStatus(err)

	if status >= 500 {
		h.Logger.Error(fmt.Sprintf("Erro de Servidor: %s", category), err)
	} else {
		h.Logger.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{"path": r.URL.Path})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
		Fields:   fields,
	})
}

// MonthlyReportHandler lida com a requisição GET /v1/reports/monthly.
// @Summary Gera o relatório mensal
// @Description Movimentações do mês de calendário com totais e contagens por tipo de saída.
// @Tags reports
// @Produce json
// @Param year query int true "Ano (ex: 2025)"
// @Param month query int true "Mês (1-12)"
// @Success 200 {object} domain.MonthlyReport
// @Failure 400 {object} domain.ErrorResponse "Período inválido"
// @Router /v1/reports/monthly [get]
func (h *Handler) MonthlyReportHandler(w http.ResponseWriter, r *http.Request) {
	year, errYear := strconv.Atoi(r.URL.Query().Get("year"))
	month, errMonth := strconv.Atoi(r.URL.Query().Get("month"))
	if errYear != nil || errMonth != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Parâmetros year e month são obrigatórios e numéricos."), http.StatusOK)
		return
	}

	reportData, err := h.Service.MonthlyReport(r.Context(), year, month)
	h.handleServiceResponse(w, r, reportData, err, http.StatusOK)
}

// DashboardHandler lida com a requisição GET /v1/dashboard.
// @Summary Resumo do dashboard
// @Description Contagens do mês corrente, faturamento mensal e feed de atividades recentes.
// @Tags reports
// @Produce json
// @Success 200 {object} domain.DashboardSummary
// @Router /v1/dashboard [get]
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Service.Dashboard(r.Context())
	h.handleServiceResponse(w, r, summary, err, http.StatusOK)
}

// StockViewHandler lida com a requisição GET /v1/stock.
// @Summary Tela de estoque
// @Description Linhas do estoque com quantidade derivada e status de estoque baixo; filtros search e category opcionais.
// @Tags reports
// @Produce json
// @Param search query string false "Busca por nome ou código"
// @Param category query string false "Filtro por categoria"
// @Success 200 {array} domain.StockRow
// @Router /v1/stock [get]
func (h *Handler) StockViewHandler(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	category := domain.Category(r.URL.Query().Get("category"))

	rows, err := h.Service.StockView(r.Context(), search, category)
	h.handleServiceResponse(w, r, rows, err, http.StatusOK)
}
