package movement

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/inventory"
	"petbela/internal/pkg/logger"
)

// MovementService define o contrato que o Handler espera da camada de Serviço.
type MovementService interface {
	RegisterEntry(ctx context.Context, form inventory.MovementForm) (domain.StockEntry, error)
	RegisterExit(ctx context.Context, form inventory.MovementForm) (domain.StockExit, error)
	ListEntries(ctx context.Context, dateRange domain.DateRange) ([]domain.StockEntry, error)
	ListExits(ctx context.Context, dateRange domain.DateRange) ([]domain.StockExit, error)
}

// Handler agrupa os métodos de Handler de movimentações de estoque.
type Handler struct {
	Service MovementService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc MovementService, log logger.Logger) *Handler {
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

// dateRangeFromQuery extrai o filtro opcional de período da query string.
func dateRangeFromQuery(r *http.Request) domain.DateRange {
	return domain.DateRange{
		From: r.URL.Query().Get("date_from"),
		To:   r.URL.Query().Get("date_to"),
	}
}

// CreateEntryHandler lida com a requisição POST /v1/entries.
// @Summary Registra uma entrada de estoque
// @Description Valida o formulário e registra o evento imutável de entrada.
// @Tags movements
// @Accept json
// @Produce json
// @Param entry body inventory.MovementForm true "Campos brutos do formulário de entrada"
// @Success 201 {object} domain.StockEntry "Entrada registrada"
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Router /v1/entries [post]
func (h *Handler) CreateEntryHandler(w http.ResponseWriter, r *http.Request) {
	var form inventory.MovementForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusCreated)
		return
	}

	entry, err := h.Service.RegisterEntry(r.Context(), form)
	h.handleServiceResponse(w, r, entry, err, http.StatusCreated)
}

// ListEntriesHandler lida com a requisição GET /v1/entries.
// @Summary Lista entradas de estoque
// @Description Entradas por data decrescente, com filtro opcional de período (date_from/date_to).
// @Tags movements
// @Produce json
// @Param date_from query string false "Limite inferior inclusivo (AAAA-MM-DD)"
// @Param date_to query string false "Limite superior inclusivo (AAAA-MM-DD)"
// @Success 200 {array} domain.StockEntry
// @Router /v1/entries [get]
func (h *Handler) ListEntriesHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Service.ListEntries(r.Context(), dateRangeFromQuery(r))
	h.handleServiceResponse(w, r, entries, err, http.StatusOK)
}

// CreateExitHandler lida com a requisição POST /v1/exits.
// A quantidade é checada contra o saldo em mãos antes da saída ser aplicada;
// a violação retorna a quantidade disponível no erro do campo "quantity".
// @Summary Registra uma saída de estoque
// @Tags movements
// @Accept json
// @Produce json
// @Param exit body inventory.MovementForm true "Campos brutos do formulário de saída"
// @Success 201 {object} domain.StockExit "Saída registrada"
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos ou estoque insuficiente"
// @Router /v1/exits [post]
func (h *Handler) CreateExitHandler(w http.ResponseWriter, r *http.Request) {
	var form inventory.MovementForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusCreated)
		return
	}

	exit, err := h.Service.RegisterExit(r.Context(), form)
	h.handleServiceResponse(w, r, exit, err, http.StatusCreated)
}

// ListExitsHandler lida com a requisição GET /v1/exits.
// @Summary Lista saídas de estoque
// @Tags movements
// @Produce json
// @Param date_from query string false "Limite inferior inclusivo (AAAA-MM-DD)"
// @Param date_to query string false "Limite superior inclusivo (AAAA-MM-DD)"
// @Success 200 {array} domain.StockExit
// @Router /v1/exits [get]
func (h *Handler) ListExitsHandler(w http.ResponseWriter, r *http.Request) {
	exits, err := h.Service.ListExits(r.Context(), dateRangeFromQuery(r))
	h.handleServiceResponse(w, r, exits, err, http.StatusOK)
}
