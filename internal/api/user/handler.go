package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/pkg/logger"
)

// UserService define o contrato que o Handler espera da camada de Serviço.
type UserService interface {
	Register(ctx context.Context, registration domain.UserRegistration) (domain.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// Handler agrupa os métodos de Handler de operadores.
type Handler struct {
	Service UserService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc UserService, log logger.Logger) *Handler {
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

// RegisterHandler lida com a requisição POST /v1/users/register.
// @Summary Registra um novo operador
// @Tags users
// @Accept json
// @Produce json
// @Param registration body domain.UserRegistration true "Email e senha"
// @Success 201 {object} domain.User "Operador registrado"
// @Failure 409 {object} domain.ErrorResponse "Email já em uso"
// @Router /v1/users/register [post]
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var registration domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusCreated)
		return
	}

	newUser, err := h.Service.Register(r.Context(), registration)
	h.handleServiceResponse(w, r, newUser, err, http.StatusCreated)
}

// LoginHandler lida com a requisição POST /v1/users/login.
// @Summary Autentica um operador
// @Tags users
// @Accept json
// @Produce json
// @Param credentials body domain.UserRegistration true "Email e senha"
// @Success 200 {object} map[string]string "Token JWT de acesso"
// @Failure 401 {object} domain.ErrorResponse "Credenciais inválidas"
// @Router /v1/users/login [post]
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials domain.UserRegistration
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusOK)
		return
	}

	tokenString, err := h.Service.Login(r.Context(), credentials.Email, credentials.Password)
	h.handleServiceResponse(w, r, map[string]string{"token": tokenString}, err, http.StatusOK)
}
