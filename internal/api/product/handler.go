package product

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/inventory"
	"petbela/internal/pkg/logger"
	"petbela/internal/pkg/middleware"
)

// ProductService define o contrato que o Handler espera da camada de Serviço.
type ProductService interface {
	CreateProduct(ctx context.Context, form inventory.ProductForm) (domain.Product, error)
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetProductByID(ctx context.Context, id string) (domain.Product, error)
	UpdateProduct(ctx context.Context, id string, form inventory.ProductForm) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Watcher() (domain.ProductWatcher, bool)
}

// Handler agrupa todos os métodos de Handler do produto.
type Handler struct {
	Service ProductService
	Logger  logger.Logger
}

// NewHandler cria uma nova instância do Handler, injetando o Service e o Logger.
func NewHandler(svc ProductService, log logger.Logger) *Handler {
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

// CreateProductHandler lida com a requisição POST /v1/products.
// @Summary Cria um novo produto
// @Description Valida o formulário de produto e o adiciona ao catálogo.
// @Tags products
// @Accept json
// @Produce json
// @Param product body inventory.ProductForm true "Campos brutos do formulário de produto"
// @Success 201 {object} domain.Product "Produto criado com sucesso"
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos ou código duplicado"
// @Router /v1/products [post]
func (h *Handler) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if claims, ok := middleware.GetUserClaimsFromContext(ctx); ok {
		h.Logger.Debug("Criação de produto solicitada.", map[string]interface{}{
			"user_id": claims.UserID,
			"role":    string(claims.Role),
		})
	}

	var form inventory.ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusCreated)
		return
	}

	newProduct, err := h.Service.CreateProduct(ctx, form)
	h.handleServiceResponse(w, r, newProduct, err, http.StatusCreated)
}

// ListProductsHandler lida com a requisição GET /v1/products.
// @Summary Lista o catálogo de produtos
// @Description Retorna todos os produtos ordenados por nome.
// @Tags products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /v1/products [get]
func (h *Handler) ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	products, err := h.Service.GetProducts(r.Context())
	h.handleServiceResponse(w, r, products, err, http.StatusOK)
}

// GetProductByIDHandler lida com a requisição GET /v1/products/{id}.
// @Summary Busca um produto por ID
// @Tags products
// @Produce json
// @Param id path string true "ID do produto"
// @Success 200 {object} domain.Product
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /v1/products/{id} [get]
func (h *Handler) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")

	product, err := h.Service.GetProductByID(r.Context(), productID)
	h.handleServiceResponse(w, r, product, err, http.StatusOK)
}

// UpdateProductHandler lida com a requisição PUT /v1/products/{id}.
// @Summary Atualiza um produto em lugar
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "ID do produto"
// @Param product body inventory.ProductForm true "Campos brutos do formulário de produto"
// @Success 200 {object} domain.Product
// @Failure 400 {object} domain.ErrorResponse "Dados inválidos"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /v1/products/{id} [put]
func (h *Handler) UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")

	var form inventory.ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		h.handleServiceResponse(w, r, nil, apperror.NewValidationError("Payload inválido. Verifique o formato JSON."), http.StatusOK)
		return
	}

	updated, err := h.Service.UpdateProduct(r.Context(), productID, form)
	h.handleServiceResponse(w, r, updated, err, http.StatusOK)
}

// DeleteProductHandler lida com a requisição DELETE /v1/products/{id}.
// A exclusão não cascateia: o histórico de movimentações permanece.
// @Summary Exclui um produto do catálogo
// @Tags products
// @Param id path string true "ID do produto"
// @Success 204 "Produto excluído"
// @Failure 404 {object} domain.ErrorResponse "Produto não encontrado"
// @Router /v1/products/{id} [delete]
func (h *Handler) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")

	err := h.Service.DeleteProduct(r.Context(), productID)
	h.handleServiceResponse(w, r, nil, err, http.StatusNoContent)
}

// WatchProductsHandler lida com a requisição GET /v1/products/watch (SSE).
// Disponível apenas quando o backend de persistência oferece listeners de
// mudança (Firestore); o backend Postgres responde 501.
func (h *Handler) WatchProductsHandler(w http.ResponseWriter, r *http.Request) {
	watcher, ok := h.Service.Watcher()
	if !ok {
		http.Error(w, "Backend de persistência não suporta observação de mudanças.", http.StatusNotImplemented)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming não suportado.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events := make(chan []domain.Product, 1)
	unsubscribe, err := watcher.Subscribe(r.Context(), func(products []domain.Product) {
		// Descarta o evento se o consumidor estiver atrasado: o próximo
		// snapshot sempre carrega o catálogo completo.
		select {
		case events <- products:
		default:
		}
	})
	if err != nil {
		h.Logger.Error("Falha ao registrar listener de produtos.", err)
		http.Error(w, "Falha ao registrar listener.", http.StatusInternalServerError)
		return
	}
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case products := <-events:
			payload, marshalErr := json.Marshal(products)
			if marshalErr != nil {
				h.Logger.Error("Falha ao serializar snapshot de produtos.", marshalErr)
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
