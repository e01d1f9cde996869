package router

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"petbela/config"
	"petbela/internal/api/movement"
	"petbela/internal/api/product"
	"petbela/internal/api/report"
	"petbela/internal/api/user"
	"petbela/internal/pkg/cache"
	"petbela/internal/pkg/middleware"
)

// NewRouter configura e retorna o roteador HTTP principal.
// Recebe os Handlers já inicializados por injeção de dependências.
// Os padrões de rota usam o suporte a método + wildcard do ServeMux (Go 1.22+),
// então {id} é extraído nos handlers via r.PathValue.
func NewRouter(
	cfg *config.Config,
	productHandler *product.Handler,
	movementHandler *movement.Handler,
	reportHandler *report.Handler,
	userHandler *user.Handler,
	tokenSvc middleware.TokenService,
	cacheClient cache.Client,
) http.Handler {

	mux := http.NewServeMux()

	// Middleware de autenticação: aplicado rota a rota. Leituras do painel
	// ficam abertas; tudo que altera o estoque exige um operador autenticado.
	auth := middleware.NewAuthMiddleware(tokenSvc)

	// --- 1. Health Check ---
	mux.HandleFunc("GET /ping", PingHandler)

	// --- 2. Operadores (v1) ---
	mux.HandleFunc("POST /v1/users/register", userHandler.RegisterHandler)
	mux.HandleFunc("POST /v1/users/login", userHandler.LoginHandler)

	// --- 3. Produtos (v1) ---
	// A rota /watch precisa de padrão literal próprio para não colidir com {id}.
	mux.HandleFunc("GET /v1/products", productHandler.ListProductsHandler)
	mux.HandleFunc("POST /v1/products", auth(productHandler.CreateProductHandler))
	mux.HandleFunc("GET /v1/products/watch", productHandler.WatchProductsHandler)
	mux.HandleFunc("GET /v1/products/{id}", productHandler.GetProductByIDHandler)
	mux.HandleFunc("PUT /v1/products/{id}", auth(productHandler.UpdateProductHandler))
	mux.HandleFunc("DELETE /v1/products/{id}", auth(productHandler.DeleteProductHandler))

	// --- 4. Movimentações (v1) ---
	mux.HandleFunc("GET /v1/entries", movementHandler.ListEntriesHandler)
	mux.HandleFunc("POST /v1/entries", auth(movementHandler.CreateEntryHandler))
	mux.HandleFunc("GET /v1/exits", movementHandler.ListExitsHandler)
	mux.HandleFunc("POST /v1/exits", auth(movementHandler.CreateExitHandler))

	// --- 5. Relatórios e Painel (v1) ---
	mux.HandleFunc("GET /v1/stock", reportHandler.StockViewHandler)
	mux.HandleFunc("GET /v1/reports/monthly", reportHandler.MonthlyReportHandler)
	mux.HandleFunc("GET /v1/dashboard", reportHandler.DashboardHandler)

	// --- 6. Documentação (Swagger UI) ---
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// --- 7. Middlewares Globais ---
	// O rate limiter envolve o mux inteiro, contando requisições por IP no Redis.
	limited := middleware.RateLimiter(cacheClient, cfg.RateLimitMaxRequests, cfg.RateLimitPeriod)

	return limited(mux)
}

// PingHandler é uma função utilitária para o health check.
func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}
