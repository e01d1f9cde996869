package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"petbela/config"
	"petbela/internal/pkg/cache"
	"petbela/internal/pkg/database"
	firestoreinfra "petbela/internal/pkg/firestore"
	"petbela/internal/pkg/logger"
	"petbela/internal/pkg/token"

	// Camadas da aplicação para Injeção de Dependências
	"petbela/internal/api/movement"
	"petbela/internal/api/product"
	"petbela/internal/api/report"
	"petbela/internal/api/router"
	"petbela/internal/api/user"
	"petbela/internal/domain"
	"petbela/internal/repository/firestorerepo"
	"petbela/internal/repository/movementrepo"
	"petbela/internal/repository/productrepo"
	"petbela/internal/repository/userrepo"
	"petbela/internal/service/movementservice"
	"petbela/internal/service/productservice"
	"petbela/internal/service/reportservice"
	"petbela/internal/service/userservice"
)

func main() {
	// 1. Configuração e Inicialização
	log.Println("⚡ Inicializando serviço Petshop Bela...")

	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// Se o .env não existir, seguimos com o ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ Aviso: Arquivo .env não encontrado ou erro de leitura. Carregando configs apenas do ambiente do sistema.")
	}

	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", map[string]interface{}{"backend": cfg.StoreBackend})

	// 2. Conexão com Recursos de Infraestrutura

	// A. Cache (Redis) — usado pelo catálogo de produtos e pelo rate limiter.
	cacheClient := cache.NewRedisClient(cfg.RedisAddr)
	log.Info("Conexão Redis estabelecida.", nil)

	// B. Persistência — o backend é escolhido por STORE_BACKEND:
	// "postgres" (padrão) ou "firestore" (documentos hospedados, mesmo
	// esquema de coleções da loja original).
	var (
		productRepo domain.ProductRepository
		entryRepo   domain.EntryRepository
		exitRepo    domain.ExitRepository
		userRepo    domain.UserRepository
	)

	switch cfg.StoreBackend {
	case config.StoreFirestore:
		fsClient, err := firestoreinfra.NewClient(context.Background(), cfg.FirestoreProjectID, cfg.FirestoreCredentials)
		if err != nil {
			log.Fatal("Falha ao conectar ao Firestore.", err)
		}
		defer fsClient.Close()
		log.Info("Conexão Firestore estabelecida.", map[string]interface{}{"project": cfg.FirestoreProjectID})

		productRepo = firestorerepo.NewProductRepositoryFS(fsClient.Client, log)
		entryRepo = firestorerepo.NewEntryRepositoryFS(fsClient.Client, log)
		exitRepo = firestorerepo.NewExitRepositoryFS(fsClient.Client, log)
		userRepo = firestorerepo.NewUserRepositoryFS(fsClient.Client, log)

	default:
		db, err := database.NewPostgresDB(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Falha ao conectar ao banco de dados.", err)
		}
		defer db.Close()
		log.Info("Conexão PostgreSQL estabelecida.", nil)

		productRepo = productrepo.NewProductRepository(db, cacheClient, cfg.DBTimeout, cfg.CacheTTL, log)
		entryRepo = movementrepo.NewEntryRepository(db, cfg.DBTimeout, log)
		exitRepo = movementrepo.NewExitRepository(db, cfg.DBTimeout, log)
		userRepo = userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	}
	log.Debug("Repositórios inicializados.", nil)

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Montagem da Clean Architecture)
	// Ordem: Repository -> Service -> Handler

	// A. Serviço de Tokens (JWT)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	log.Debug("Serviço de Tokens JWT inicializado.", nil)

	// B. Serviços (Camada de Lógica de Negócio)
	productSvc := productservice.NewService(productRepo, entryRepo, exitRepo, log)
	movementSvc := movementservice.NewService(entryRepo, exitRepo, log)
	reportSvc := reportservice.NewService(productRepo, entryRepo, exitRepo, log)
	userSvc := userservice.NewService(userRepo, tokenSvc)
	log.Debug("Serviços inicializados.", nil)

	// C. Handlers (Camada de Apresentação)
	productHandler := product.NewHandler(productSvc, log)
	movementHandler := movement.NewHandler(movementSvc, log)
	reportHandler := report.NewHandler(reportSvc, log)
	userHandler := user.NewHandler(userSvc, log)
	log.Debug("Handlers inicializados.", nil)

	// 4. Configuração e Início do Roteador/Servidor

	r := router.NewRouter(cfg, productHandler, movementHandler, reportHandler, userHandler, tokenSvc, cacheClient)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout: 10 * time.Second,
		// WriteTimeout zerado: o stream SSE de /v1/products/watch é de longa duração.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor Petshop Bela ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
