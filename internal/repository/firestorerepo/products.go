// Package firestorerepo implementa o gateway de persistência sobre o
// Firestore (banco de documentos hospedado), backend alternativo selecionado
// por STORE_BACKEND=firestore. Os nomes de coleções e campos seguem o esquema
// de documentos já existente do Petshop Bela (estoque/entradas/saidas), de
// modo que este serviço e o front legado possam apontar para o mesmo projeto.
package firestorerepo

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/pkg/logger"
)

// productDoc é o documento de produto na coleção "estoque".
type productDoc struct {
	Code         string    `firestore:"codigo"`
	Name         string    `firestore:"nome"`
	Category     string    `firestore:"categoria"`
	UnitPrice    float64   `firestore:"preco"`
	MinimumStock int       `firestore:"estoqueMinimo"`
	CreatedAt    time.Time `firestore:"createdAt,serverTimestamp"`
	UpdatedAt    time.Time `firestore:"updatedAt,serverTimestamp"`
}

// ProductRepositoryFS implementa domain.ProductRepository e
// domain.ProductWatcher sobre o Firestore.
type ProductRepositoryFS struct {
	Client *firestore.Client
	logger logger.Logger
}

// NewProductRepositoryFS cria o repositório de produtos do backend Firestore.
func NewProductRepositoryFS(client *firestore.Client, log logger.Logger) *ProductRepositoryFS {
	return &ProductRepositoryFS{Client: client, logger: log}
}

func (r *ProductRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("estoque")
}

// Save insere um novo produto. O carimbo de criação é atribuído pelo servidor
// (serverTimestamp), como o gateway exige.
func (r *ProductRepositoryFS) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	docRef := r.col().NewDoc()
	product.ID = docRef.ID

	if _, err := docRef.Create(ctx, productToDoc(product)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return domain.Product{}, apperror.NewConflictError("Produto já existe no Firestore.")
		}
		return domain.Product{}, apperror.NewGatewayError("Falha ao inserir produto", err)
	}

	snap, err := docRef.Get(ctx)
	if err != nil {
		return domain.Product{}, apperror.NewGatewayError("Falha ao reler produto inserido", err)
	}
	return docToProduct(snap)
}

// FindByID busca um produto pelo ID do documento.
func (r *ProductRepositoryFS) FindByID(ctx context.Context, id string) (domain.Product, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.Product{}, apperror.NewNotFoundError("Produto com ID " + id + " não existe no Firestore.")
		}
		return domain.Product{}, apperror.NewGatewayError("Falha ao buscar produto", err)
	}
	return docToProduct(snap)
}

// FindAll retorna o catálogo completo ordenado por nome.
func (r *ProductRepositoryFS) FindAll(ctx context.Context) ([]domain.Product, error) {
	iter := r.col().OrderBy("nome", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	products := []domain.Product{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperror.NewGatewayError("Falha ao listar produtos", err)
		}
		product, decodeErr := docToProduct(snap)
		if decodeErr != nil {
			return nil, decodeErr
		}
		products = append(products, product)
	}
	return products, nil
}

// Update atualiza um produto existente em lugar (in place).
func (r *ProductRepositoryFS) Update(ctx context.Context, product domain.Product) error {
	_, err := r.col().Doc(product.ID).Set(ctx, map[string]interface{}{
		"codigo":        product.Code,
		"nome":          product.Name,
		"categoria":     string(product.Category),
		"preco":         product.UnitPrice,
		"estoqueMinimo": product.MinimumStock,
		"updatedAt":     firestore.ServerTimestamp,
	}, firestore.MergeAll)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return apperror.NewNotFoundError("Produto com ID " + product.ID + " não existe no Firestore.")
		}
		return apperror.NewGatewayError("Falha ao atualizar produto", err)
	}
	return nil
}

// Delete remove um produto do catálogo. A exclusão não cascateia: entradas e
// saídas históricas mantêm o código do produto como referência.
func (r *ProductRepositoryFS) Delete(ctx context.Context, id string) error {
	if _, err := r.col().Doc(id).Delete(ctx); err != nil {
		return apperror.NewGatewayError("Falha ao excluir produto", err)
	}
	return nil
}

// Subscribe registra um listener de snapshots da coleção de produtos e invoca
// onChange com o catálogo completo a cada mudança. Retorna a função de
// cancelamento do listener.
func (r *ProductRepositoryFS) Subscribe(ctx context.Context, onChange func([]domain.Product)) (func(), error) {
	watchCtx, cancel := context.WithCancel(ctx)
	snapshots := r.col().OrderBy("nome", firestore.Asc).Snapshots(watchCtx)

	go func() {
		defer snapshots.Stop()
		for {
			querySnap, err := snapshots.Next()
			if err != nil {
				// Contexto cancelado ou stream encerrado: fim do listener.
				if status.Code(err) != codes.Canceled {
					r.logger.Warn("Listener de produtos encerrado com erro.", map[string]interface{}{"error": err.Error()})
				}
				return
			}

			products := []domain.Product{}
			docs := querySnap.Documents
			for {
				snap, iterErr := docs.Next()
				if iterErr == iterator.Done {
					break
				}
				if iterErr != nil {
					r.logger.Warn("Falha ao decodificar snapshot de produtos.", map[string]interface{}{"error": iterErr.Error()})
					break
				}
				if product, decodeErr := docToProduct(snap); decodeErr == nil {
					products = append(products, product)
				}
			}
			onChange(products)
		}
	}()

	return cancel, nil
}

func productToDoc(product domain.Product) productDoc {
	return productDoc{
		Code:         product.Code,
		Name:         product.Name,
		Category:     string(product.Category),
		UnitPrice:    product.UnitPrice,
		MinimumStock: product.MinimumStock,
	}
}

func docToProduct(snap *firestore.DocumentSnapshot) (domain.Product, error) {
	var doc productDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.Product{}, apperror.NewGatewayError("Falha ao mapear documento de produto", err)
	}
	return domain.Product{
		ID:           snap.Ref.ID,
		Code:         doc.Code,
		Name:         doc.Name,
		Category:     domain.Category(doc.Category),
		UnitPrice:    doc.UnitPrice,
		MinimumStock: doc.MinimumStock,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}
