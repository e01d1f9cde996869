package firestorerepo

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/pkg/logger"
)

// entryDoc é o documento de entrada na coleção "entradas".
// Datas de movimentação são strings ISO (AAAA-MM-DD): a comparação
// lexicográfica do Firestore equivale à comparação de calendário.
type entryDoc struct {
	Product    string    `firestore:"produto"`
	Quantity   int       `firestore:"quantidade"`
	UnitPrice  float64   `firestore:"preco"`
	Supplier   string    `firestore:"fornecedor"`
	InvoiceRef string    `firestore:"nota"`
	Date       string    `firestore:"data"`
	Notes      string    `firestore:"observacoes"`
	CreatedAt  time.Time `firestore:"createdAt,serverTimestamp"`
}

// exitDoc é o documento de saída na coleção "saidas".
type exitDoc struct {
	Product   string    `firestore:"produto"`
	Quantity  int       `firestore:"quantidade"`
	Kind      string    `firestore:"tipo"`
	Customer  string    `firestore:"cliente"`
	UnitPrice float64   `firestore:"preco"`
	Date      string    `firestore:"data"`
	Notes     string    `firestore:"observacoes"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
}

// EntryRepositoryFS implementa domain.EntryRepository sobre o Firestore.
type EntryRepositoryFS struct {
	Client *firestore.Client
	logger logger.Logger
}

// NewEntryRepositoryFS cria o repositório de entradas do backend Firestore.
func NewEntryRepositoryFS(client *firestore.Client, log logger.Logger) *EntryRepositoryFS {
	return &EntryRepositoryFS{Client: client, logger: log}
}

func (r *EntryRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("entradas")
}

// Save insere uma nova entrada de estoque (imutável após a criação).
func (r *EntryRepositoryFS) Save(ctx context.Context, entry domain.StockEntry) (domain.StockEntry, error) {
	docRef := r.col().NewDoc()
	entry.ID = docRef.ID

	doc := entryDoc{
		Product:    entry.Product,
		Quantity:   entry.Quantity,
		UnitPrice:  entry.UnitPrice,
		Supplier:   entry.Supplier,
		InvoiceRef: entry.InvoiceRef,
		Date:       entry.Date,
		Notes:      entry.Notes,
	}
	if _, err := docRef.Create(ctx, doc); err != nil {
		return domain.StockEntry{}, apperror.NewGatewayError("Falha ao inserir entrada de estoque", err)
	}

	snap, err := docRef.Get(ctx)
	if err != nil {
		return domain.StockEntry{}, apperror.NewGatewayError("Falha ao reler entrada inserida", err)
	}
	return docToEntry(snap)
}

// FindAll lista as entradas ordenadas por data decrescente, com filtro
// opcional de período inclusivo.
func (r *EntryRepositoryFS) FindAll(ctx context.Context, dateRange domain.DateRange) ([]domain.StockEntry, error) {
	iter := movementQuery(r.col(), dateRange).Documents(ctx)
	defer iter.Stop()

	entries := []domain.StockEntry{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperror.NewGatewayError("Falha ao listar entradas", err)
		}
		entry, decodeErr := docToEntry(snap)
		if decodeErr != nil {
			return nil, decodeErr
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ExitRepositoryFS implementa domain.ExitRepository sobre o Firestore.
type ExitRepositoryFS struct {
	Client *firestore.Client
	logger logger.Logger
}

// NewExitRepositoryFS cria o repositório de saídas do backend Firestore.
func NewExitRepositoryFS(client *firestore.Client, log logger.Logger) *ExitRepositoryFS {
	return &ExitRepositoryFS{Client: client, logger: log}
}

func (r *ExitRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("saidas")
}

// Save insere uma nova saída de estoque (imutável após a criação).
func (r *ExitRepositoryFS) Save(ctx context.Context, exit domain.StockExit) (domain.StockExit, error) {
	docRef := r.col().NewDoc()
	exit.ID = docRef.ID

	doc := exitDoc{
		Product:   exit.Product,
		Quantity:  exit.Quantity,
		Kind:      string(exit.Kind),
		Customer:  exit.Customer,
		UnitPrice: exit.UnitPrice,
		Date:      exit.Date,
		Notes:     exit.Notes,
	}
	if _, err := docRef.Create(ctx, doc); err != nil {
		return domain.StockExit{}, apperror.NewGatewayError("Falha ao inserir saída de estoque", err)
	}

	snap, err := docRef.Get(ctx)
	if err != nil {
		return domain.StockExit{}, apperror.NewGatewayError("Falha ao reler saída inserida", err)
	}
	return docToExit(snap)
}

// FindAll lista as saídas ordenadas por data decrescente, com filtro opcional
// de período inclusivo.
func (r *ExitRepositoryFS) FindAll(ctx context.Context, dateRange domain.DateRange) ([]domain.StockExit, error) {
	iter := movementQuery(r.col(), dateRange).Documents(ctx)
	defer iter.Stop()

	exits := []domain.StockExit{}
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, apperror.NewGatewayError("Falha ao listar saídas", err)
		}
		exit, decodeErr := docToExit(snap)
		if decodeErr != nil {
			return nil, decodeErr
		}
		exits = append(exits, exit)
	}
	return exits, nil
}

// movementQuery monta a query comum de movimentações: filtro inclusivo de
// período sobre o campo "data" e ordenação por data decrescente.
func movementQuery(col *firestore.CollectionRef, dateRange domain.DateRange) firestore.Query {
	query := col.Query
	if dateRange.From != "" {
		query = query.Where("data", ">=", dateRange.From)
	}
	if dateRange.To != "" {
		query = query.Where("data", "<=", dateRange.To)
	}
	return query.OrderBy("data", firestore.Desc)
}

func docToEntry(snap *firestore.DocumentSnapshot) (domain.StockEntry, error) {
	var doc entryDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.StockEntry{}, apperror.NewGatewayError("Falha ao mapear documento de entrada", err)
	}
	return domain.StockEntry{
		ID:         snap.Ref.ID,
		Product:    doc.Product,
		Quantity:   doc.Quantity,
		UnitPrice:  doc.UnitPrice,
		Supplier:   doc.Supplier,
		InvoiceRef: doc.InvoiceRef,
		Date:       doc.Date,
		Notes:      doc.Notes,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

func docToExit(snap *firestore.DocumentSnapshot) (domain.StockExit, error) {
	var doc exitDoc
	if err := snap.DataTo(&doc); err != nil {
		return domain.StockExit{}, apperror.NewGatewayError("Falha ao mapear documento de saída", err)
	}
	return domain.StockExit{
		ID:        snap.Ref.ID,
		Product:   doc.Product,
		Quantity:  doc.Quantity,
		Kind:      domain.ExitKind(doc.Kind),
		Customer:  doc.Customer,
		UnitPrice: doc.UnitPrice,
		Date:      doc.Date,
		Notes:     doc.Notes,
		CreatedAt: doc.CreatedAt,
	}, nil
}
