package firestorerepo

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"petbela/internal/domain"
	apperror "petbela/internal/errors"
	"petbela/internal/pkg/logger"
)

// userDoc é o documento de operador na coleção "usuarios".
type userDoc struct {
	Email        string    `firestore:"email"`
	PasswordHash string    `firestore:"passwordHash"`
	Role         string    `firestore:"role"`
	CreatedAt    time.Time `firestore:"createdAt,serverTimestamp"`
	UpdatedAt    time.Time `firestore:"updatedAt,serverTimestamp"`
}

// UserRepositoryFS implementa domain.UserRepository sobre o Firestore.
type UserRepositoryFS struct {
	Client *firestore.Client
	logger logger.Logger
}

// NewUserRepositoryFS cria o repositório de operadores do backend Firestore.
func NewUserRepositoryFS(client *firestore.Client, log logger.Logger) *UserRepositoryFS {
	return &UserRepositoryFS{Client: client, logger: log}
}

func (r *UserRepositoryFS) col() *firestore.CollectionRef {
	return r.Client.Collection("usuarios")
}

// Save insere um novo operador.
func (r *UserRepositoryFS) Save(ctx context.Context, user domain.User) (domain.User, error) {
	docRef := r.col().NewDoc()
	user.ID = docRef.ID

	doc := userDoc{
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         string(user.Role),
	}
	if _, err := docRef.Create(ctx, doc); err != nil {
		return domain.User{}, apperror.NewGatewayError("Falha ao inserir usuário", err)
	}

	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	return user, nil
}

// FindByEmail busca um operador pelo endereço de e-mail.
func (r *UserRepositoryFS) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	iter := r.col().Where("email", "==", email).Limit(1).Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return domain.User{}, apperror.NewNotFoundError(fmt.Sprintf("Usuário com email %s não encontrado.", email))
	}
	if err != nil {
		return domain.User{}, apperror.NewGatewayError("Falha ao buscar usuário", err)
	}

	var doc userDoc
	if decodeErr := snap.DataTo(&doc); decodeErr != nil {
		return domain.User{}, apperror.NewGatewayError("Falha ao mapear documento de usuário", decodeErr)
	}

	return domain.User{
		ID:           snap.Ref.ID,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         domain.UserRole(doc.Role),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}
