// Package firestoreinfra encapsula a criação do cliente Firestore usado pelo
// gateway de persistência alternativo (STORE_BACKEND=firestore).
package firestoreinfra

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

// ClientWrapper envolve o cliente Firestore e sua configuração.
type ClientWrapper struct {
	Client    *firestore.Client
	ProjectID string
}

// NewClient inicializa o cliente Firestore.
// Se credentialsFile for vazio, usa ADC (Application Default Credentials).
func NewClient(ctx context.Context, projectID string, credentialsFile string) (*ClientWrapper, error) {
	var (
		client *firestore.Client
		err    error
	)
	if credentialsFile != "" {
		client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao criar cliente Firestore: %w", err)
	}

	return &ClientWrapper{Client: client, ProjectID: projectID}, nil
}

// Ping testa a conexão com o Firestore.
// O Firestore não tem API de Ping: tentamos uma leitura simples.
func (cw *ClientWrapper) Ping(ctx context.Context) error {
	if cw == nil || cw.Client == nil {
		return fmt.Errorf("cliente Firestore é nil")
	}
	if _, err := cw.Client.Collections(ctx).GetAll(); err != nil {
		return fmt.Errorf("ping ao Firestore falhou: %w", err)
	}
	return nil
}

// Close encerra o cliente Firestore.
func (cw *ClientWrapper) Close() error {
	if cw == nil || cw.Client == nil {
		return nil
	}
	return cw.Client.Close()
}
