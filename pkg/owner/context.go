package owner

import (
	"context"
)

type contextKey string

const principalKey contextKey = "owner_principal"

// Principal identifica o dono autenticado dos dados. O ID é imutável e é a
// chave de particionamento de todas as tabelas; o e-mail acompanha apenas
// para exibição e envio de notificações.
type Principal struct {
	ID    string
	Email string
}

// SetContext armazena o principal no contexto da requisição
func SetContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// FromContext obtém o principal do contexto
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// FromGin obtém o principal de um contexto do Gin
func FromGin(c interface{ GetString(string) string }) Principal {
	return Principal{
		ID:    c.GetString("owner_id"),
		Email: c.GetString("owner_email"),
	}
}
