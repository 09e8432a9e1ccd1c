package auth

import "context"

// ProviderUser es el usuario tal como lo devuelve el proveedor de identidad.
type ProviderUser struct {
	ID           string
	Email        string
	AppMetadata  map[string]any
	UserMetadata map[string]any
}

type ProviderSession struct {
	AccessToken string
	User        ProviderUser
}

// IdentityProvider abstrae el servicio externo de identidad.
// RPC invoca una función remota con el token del usuario y decodifica en out.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (ProviderSession, error)
	RPC(ctx context.Context, accessToken, name string, out any) error
	SignOut(ctx context.Context, accessToken string) error
}
