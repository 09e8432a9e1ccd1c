package identity

import (
	"context"
	"fmt"
	"strings"

	"pet-grooming/internal/domain/tutors"
	"pet-grooming/internal/platform/httpclient"
	"pet-grooming/internal/platform/logger"
	"pet-grooming/internal/ports/auth"
	"pet-grooming/internal/ports/datastore"

	"golang.org/x/crypto/bcrypt"
)

const rpcGetMyRole = "get_my_role"

// Credentials ya validadas (email con forma correcta).
type Credentials struct {
	Role     auth.Role
	Email    string
	Password string
}

// Outcome es el resultado de una estrategia. El CSRF lo agrega el Service.
type Outcome struct {
	Session       auth.Session
	ProviderToken string
}

// TutorFinder es lo único que las estrategias necesitan del store de tutores.
type TutorFinder interface {
	FindByEmail(ctx context.Context, email string) (tutors.Tutor, bool, error)
}

// ProviderUnavailableError indica que la llamada al proveedor falló
// (red, credenciales, proveedor no configurado). El Service cae a LocalFallbackAuth.
type ProviderUnavailableError struct {
	Message string
	Err     error
}

func (e *ProviderUnavailableError) Error() string { return e.Message }
func (e *ProviderUnavailableError) Unwrap() error { return e.Err }

// -------------------------
// RemoteAuth
// -------------------------

type RemoteAuth struct {
	provider auth.IdentityProvider
	tutors   TutorFinder
	remote   datastore.RemoteStore
	log      logger.Logger
}

func NewRemoteAuth(provider auth.IdentityProvider, tutors TutorFinder, remote datastore.RemoteStore, log logger.Logger) *RemoteAuth {
	return &RemoteAuth{provider: provider, tutors: tutors, remote: remote, log: log}
}

func (a *RemoteAuth) Authenticate(ctx context.Context, c Credentials) (Outcome, error) {
	if a == nil || a.provider == nil {
		return Outcome{}, &ProviderUnavailableError{Message: "identity provider not configured", Err: ErrProvider}
	}

	ps, err := a.provider.SignInWithPassword(ctx, c.Email, c.Password)
	if err != nil {
		return Outcome{}, &ProviderUnavailableError{Message: httpclient.ProviderMessage(err), Err: err}
	}

	role := a.resolveRole(ctx, ps)
	if role != c.Role {
		// Nunca dejar viva una sesión del proveedor con rol equivocado.
		if err := a.provider.SignOut(ctx, ps.AccessToken); err != nil {
			a.log.Warn("provider sign-out after role mismatch failed", map[string]any{"err": err})
		}
		return Outcome{}, roleMismatch(c.Role)
	}

	email := ps.User.Email
	if email == "" {
		email = c.Email
	}

	known, found := a.findTutor(ctx, c.Email)

	sess := auth.Session{
		UserID: ps.User.ID,
		Email:  email,
		Role:   role,
	}
	switch role {
	case auth.RoleAdmin:
		sess.Name = firstNonEmpty(metaString(ps.User.UserMetadata, "name"), "Admin")
	case auth.RoleClient:
		name := metaString(ps.User.UserMetadata, "name")
		if name == "" && found {
			name = known.Name
		}
		sess.Name = firstNonEmpty(name, "Cliente")
		a.syncTutor(ctx, sess, known)
	}

	return Outcome{Session: sess, ProviderToken: ps.AccessToken}, nil
}

// resolveRole: RPC primero; si falla o viene vacío, app_metadata.role.
func (a *RemoteAuth) resolveRole(ctx context.Context, ps auth.ProviderSession) auth.Role {
	var rpcRole string
	if err := a.provider.RPC(ctx, ps.AccessToken, rpcGetMyRole, &rpcRole); err != nil {
		a.log.Debug("role rpc failed, using app_metadata", map[string]any{"err": err})
		rpcRole = ""
	}
	if r := strings.TrimSpace(rpcRole); r != "" {
		return auth.Role(r)
	}
	return auth.Role(metaString(ps.User.AppMetadata, "role"))
}

func (a *RemoteAuth) findTutor(ctx context.Context, email string) (tutors.Tutor, bool) {
	if a.tutors == nil {
		return tutors.Tutor{}, false
	}
	t, ok, err := a.tutors.FindByEmail(ctx, email)
	if err != nil {
		return tutors.Tutor{}, false
	}
	return t, ok
}

// syncTutor alinea la fila del tutor con el id del proveedor. Best-effort.
func (a *RemoteAuth) syncTutor(ctx context.Context, s auth.Session, known tutors.Tutor) {
	if a.remote == nil {
		return
	}
	err := a.remote.UpsertTutor(ctx, datastore.TutorRecord{
		ID:    s.UserID,
		Name:  s.Name,
		Email: s.Email,
		Phone: known.Phone,
	})
	if err != nil {
		a.log.Warn("tutor upsert failed", map[string]any{"user_id": s.UserID, "err": err})
	}
}

// -------------------------
// LocalFallbackAuth
// -------------------------

// LocalFallbackAuth es una conveniencia de desarrollo para cuando el proveedor no responde.
// Admin: un único par email/password. Cliente: cualquier tutor conocido por email
// con password de 6+ caracteres; el valor del password NO se verifica.
type LocalFallbackAuth struct {
	adminEmail string
	adminHash  []byte
	tutors     TutorFinder
}

const (
	fallbackAdminID   = "admin-1"
	fallbackAdminName = "Administrador"
	minClientPassword = 6
)

func NewLocalFallbackAuth(adminEmail, adminPassword string, tutors TutorFinder) (*LocalFallbackAuth, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &LocalFallbackAuth{
		adminEmail: strings.TrimSpace(adminEmail),
		adminHash:  hash,
		tutors:     tutors,
	}, nil
}

// Authenticate devuelve ok=false si las credenciales no aplican al fallback.
func (f *LocalFallbackAuth) Authenticate(ctx context.Context, c Credentials) (Outcome, bool) {
	if f == nil {
		return Outcome{}, false
	}

	switch c.Role {
	case auth.RoleAdmin:
		if c.Email != f.adminEmail {
			return Outcome{}, false
		}
		if bcrypt.CompareHashAndPassword(f.adminHash, []byte(c.Password)) != nil {
			return Outcome{}, false
		}
		return Outcome{Session: auth.Session{
			UserID: fallbackAdminID,
			Email:  c.Email,
			Name:   fallbackAdminName,
			Role:   auth.RoleAdmin,
		}}, true

	case auth.RoleClient:
		if f.tutors == nil || len(c.Password) < minClientPassword {
			return Outcome{}, false
		}
		t, ok, err := f.tutors.FindByEmail(ctx, c.Email)
		if err != nil || !ok {
			return Outcome{}, false
		}
		return Outcome{Session: auth.Session{
			UserID: t.ID,
			Email:  t.Email,
			Name:   t.Name,
			Role:   auth.RoleClient,
		}}, true
	}
	return Outcome{}, false
}

func metaString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
