package identity

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"pet-grooming/internal/platform/logger"
	"pet-grooming/internal/platform/sanitize"
	"pet-grooming/internal/ports/auth"
	"pet-grooming/internal/ports/datastore"
	"pet-grooming/internal/ports/kv"
)

// Claves fijas en el almacenamiento efímero de la pestaña.
const (
	KeySession       = "session"
	KeyCSRFToken     = "csrfToken"
	KeyProviderToken = "provider_token"
)

type Options struct {
	Provider auth.IdentityProvider // nil => solo fallback local
	Tutors   TutorFinder
	Remote   datastore.RemoteStore // opcional, para el upsert del tutor

	KV  kv.Store
	Log logger.Logger

	AdminEmail    string
	AdminPassword string
}

type Service struct {
	remote   *RemoteAuth
	fallback *LocalFallbackAuth
	provider auth.IdentityProvider
	kv       kv.Store
	log      logger.Logger

	randUint32 func() (uint32, error)
}

func NewService(opts Options) (*Service, error) {
	if opts.KV == nil {
		return nil, errors.New("identity: kv store required")
	}
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}

	fallback, err := NewLocalFallbackAuth(opts.AdminEmail, opts.AdminPassword, opts.Tutors)
	if err != nil {
		return nil, err
	}

	var remote *RemoteAuth
	if opts.Provider != nil {
		remote = NewRemoteAuth(opts.Provider, opts.Tutors, opts.Remote, log)
	}

	return &Service{
		remote:     remote,
		fallback:   fallback,
		provider:   opts.Provider,
		kv:         opts.KV,
		log:        log,
		randUint32: cryptoUint32,
	}, nil
}

// Authenticate intenta el proveedor y, si la llamada falla, el fallback local.
// Un rol distinto al pedido NO cae al fallback: es un rechazo explícito.
func (s *Service) Authenticate(ctx context.Context, tabID string, role auth.Role, email, password string) (auth.Session, error) {
	email = strings.TrimSpace(email)
	if !role.Valid() {
		return auth.Session{}, fmt.Errorf("%w: role must be admin or client", ErrValidation)
	}
	if !sanitize.IsValidEmail(email) {
		return auth.Session{}, fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if password == "" {
		return auth.Session{}, fmt.Errorf("%w: password required", ErrValidation)
	}

	creds := Credentials{Role: role, Email: email, Password: password}

	out, err := s.remote.Authenticate(ctx, creds)
	if err != nil {
		var pu *ProviderUnavailableError
		if !errors.As(err, &pu) {
			return auth.Session{}, err
		}

		fb, ok := s.fallback.Authenticate(ctx, creds)
		if !ok {
			return auth.Session{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, pu.Message)
		}
		s.log.Info("login via local fallback", map[string]any{"role": string(role), "provider_err": pu.Message})
		out = fb
	}

	csrf, _, err := s.kv.Get(ctx, kv.TabScope(tabID), KeyCSRFToken)
	if err != nil {
		s.revoke(ctx, out.ProviderToken)
		return auth.Session{}, fmt.Errorf("read csrf token: %w", err)
	}
	out.Session.CSRFToken = csrf

	if err := s.save(ctx, tabID, out); err != nil {
		s.revoke(ctx, out.ProviderToken)
		return auth.Session{}, err
	}
	return out.Session, nil
}

// revoke cierra la sesión del proveedor cuando el login local no se completó.
func (s *Service) revoke(ctx context.Context, token string) {
	if s.provider == nil || token == "" {
		return
	}
	if err := s.provider.SignOut(ctx, token); err != nil {
		s.log.Warn("provider sign-out after failed login", map[string]any{"err": err})
	}
}

func (s *Service) save(ctx context.Context, tabID string, out Outcome) error {
	scope := kv.TabScope(tabID)

	b, err := json.Marshal(out.Session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Set(ctx, scope, KeySession, string(b)); err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	if out.ProviderToken == "" {
		return s.kv.Delete(ctx, scope, KeyProviderToken)
	}
	return s.kv.Set(ctx, scope, KeyProviderToken, out.ProviderToken)
}

// Logout borra primero el estado local; el sign-out remoto es best-effort.
func (s *Service) Logout(ctx context.Context, tabID string) error {
	scope := kv.TabScope(tabID)

	token, _, err := s.kv.Get(ctx, scope, KeyProviderToken)
	if err != nil {
		s.log.Warn("read provider token failed", map[string]any{"err": err})
	}

	if err := s.kv.Delete(ctx, scope, KeySession); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if err := s.kv.Delete(ctx, scope, KeyProviderToken); err != nil {
		s.log.Warn("clear provider token failed", map[string]any{"err": err})
	}

	if s.provider != nil && token != "" {
		if err := s.provider.SignOut(ctx, token); err != nil {
			s.log.Warn("provider sign-out failed", map[string]any{"err": err})
		}
	}
	return nil
}

// Restore relee la sesión de la pestaña. Una entrada corrupta cuenta como ausente.
func (s *Service) Restore(ctx context.Context, tabID string) (auth.Session, bool, error) {
	raw, ok, err := s.kv.Get(ctx, kv.TabScope(tabID), KeySession)
	if err != nil || !ok {
		return auth.Session{}, false, err
	}

	var sess auth.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || !sess.Role.Valid() {
		s.log.Warn("discarding unreadable session", map[string]any{"err": err})
		return auth.Session{}, false, nil
	}
	return sess, true, nil
}

// EnsureCSRFToken genera el token una sola vez por pestaña.
func (s *Service) EnsureCSRFToken(ctx context.Context, tabID string) (string, error) {
	scope := kv.TabScope(tabID)

	if v, ok, err := s.kv.Get(ctx, scope, KeyCSRFToken); err != nil {
		return "", err
	} else if ok && v != "" {
		return v, nil
	}

	parts := make([]string, 4)
	for i := range parts {
		n, err := s.randUint32()
		if err != nil {
			return "", fmt.Errorf("csrf token: %w", err)
		}
		parts[i] = strconv.FormatUint(uint64(n), 10)
	}
	token := strings.Join(parts, "-")

	if err := s.kv.Set(ctx, scope, KeyCSRFToken, token); err != nil {
		return "", err
	}
	return token, nil
}

// HomeRoute decide el área según el rol persistido.
func HomeRoute(s auth.Session) string {
	if s.Role == auth.RoleAdmin {
		return "/admin"
	}
	return "/client"
}

func cryptoUint32() (uint32, error) {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}
