package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-grooming/internal/platform/httpclient"
	"pet-grooming/internal/ports/datastore"
)

var ErrUpstream = errors.New("supabase datastore upstream error")

const (
	tableTutors       = "tutors"
	tableAppointments = "appointments"
	tableTransactions = "transactions"
)

type Config struct {
	URL       string
	AnonKey   string
	Timeout   time.Duration
	Transport http.RoundTripper
}

// Store implementa datastore.RemoteStore con PostgREST (/rest/v1) y
// edge functions (/functions/v1). Usa la anon key: las políticas RLS deciden.
type Store struct {
	anonKey string
	http    *httpclient.Client
}

var _ datastore.RemoteStore = (*Store)(nil)

func NewStore(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.URL) == "" || strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, datastore.ErrNotConfigured
	}
	if _, err := url.ParseRequestURI(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid supabase url: %w", err)
	}

	hc := httpclient.NewWithTransport(cfg.Timeout, cfg.Transport)
	hc.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	return &Store{anonKey: strings.TrimSpace(cfg.AnonKey), http: hc}, nil
}

// Invoke llama a la edge function name con in como body JSON.
func (s *Store) Invoke(ctx context.Context, name string, in any, out any) error {
	path := "/functions/v1/" + url.PathEscape(name)
	if err := s.http.DoJSON(ctx, http.MethodPost, path, s.headers(nil), in, out); err != nil {
		return fmt.Errorf("%w: invoke %s: %w", ErrUpstream, name, err)
	}
	return nil
}

func (s *Store) UpsertTutor(ctx context.Context, t datastore.TutorRecord) error {
	h := s.headers(map[string]string{"Prefer": "resolution=merge-duplicates,return=minimal"})
	if err := s.http.DoJSON(ctx, http.MethodPost, "/rest/v1/"+tableTutors+"?on_conflict=id", h, []datastore.TutorRecord{t}, nil); err != nil {
		return fmt.Errorf("%w: upsert tutor: %w", ErrUpstream, err)
	}
	return nil
}

func (s *Store) InsertTransaction(ctx context.Context, tx datastore.TransactionRecord) error {
	h := s.headers(map[string]string{"Prefer": "return=minimal"})
	if err := s.http.DoJSON(ctx, http.MethodPost, "/rest/v1/"+tableTransactions, h, []datastore.TransactionRecord{tx}, nil); err != nil {
		return fmt.Errorf("%w: insert transaction: %w", ErrUpstream, err)
	}
	return nil
}

func (s *Store) ListAppointmentsByTutor(ctx context.Context, tutorID string) ([]datastore.AppointmentRecord, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("tutor_id", "eq."+tutorID)
	q.Set("order", "date_time.asc")

	var out []datastore.AppointmentRecord
	if err := s.http.DoJSON(ctx, http.MethodGet, "/rest/v1/"+tableAppointments+"?"+q.Encode(), s.headers(nil), nil, &out); err != nil {
		return nil, fmt.Errorf("%w: list appointments: %w", ErrUpstream, err)
	}
	return out, nil
}

func (s *Store) ListTransactionsByUser(ctx context.Context, userID string) ([]datastore.TransactionRecord, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("user_id", "eq."+userID)
	q.Set("order", "created_at.desc")

	var out []datastore.TransactionRecord
	if err := s.http.DoJSON(ctx, http.MethodGet, "/rest/v1/"+tableTransactions+"?"+q.Encode(), s.headers(nil), nil, &out); err != nil {
		return nil, fmt.Errorf("%w: list transactions: %w", ErrUpstream, err)
	}
	return out, nil
}

func (s *Store) headers(extra map[string]string) map[string]string {
	h := map[string]string{
		"apikey":        s.anonKey,
		"Authorization": "Bearer " + s.anonKey,
	}
	for k, v := range extra {
		h[k] = v
	}
	return h
}
