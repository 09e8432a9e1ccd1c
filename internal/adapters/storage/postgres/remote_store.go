package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pet-grooming/internal/ports/datastore"
)

var ErrUnknownFunction = errors.New("unknown remote function")

// RemoteStore implementa datastore.RemoteStore directo contra Postgres.
// Invoke aplica el bundle en una sola transacción SQL.
type RemoteStore struct {
	db *sql.DB
}

func NewRemoteStore(db *sql.DB) *RemoteStore {
	return &RemoteStore{db: db}
}

var _ datastore.RemoteStore = (*RemoteStore)(nil)

func (r *RemoteStore) Invoke(ctx context.Context, name string, in any, out any) error {
	if name != datastore.FuncCreateAppointmentTransaction {
		return fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}

	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	var bundle datastore.AppointmentBundle
	if err := json.Unmarshal(b, &bundle); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if bundle.Tutor != nil {
		if err := upsertTutor(ctx, tx, *bundle.Tutor); err != nil {
			return err
		}
	}
	if bundle.Pet != nil {
		p := bundle.Pet
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pets (id, name, species, breed, birth_date, tutor_id, photo_url, notes)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, p.ID, p.Name, p.Species, p.Breed, toNullString(p.BirthDate), p.TutorID, p.PhotoURL, p.Notes); err != nil {
			return fmt.Errorf("insert pet: %w", err)
		}
	}
	if bundle.Appointment != nil {
		a := bundle.Appointment
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO appointments (id, pet_id, tutor_id, service_id, date_time, status, notes, created_at, updated_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`, a.ID, a.PetID, a.TutorID, a.ServiceID, a.DateTime.UTC(), a.Status, a.Notes, a.CreatedAt.UTC(), a.UpdatedAt.UTC()); err != nil {
			return fmt.Errorf("insert appointment: %w", err)
		}
	}
	if bundle.Transaction != nil {
		if err := insertTransaction(ctx, tx, *bundle.Transaction); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// execer es lo común entre *sql.DB y *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *RemoteStore) UpsertTutor(ctx context.Context, t datastore.TutorRecord) error {
	return upsertTutor(ctx, r.db, t)
}

func upsertTutor(ctx context.Context, ex execer, t datastore.TutorRecord) error {
	_, err := ex.ExecContext(ctx, `
		INSERT INTO tutors (id, name, email, phone)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, email = EXCLUDED.email, phone = EXCLUDED.phone
	`, t.ID, t.Name, t.Email, t.Phone)
	if err != nil {
		return fmt.Errorf("upsert tutor: %w", err)
	}
	return nil
}

func (r *RemoteStore) InsertTransaction(ctx context.Context, tx datastore.TransactionRecord) error {
	return insertTransaction(ctx, r.db, tx)
}

func insertTransaction(ctx context.Context, ex execer, t datastore.TransactionRecord) error {
	meta, err := encodeMetadata(t.Metadata)
	if err != nil {
		return err
	}
	var updated *time.Time
	if t.UpdatedAt != nil {
		u := t.UpdatedAt.UTC()
		updated = &u
	}
	_, err = ex.ExecContext(ctx, `
		INSERT INTO transactions (id, reference_id, user_id, type, amount, currency, status, created_at, updated_at, metadata)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`, t.ID, t.ReferenceID, t.UserID, t.Type, t.Amount, t.Currency, t.Status, t.CreatedAt.UTC(), updated, meta)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func (r *RemoteStore) ListAppointmentsByTutor(ctx context.Context, tutorID string) ([]datastore.AppointmentRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, pet_id, tutor_id, service_id, date_time, status, notes, created_at, updated_at
		FROM appointments
		WHERE tutor_id = $1
		ORDER BY date_time ASC
	`, tutorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]datastore.AppointmentRecord, 0)
	for rows.Next() {
		var a datastore.AppointmentRecord
		if err := rows.Scan(&a.ID, &a.PetID, &a.TutorID, &a.ServiceID, &a.DateTime, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.DateTime, a.CreatedAt, a.UpdatedAt = a.DateTime.UTC(), a.CreatedAt.UTC(), a.UpdatedAt.UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *RemoteStore) ListTransactionsByUser(ctx context.Context, userID string) ([]datastore.TransactionRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, reference_id, user_id, type, amount::float8, currency, status, created_at, updated_at, metadata
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]datastore.TransactionRecord, 0)
	for rows.Next() {
		var (
			t       datastore.TransactionRecord
			updated sql.NullTime
			meta    []byte
		)
		if err := rows.Scan(&t.ID, &t.ReferenceID, &t.UserID, &t.Type, &t.Amount, &t.Currency, &t.Status, &t.CreatedAt, &updated, &meta); err != nil {
			return nil, err
		}
		t.CreatedAt = t.CreatedAt.UTC()
		if updated.Valid {
			u := updated.Time.UTC()
			t.UpdatedAt = &u
		}
		if t.Metadata, err = decodeMetadata(meta); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func toNullString(s *string) sql.NullString {
	if s == nil || *s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func encodeMetadata(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	return string(b), nil
}

func decodeMetadata(b []byte) (map[string]any, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}
