package memory

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"pet-grooming/internal/ports/datastore"
)

// Invocation registra una llamada a Invoke (útil en tests).
type Invocation struct {
	Name    string
	Payload []byte
}

// RemoteStore simula el almacén remoto en proceso. Para dev y tests.
// Fail fuerza que todas las operaciones devuelvan ese error.
type RemoteStore struct {
	mu sync.Mutex

	Fail error

	invocations  []Invocation
	tutors       map[string]datastore.TutorRecord
	appointments []datastore.AppointmentRecord
	transactions []datastore.TransactionRecord
}

func NewRemoteStore() *RemoteStore {
	return &RemoteStore{tutors: make(map[string]datastore.TutorRecord)}
}

var _ datastore.RemoteStore = (*RemoteStore)(nil)

func (r *RemoteStore) SetFail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Fail = err
}

// Invoke acepta FuncCreateAppointmentTransaction y aplica el bundle.
func (r *RemoteStore) Invoke(ctx context.Context, name string, in any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.invocations = append(r.invocations, Invocation{Name: name, Payload: b})
	if r.Fail != nil {
		return r.Fail
	}
	if name != datastore.FuncCreateAppointmentTransaction {
		return errors.New("unknown function: " + name)
	}

	var bundle datastore.AppointmentBundle
	if err := json.Unmarshal(b, &bundle); err != nil {
		return err
	}
	if bundle.Tutor != nil {
		r.tutors[bundle.Tutor.ID] = *bundle.Tutor
	}
	if bundle.Appointment != nil {
		r.appointments = append(r.appointments, *bundle.Appointment)
	}
	if bundle.Transaction != nil {
		r.transactions = append(r.transactions, *bundle.Transaction)
	}
	return nil
}

func (r *RemoteStore) UpsertTutor(ctx context.Context, t datastore.TutorRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	r.tutors[t.ID] = t
	return nil
}

func (r *RemoteStore) InsertTransaction(ctx context.Context, tx datastore.TransactionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return r.Fail
	}
	r.transactions = append(r.transactions, tx)
	return nil
}

func (r *RemoteStore) ListAppointmentsByTutor(ctx context.Context, tutorID string) ([]datastore.AppointmentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return nil, r.Fail
	}
	out := make([]datastore.AppointmentRecord, 0)
	for _, a := range r.appointments {
		if a.TutorID == tutorID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out, nil
}

func (r *RemoteStore) ListTransactionsByUser(ctx context.Context, userID string) ([]datastore.TransactionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Fail != nil {
		return nil, r.Fail
	}
	out := make([]datastore.TransactionRecord, 0)
	for _, tx := range r.transactions {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (r *RemoteStore) Invocations() []Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Invocation(nil), r.invocations...)
}

func (r *RemoteStore) Tutor(id string) (datastore.TutorRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tutors[id]
	return t, ok
}
