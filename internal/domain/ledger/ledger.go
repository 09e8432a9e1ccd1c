package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"pet-grooming/internal/platform/logger"
	"pet-grooming/internal/ports/datastore"
	"pet-grooming/internal/ports/kv"

	"github.com/google/uuid"
)

// KeyTransactions es la clave de la lista local en el almacenamiento durable del dispositivo.
const KeyTransactions = "transactions"

// Ledger escribe en dos destinos independientes: la lista local del dispositivo
// y el almacén remoto. No se reconcilian entre sí.
type Ledger struct {
	kv     kv.Store
	remote datastore.RemoteStore // nil => solo local
	log    logger.Logger

	// serializa el read-modify-write de la lista local
	mu sync.Mutex
}

func New(store kv.Store, remote datastore.RemoteStore, log logger.Logger) *Ledger {
	if log == nil {
		log = logger.NewNop()
	}
	return &Ledger{kv: store, remote: remote, log: log}
}

func NewTransactionID() string {
	return "tx_" + uuid.NewString()
}

// Record agrega a la lista local y después intenta el insert remoto.
// El fallo remoto solo se loguea.
func (l *Ledger) Record(ctx context.Context, deviceID string, tx Transaction) error {
	if err := l.appendLocal(ctx, kv.DeviceScope(deviceID), tx); err != nil {
		return err
	}

	if l.remote != nil {
		if err := l.remote.InsertTransaction(ctx, ToRecord(tx)); err != nil {
			l.log.Warn("remote transaction insert failed", map[string]any{"tx_id": tx.ID, "err": err})
		}
	}
	return nil
}

func (l *Ledger) appendLocal(ctx context.Context, scope kv.Scope, tx Transaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	list, err := l.readLocal(ctx, scope)
	if err != nil {
		return err
	}
	list = append(list, ToRecord(tx))

	b, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	if err := l.kv.Set(ctx, scope, KeyTransactions, string(b)); err != nil {
		return fmt.Errorf("store transactions: %w", err)
	}
	return nil
}

func (l *Ledger) readLocal(ctx context.Context, scope kv.Scope) ([]datastore.TransactionRecord, error) {
	raw, ok, err := l.kv.Get(ctx, scope, KeyTransactions)
	if err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var list []datastore.TransactionRecord
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		// Lista corrupta: se empieza de nuevo antes que bloquear pagos.
		l.log.Warn("discarding unreadable local transactions", map[string]any{"err": err})
		return nil, nil
	}
	return list, nil
}

// List devuelve la lista local del dispositivo, en orden de inserción.
func (l *Ledger) List(ctx context.Context, deviceID string) ([]Transaction, error) {
	recs, err := l.readLocal(ctx, kv.DeviceScope(deviceID))
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, 0, len(recs))
	for _, r := range recs {
		out = append(out, FromRecord(r))
	}
	return out, nil
}

// ListByUser prefiere el remoto; si falla (o no hay remoto) filtra la lista local.
// El resultado va del más nuevo al más viejo.
func (l *Ledger) ListByUser(ctx context.Context, deviceID, userID string) ([]Transaction, error) {
	if l.remote != nil {
		recs, err := l.remote.ListTransactionsByUser(ctx, userID)
		if err == nil {
			out := make([]Transaction, 0, len(recs))
			for _, r := range recs {
				out = append(out, FromRecord(r))
			}
			sortNewestFirst(out)
			return out, nil
		}
		l.log.Warn("remote transactions read failed, using local", map[string]any{"user_id": userID, "err": err})
	}

	all, err := l.List(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	out := make([]Transaction, 0, len(all))
	for _, tx := range all {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

// CurrentPlan es la suscripción más reciente del usuario, si hay.
func CurrentPlan(txs []Transaction) (Transaction, bool) {
	var (
		best  Transaction
		found bool
	)
	for _, tx := range txs {
		if tx.Type != TypeSubscription {
			continue
		}
		if !found || tx.CreatedAt.After(best.CreatedAt) {
			best, found = tx, true
		}
	}
	return best, found
}

func sortNewestFirst(items []Transaction) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

func ToRecord(tx Transaction) datastore.TransactionRecord {
	return datastore.TransactionRecord{
		ID:          tx.ID,
		ReferenceID: tx.ReferenceID,
		UserID:      tx.UserID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Status:      string(tx.Status),
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
		Metadata:    tx.Metadata,
	}
}

func FromRecord(r datastore.TransactionRecord) Transaction {
	return Transaction{
		ID:          r.ID,
		ReferenceID: r.ReferenceID,
		UserID:      r.UserID,
		Type:        Type(r.Type),
		Amount:      r.Amount,
		Currency:    r.Currency,
		Status:      Status(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
		Metadata:    r.Metadata,
	}
}
