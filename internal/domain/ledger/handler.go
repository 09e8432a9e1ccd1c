package ledger

import (
	"encoding/json"
	"net/http"

	"pet-grooming/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterClientRoutes se monta bajo /me.
func RegisterClientRoutes(r chi.Router, l *Ledger) {
	r.Get("/transactions", listMyTransactionsHandler(l))
}

type TransactionResponse struct {
	ID          string         `json:"id"`
	ReferenceID string         `json:"reference_id,omitempty"`
	UserID      string         `json:"user_id"`
	Type        string         `json:"type"`
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	Status      string         `json:"status"`
	CreatedAt   string         `json:"created_at"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// listMyTransactionsHandler godoc
// @Summary Transacciones del cliente (remoto primero, local como respaldo)
// @Tags client
// @Produce json
// @Success 200 {array} TransactionResponse
// @Router /me/transactions [get]
func listMyTransactionsHandler(l *Ledger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.GetSession(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := l.ListByUser(r.Context(), middleware.DeviceID(r.Context()), sess.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, ToResponses(items))
	}
}

func ToResponse(tx Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		ReferenceID: tx.ReferenceID,
		UserID:      tx.UserID,
		Type:        string(tx.Type),
		Amount:      tx.Amount,
		Currency:    tx.Currency,
		Status:      string(tx.Status),
		CreatedAt:   tx.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z"),
		Metadata:    tx.Metadata,
	}
}

func ToResponses(items []Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(items))
	for _, tx := range items {
		out = append(out, ToResponse(tx))
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
