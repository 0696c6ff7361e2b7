package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/receipta/internal/core/domain"
	"github.com/custodia-labs/receipta/internal/logger"
)

type productJSON struct {
	Label        string `json:"label"`
	Key          string `json:"key"`
	Purchases    int    `json:"purchases"`
	LowestPrice  string `json:"lowest_price"`
	HighestPrice string `json:"highest_price"`
}

type historyJSON struct {
	Date        string `json:"date"`
	Merchant    string `json:"merchant"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	ReceiptID   string `json:"receipt_id"`
}

type categoryTotalJSON struct {
	Category     string `json:"category"`
	TotalSpent   string `json:"total_spent"`
	ReceiptCount int    `json:"receipt_count"`
}

type summaryJSON struct {
	TotalSpent   string              `json:"total_spent"`
	ReceiptCount int                 `json:"receipt_count"`
	Categories   []categoryTotalJSON `json:"categories"`
	Achievements []achievementJSON   `json:"achievements"`
	GeneratedAt  string              `json:"generated_at"`
}

type achievementJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Threshold   int    `json:"threshold"`
	Unlocked    bool   `json:"unlocked"`
}

type itemJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
}

type receiptJSON struct {
	ID       string     `json:"id"`
	Merchant string     `json:"merchant"`
	Date     string     `json:"date"`
	Time     string     `json:"time,omitempty"`
	Category string     `json:"category"`
	VAT      string     `json:"vat"`
	Total    string     `json:"total"`
	Shared   bool       `json:"shared"`
	Items    []itemJSON `json:"items"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := s.ports.Analysis.Categories(r.Context(), s.ports.UserID)
	if err != nil {
		writeError(w, err)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

func (s *Server) handleProducts(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeError(w, errMissingParam("category"))
		return
	}

	products, err := s.ports.Analysis.Products(r.Context(), s.ports.UserID, category)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]productJSON, len(products))
	for i, p := range products {
		out[i] = productJSON{
			Label:        p.Label,
			Key:          p.NormalizedKey,
			Purchases:    p.Purchases,
			LowestPrice:  p.LowestPrice.StringFixed(2),
			HighestPrice: p.HighestPrice.StringFixed(2),
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category, label := q.Get("category"), q.Get("label")
	if category == "" {
		writeError(w, errMissingParam("category"))
		return
	}
	if label == "" {
		writeError(w, errMissingParam("label"))
		return
	}

	entries, err := s.ports.Analysis.History(r.Context(), s.ports.UserID, category, label)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]historyJSON, len(entries))
	for i, e := range entries {
		out[i] = historyJSON{
			Date:        e.Date,
			Merchant:    e.MerchantName,
			Description: e.Description,
			Quantity:    e.Quantity.String(),
			UnitPrice:   e.UnitPrice.StringFixed(2),
			ReceiptID:   e.ReceiptID,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.ports.Analysis.Summary(r.Context(), s.ports.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := summaryJSON{
		TotalSpent:   summary.TotalSpent.StringFixed(2),
		ReceiptCount: summary.ReceiptCount,
		Categories:   make([]categoryTotalJSON, len(summary.Categories)),
		Achievements: make([]achievementJSON, len(summary.Achievements)),
		GeneratedAt:  summary.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"),
	}
	for i, a := range summary.Achievements {
		out.Achievements[i] = achievementJSON(a)
	}
	for i, c := range summary.Categories {
		out.Categories[i] = categoryTotalJSON{
			Category:     c.Category,
			TotalSpent:   c.TotalSpent.StringFixed(2),
			ReceiptCount: c.ReceiptCount,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReceipts(w http.ResponseWriter, r *http.Request) {
	if s.ports.Receipt == nil {
		writeError(w, domain.ErrNotImplemented)
		return
	}

	receipts, err := s.ports.Receipt.List(r.Context(), s.ports.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]receiptJSON, len(receipts))
	for i := range receipts {
		out[i] = toReceiptJSON(&receipts[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	if s.ports.Receipt == nil {
		writeError(w, domain.ErrNotImplemented)
		return
	}

	receipt, err := s.ports.Receipt.Get(r.Context(), s.ports.UserID, r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReceiptJSON(receipt))
}

// handleShared serves a receipt to anyone holding its share ID.
func (s *Server) handleShared(w http.ResponseWriter, r *http.Request) {
	if s.ports.Receipt == nil {
		writeError(w, domain.ErrNotImplemented)
		return
	}

	receipt, err := s.ports.Receipt.GetShared(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toReceiptJSON(receipt))
}

func toReceiptJSON(r *domain.Receipt) receiptJSON {
	out := receiptJSON{
		ID:       r.ID,
		Merchant: r.MerchantName,
		Date:     r.TransactionDate,
		Time:     r.TransactionTime,
		Category: r.Category,
		VAT:      r.TotalVAT.StringFixed(2),
		Total:    r.TotalAmount.StringFixed(2),
		Shared:   r.IsShared,
		Items:    make([]itemJSON, len(r.Items)),
	}
	for i, item := range r.Items {
		out.Items[i] = itemJSON{
			ID:          item.ID,
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			UnitPrice:   item.UnitPrice.StringFixed(2),
		}
	}
	return out
}

// ==================== Responses ====================

type errorJSON struct {
	Error string `json:"error"`
}

func errMissingParam(name string) error {
	return &paramError{name: name}
}

type paramError struct {
	name string
}

func (e *paramError) Error() string {
	return "missing query parameter: " + e.name
}

func (e *paramError) Unwrap() error {
	return domain.ErrInvalidInput
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrEmptyCategory):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotImplemented):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("HTTP API: %v", err)
	}
	writeJSON(w, status, errorJSON{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("HTTP API: encode response: %v", err)
	}
}
