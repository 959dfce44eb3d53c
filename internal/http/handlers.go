package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"gastos/internal/core"
	"gastos/internal/ledger"
	"gastos/internal/report"
)

type recordDTO struct {
	ID            string `json:"id"`
	Category      string `json:"category"`
	Emoji         string `json:"emoji"`
	SubCategory   string `json:"sub_category,omitempty"`
	Amount        string `json:"amount"`
	AmountCents   int64  `json:"amount_cents"`
	Payer         string `json:"payer"`
	PaymentMethod string `json:"payment_method"`
	Date          string `json:"date,omitempty"`
}

func toDTO(r core.ExpenseRecord) recordDTO {
	d := recordDTO{
		ID:            r.ID,
		Category:      string(r.Category),
		Emoji:         r.Category.Emoji(),
		SubCategory:   r.SubCategory,
		Amount:        r.Amount.String(),
		AmountCents:   r.Amount.Cents,
		Payer:         string(r.Payer),
		PaymentMethod: string(r.PaymentMethod),
	}
	if r.HasDate() {
		d.Date = r.Date.Format(time.RFC3339)
	}
	return d
}

func toDTOs(rs []core.ExpenseRecord) []recordDTO {
	out := make([]recordDTO, len(rs))
	for i, r := range rs {
		out[i] = toDTO(r)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var status int
	switch {
	case errors.Is(err, core.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrPersistence):
		status = http.StatusInternalServerError
	case errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrInvalidPayer),
		errors.Is(err, core.ErrInvalidPaymentMethod),
		errors.Is(err, core.ErrInvalidInstallmentCount):
		status = http.StatusUnprocessableEntity
	default:
		status = http.StatusBadRequest
	}
	if status >= 500 {
		slog.ErrorContext(r.Context(), "Request failed",
			"path", r.URL.Path,
			"error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type categoryDTO struct {
	Name          string   `json:"name"`
	Emoji         string   `json:"emoji"`
	SubCategories []string `json:"sub_categories,omitempty"`
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	cats := make([]categoryDTO, 0, len(core.Categories))
	for _, c := range core.Categories {
		cats = append(cats, categoryDTO{
			Name:          string(c),
			Emoji:         c.Emoji(),
			SubCategories: core.SubCategorySuggestions(c),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories":      cats,
		"payers":          core.Payers,
		"payment_methods": core.PaymentMethods,
	})
}

type createExpenseRequest struct {
	Category      string `json:"category"`
	SubCategory   string `json:"sub_category"`
	Amount        string `json:"amount"`
	Payer         string `json:"payer"`
	PaymentMethod string `json:"payment_method"`
	Month         *int   `json:"month"`
	Year          *int   `json:"year"`
}

func (req createExpenseRequest) toInput() (ledger.ExpenseInput, error) {
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return ledger.ExpenseInput{}, err
	}
	in := ledger.ExpenseInput{
		Category:      core.Category(strings.TrimSpace(req.Category)),
		SubCategory:   strings.TrimSpace(req.SubCategory),
		Amount:        core.Money{Cents: cents},
		Payer:         core.Payer(strings.TrimSpace(req.Payer)),
		PaymentMethod: core.PaymentMethod(strings.TrimSpace(req.PaymentMethod)),
	}
	if req.Month != nil && req.Year != nil {
		in.Target = &core.MonthYear{Month: *req.Month, Year: *req.Year}
	} else if req.Month != nil || req.Year != nil {
		return ledger.ExpenseInput{}, fmt.Errorf("month and year must be provided together")
	}
	return in, nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("decode request: %w", err))
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := s.svc.CreateExpense(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDTO(rec))
}

type createInstallmentsRequest struct {
	Category      string `json:"category"`
	SubCategory   string `json:"sub_category"`
	Total         string `json:"total"`
	Payer         string `json:"payer"`
	PaymentMethod string `json:"payment_method"`
	Installments  int    `json:"installments"`
	Month         *int   `json:"month"`
	Year          *int   `json:"year"`
}

func (s *Server) handleCreateInstallments(w http.ResponseWriter, r *http.Request) {
	var req createInstallmentsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("decode request: %w", err))
		return
	}
	if req.Month == nil || req.Year == nil {
		writeError(w, r, fmt.Errorf("month and year are required"))
		return
	}
	cents, err := core.ParseDecimalToCents(req.Total)
	if err != nil {
		writeError(w, r, err)
		return
	}
	recs, err := s.svc.CreateInstallments(r.Context(), ledger.InstallmentInput{
		Category:      core.Category(strings.TrimSpace(req.Category)),
		SubCategory:   strings.TrimSpace(req.SubCategory),
		Total:         core.Money{Cents: cents},
		Payer:         core.Payer(strings.TrimSpace(req.Payer)),
		PaymentMethod: core.PaymentMethod(strings.TrimSpace(req.PaymentMethod)),
		Count:         req.Installments,
		Initial:       core.MonthYear{Month: *req.Month, Year: *req.Year},
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"expenses": toDTOs(recs)})
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	month, year, ok, err := monthYearQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	var recs []core.ExpenseRecord
	if ok {
		recs = s.svc.MonthExpenses(month, year)
	} else {
		recs = s.svc.ListExpenses()
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": toDTOs(recs)})
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.svc.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type summaryDTO struct {
	Month        int                `json:"month"`
	Year         int                `json:"year"`
	GrandTotal   string             `json:"grand_total"`
	TotalIncome  string             `json:"total_income"`
	Balance      string             `json:"balance"`
	ByPayer      map[string]string  `json:"by_payer"`
	ByMethod     map[string]string  `json:"by_payment_method"`
	ByCategory   []categoryShareDTO `json:"by_category"`
}

type categoryShareDTO struct {
	Category        string  `json:"category"`
	Emoji           string  `json:"emoji"`
	Total           string  `json:"total"`
	PercentOfIncome float64 `json:"percent_of_income"`
}

func toSummaryDTO(s report.MonthSummary) summaryDTO {
	d := summaryDTO{
		Month:       s.Bucket.Month,
		Year:        s.Bucket.Year,
		GrandTotal:  s.GrandTotal.String(),
		TotalIncome: s.TotalIncome.String(),
		Balance:     core.Money{Cents: s.BalanceCents}.String(),
		ByPayer:     make(map[string]string, len(s.ByPayer)),
		ByMethod:    make(map[string]string, len(s.ByMethod)),
	}
	if s.BalanceCents < 0 {
		d.Balance = "-" + core.Money{Cents: -s.BalanceCents}.String()
	}
	for p, m := range s.ByPayer {
		d.ByPayer[string(p)] = m.String()
	}
	for pm, m := range s.ByMethod {
		d.ByMethod[string(pm)] = m.String()
	}
	for _, cs := range s.ByCategory {
		d.ByCategory = append(d.ByCategory, categoryShareDTO{
			Category:        string(cs.Category),
			Emoji:           cs.Category.Emoji(),
			Total:           cs.Total.String(),
			PercentOfIncome: cs.PercentOfIncome,
		})
	}
	return d
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	month, year, ok, err := monthYearQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		now := time.Now()
		month, year = int(now.Month()), now.Year()
	}
	sum, err := s.svc.MonthSummary(r.Context(), month, year)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSummaryDTO(sum))
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	month, year, ok, err := monthYearQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		now := time.Now()
		month, year = int(now.Month()), now.Year()
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="Gastos_%d_%d.csv"`, month, year))
	if err := s.svc.ExportMonthCSV(w, month, year); err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "error", err)
	}
}

type setIncomeRequest struct {
	Month  int    `json:"month"`
	Year   int    `json:"year"`
	Payer  string `json:"payer"`
	Amount string `json:"amount"`
}

func (s *Server) handleSetIncome(w http.ResponseWriter, r *http.Request) {
	var req setIncomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, fmt.Errorf("decode request: %w", err))
		return
	}
	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, r, err)
		return
	}
	bucket := core.MonthYear{Month: req.Month, Year: req.Year}
	if err := s.svc.SetIncome(r.Context(), bucket, core.Payer(req.Payer), core.Money{Cents: cents}); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetIncomes(w http.ResponseWriter, r *http.Request) {
	month, year, ok, err := monthYearQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !ok {
		now := time.Now()
		month, year = int(now.Month()), now.Year()
	}
	incomes, err := s.svc.Incomes(r.Context(), core.MonthYear{Month: month, Year: year})
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make(map[string]string, len(incomes))
	for p, m := range incomes {
		out[string(p)] = m.String()
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month":   month,
		"year":    year,
		"incomes": out,
	})
}

// monthYearQuery parses the optional month/year pair from the query string.
// ok reports whether both were present.
func monthYearQuery(r *http.Request) (month, year int, ok bool, err error) {
	ms := strings.TrimSpace(r.URL.Query().Get("month"))
	ys := strings.TrimSpace(r.URL.Query().Get("year"))
	if ms == "" && ys == "" {
		return 0, 0, false, nil
	}
	if ms == "" || ys == "" {
		return 0, 0, false, fmt.Errorf("month and year must be provided together")
	}
	if month, err = strconv.Atoi(ms); err != nil {
		return 0, 0, false, fmt.Errorf("invalid month %q", ms)
	}
	if year, err = strconv.Atoi(ys); err != nil {
		return 0, 0, false, fmt.Errorf("invalid year %q", ys)
	}
	return month, year, true, nil
}
