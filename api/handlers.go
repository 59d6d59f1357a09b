/*
handlers.go - HTTP API handlers for the dimension lookup service

PURPOSE:
  Exposes cached dimension lookups, name/id resolution, hierarchy walks,
  consolidation-root selection, account search, and balance summaries via
  REST. Handles HTTP request/response and JSON serialization, delegating
  everything else to the lookup service.

ENDPOINTS:
  Lookups:
    GET  /api/lookups/all                                All dimensions at once
    GET  /api/lookups/{type}                             One dimension list
    GET  /api/lookups/currencies?subsidiary_id=          Valid consolidation currencies
    GET  /api/lookups/accountingbooks/{id}/subsidiaries  Book subsidiary sublist

  Resolution:
    GET  /api/resolve?type=&q=                           Name/id to canonical id
    GET  /api/subsidiaries/{id}/ancestors                Ancestor chain
    GET  /api/subsidiaries/{id}/descendants              Descendant set
    GET  /api/consolidation/root?currency=&subsidiary_id= Consolidation root

  Accounts:
    GET  /api/accounts/search?number=&type=              Account search
    GET  /api/balance?account=&period=&subsidiary=&book= Balance summary

  Dev:
    POST /api/query                                      Raw query passthrough
    GET  /api/health                                     Liveness probe

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resolution miss, unknown period
  - 502: Backend query failure (code from the query error surfaces)
  - 500: Everything else

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/finsheet/dimension-engine/dimension"
	"github.com/finsheet/dimension-engine/netsuite"
	"github.com/finsheet/dimension-engine/suiteql"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Lookups *netsuite.LookupService
	Client  suiteql.Client
	Log     *logrus.Logger
}

// NewHandler creates a new handler around the lookup service. The raw client
// backs the ad-hoc query endpoint only.
func NewHandler(lookups *netsuite.LookupService, client suiteql.Client, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.New()
	}
	return &Handler{Lookups: lookups, Client: client, Log: log}
}

// =============================================================================
// LOOKUP ENDPOINTS
// =============================================================================

// GetAllLookups returns every dimension snapshot in one payload.
// GET /api/lookups/all
func (h *Handler) GetAllLookups(w http.ResponseWriter, r *http.Request) {
	lookups, err := h.Lookups.GetAllLookups(r.Context())
	if err != nil {
		writeQueryError(w, "Failed to fetch lookups", err)
		return
	}
	writeJSON(w, http.StatusOK, toAllLookupsDTO(lookups))
}

// GetLookup returns one dimension list by type name.
// GET /api/lookups/{type}
func (h *Handler) GetLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kind := strings.ToLower(chi.URLParam(r, "type"))

	switch kind {
	case "subsidiaries", "subsidiary":
		items, err := h.Lookups.GetSubsidiaries(ctx)
		if err != nil {
			writeQueryError(w, "Failed to fetch subsidiaries", err)
			return
		}
		writeJSON(w, http.StatusOK, toSubsidiaryDTOs(items))
	case "accountingbooks", "accountingbook":
		items, err := h.Lookups.GetAccountingBooks(ctx)
		if err != nil {
			writeQueryError(w, "Failed to fetch accounting books", err)
			return
		}
		writeJSON(w, http.StatusOK, toAccountingBookDTOs(items))
	case "budgetcategories", "budgetcategory":
		items, err := h.Lookups.GetBudgetCategories(ctx)
		if err != nil {
			writeQueryError(w, "Failed to fetch budget categories", err)
			return
		}
		writeJSON(w, http.StatusOK, toBudgetCategoryDTOs(items))
	default:
		typ, ok := dimension.ParseType(kind)
		if !ok {
			writeError(w, http.StatusBadRequest, "Unknown lookup type", nil)
			return
		}
		var (
			items []dimension.DimensionItem
			ferr  error
		)
		switch typ {
		case dimension.TypeDepartment:
			items, ferr = h.Lookups.GetDepartments(ctx)
		case dimension.TypeClass:
			items, ferr = h.Lookups.GetClasses(ctx)
		case dimension.TypeLocation:
			items, ferr = h.Lookups.GetLocations(ctx)
		default:
			writeError(w, http.StatusBadRequest, "Unknown lookup type", nil)
			return
		}
		if ferr != nil {
			writeQueryError(w, "Failed to fetch "+kind, ferr)
			return
		}
		writeJSON(w, http.StatusOK, toDimensionDTOs(items))
	}
}

// GetCurrencies returns the currencies valid as consolidation roots,
// optionally scoped to one subsidiary's ancestor chain.
// GET /api/lookups/currencies?subsidiary_id=
func (h *Handler) GetCurrencies(w http.ResponseWriter, r *http.Request) {
	subsidiaryID := strings.TrimSpace(r.URL.Query().Get("subsidiary_id"))

	items, err := h.Lookups.GetCurrencies(r.Context(), subsidiaryID)
	if err != nil {
		writeQueryError(w, "Failed to fetch currencies", err)
		return
	}
	writeJSON(w, http.StatusOK, toCurrencyDTOs(items))
}

// GetBookSubsidiaries lists the subsidiaries configured on one accounting book.
// GET /api/lookups/accountingbooks/{id}/subsidiaries
func (h *Handler) GetBookSubsidiaries(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	if !dimension.IsNumericID(bookID) {
		writeError(w, http.StatusBadRequest, "Accounting book id must be numeric", nil)
		return
	}

	items, err := h.Lookups.GetAccountingBookSubsidiaries(r.Context(), bookID)
	if err != nil {
		writeQueryError(w, "Failed to fetch book subsidiaries", err)
		return
	}
	writeJSON(w, http.StatusOK, toSubsidiaryDTOs(items))
}

// =============================================================================
// RESOLUTION ENDPOINTS
// =============================================================================

// Resolve maps a free-form name or numeric id to its canonical identifier.
// GET /api/resolve?type=&q=
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	typeParam := r.URL.Query().Get("type")
	query := r.URL.Query().Get("q")

	typ, ok := dimension.ParseType(typeParam)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown dimension type", nil)
		return
	}
	if strings.TrimSpace(query) == "" {
		writeError(w, http.StatusBadRequest, "Query parameter q is required", nil)
		return
	}

	id, ok, err := h.Lookups.ResolveDimensionID(r.Context(), typ, query)
	if err != nil {
		writeQueryError(w, "Resolution failed", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "No match for query", nil)
		return
	}
	writeJSON(w, http.StatusOK, ResolveDTO{Type: string(typ), Query: query, ID: id})
}

// GetAncestors returns a subsidiary's ancestor chain, immediate parent first.
// GET /api/subsidiaries/{id}/ancestors
func (h *Handler) GetAncestors(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ancestors, err := h.Lookups.GetSubsidiaryAncestors(r.Context(), id)
	if err != nil {
		writeQueryError(w, "Failed to walk ancestors", err)
		return
	}
	writeJSON(w, http.StatusOK, AncestorsDTO{SubsidiaryID: id, Ancestors: ancestors})
}

// GetDescendants returns a subsidiary and everything below it.
// GET /api/subsidiaries/{id}/descendants
func (h *Handler) GetDescendants(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	descendants, err := h.Lookups.GetSubsidiaryDescendants(r.Context(), id)
	if err != nil {
		writeQueryError(w, "Failed to walk descendants", err)
		return
	}
	writeJSON(w, http.StatusOK, DescendantsDTO{SubsidiaryID: id, Descendants: descendants})
}

// GetConsolidationRoot picks the nearest non-elimination ancestor denominated
// in the requested currency. A miss is a 404, not an error payload.
// GET /api/consolidation/root?currency=&subsidiary_id=
func (h *Handler) GetConsolidationRoot(w http.ResponseWriter, r *http.Request) {
	currency := strings.TrimSpace(r.URL.Query().Get("currency"))
	subsidiaryID := strings.TrimSpace(r.URL.Query().Get("subsidiary_id"))
	if currency == "" || subsidiaryID == "" {
		writeError(w, http.StatusBadRequest, "Parameters currency and subsidiary_id are required", nil)
		return
	}

	root, ok, err := h.Lookups.ResolveCurrencyToConsolidationRoot(r.Context(), currency, subsidiaryID)
	if err != nil {
		writeQueryError(w, "Consolidation root lookup failed", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "No valid consolidation root", nil)
		return
	}
	writeJSON(w, http.StatusOK, ConsolidationRootDTO{
		Currency:     currency,
		SubsidiaryID: subsidiaryID,
		RootID:       root,
	})
}

// =============================================================================
// ACCOUNT ENDPOINTS
// =============================================================================

// SearchAccounts finds active ledger accounts by number and type patterns.
// GET /api/accounts/search?number=&type=
func (h *Handler) SearchAccounts(w http.ResponseWriter, r *http.Request) {
	number := r.URL.Query().Get("number")
	accountType := r.URL.Query().Get("type")
	if strings.TrimSpace(number) == "" && strings.TrimSpace(accountType) == "" {
		writeError(w, http.StatusBadRequest, "At least one of number or type is required", nil)
		return
	}

	accounts, err := h.Lookups.SearchAccounts(r.Context(), number, accountType)
	if err != nil {
		writeQueryError(w, "Account search failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toAccountDTOs(accounts))
}

// GetBalance sums posted lines for one account through a period end.
// GET /api/balance?account=&period=&subsidiary=&book=
func (h *Handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	account := strings.TrimSpace(q.Get("account"))
	period := strings.TrimSpace(q.Get("period"))
	subsidiary := strings.TrimSpace(q.Get("subsidiary"))
	book := strings.TrimSpace(q.Get("book"))
	if book == "" {
		book = "1" // primary accounting book
	}

	if account == "" || period == "" || subsidiary == "" {
		writeError(w, http.StatusBadRequest, "Parameters account, period, and subsidiary are required", nil)
		return
	}
	if !dimension.IsNumericID(book) {
		writeError(w, http.StatusBadRequest, "Accounting book id must be numeric", nil)
		return
	}

	summary, err := h.Lookups.GetBalance(r.Context(), account, period, subsidiary, book)
	if err != nil {
		if errors.Is(err, netsuite.ErrPeriodNotFound) {
			writeError(w, http.StatusNotFound, "Accounting period not found", err)
			return
		}
		writeQueryError(w, "Balance query failed", err)
		return
	}
	writeJSON(w, http.StatusOK, toBalanceSummaryDTO(summary))
}

// =============================================================================
// DEV ENDPOINTS
// =============================================================================

// RunQuery executes an ad-hoc query against the backend. Not paginated: the
// caller gets the first page the backend returns.
// POST /api/query
func (h *Handler) RunQuery(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if strings.TrimSpace(req.Q) == "" {
		writeError(w, http.StatusBadRequest, "Query q is required", nil)
		return
	}

	rows, err := h.Client.QueryRows(r.Context(), req.Q)
	if err != nil {
		writeQueryError(w, "Query failed", err)
		return
	}

	results := make([]map[string]any, len(rows))
	for i, row := range rows {
		results[i] = row
	}
	writeJSON(w, http.StatusOK, QueryResponse{Results: results, Count: len(results)})
}

// Health reports liveness.
// GET /api/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeQueryError maps backend failures to 502 with the query error code;
// anything else is a plain 500.
func writeQueryError(w http.ResponseWriter, message string, err error) {
	if qe := suiteql.AsQueryError(err); qe != nil {
		resp := ErrorResponse{Error: message, Code: qe.Code, Details: err.Error()}
		writeJSON(w, http.StatusBadGateway, resp)
		return
	}
	writeError(w, http.StatusInternalServerError, message, err)
}
