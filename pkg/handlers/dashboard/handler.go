package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/de-tools/sales-atlas/pkg/adapters"
	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/export"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const exportFileName = "superstore_sales"

// Session is the dashboard state the handlers drive. *dashboard.Session
// satisfies it.
type Session interface {
	Status() domain.DatasetStatus
	Filters() (domain.FilterState, domain.ComparisonMode)
	SetDateFilter(start, end string)
	ApplyDatePreset(preset string) error
	SetComparisonMode(mode domain.ComparisonMode) error
	ToggleCategoryFilter(category string)
	ToggleRegionFilter(region string)
	ClearFilters()
	SetSearchQuery(query string)
	SortBy(column string) error
	SetPage(ctx context.Context, page int)
	NextPage(ctx context.Context)
	PreviousPage(ctx context.Context)
	Table(ctx context.Context) (domain.TableView, domain.TableViewState)
	Snapshot(ctx context.Context) domain.Snapshot
	Comparison(ctx context.Context) *domain.KPIComparison
	Export(ctx context.Context, format export.Format) ([]byte, export.Exporter, error)
	SubmitQuery(ctx context.Context, query string) *domain.Message
	ClickSuggestion(ctx context.Context, index int) (*domain.Message, bool)
	Conversation() ([]domain.Message, bool)
	Suggestions() []string
}

type Handler struct {
	session Session
}

func NewHandler(session Session) *Handler {
	return &Handler{session: session}
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainStatusToAPI(h.session.Status()))
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := h.session.Status()
	filters, mode := h.session.Filters()

	response := adapters.MapDomainSnapshotToAPI(h.session.Snapshot(ctx), h.session.Comparison(ctx))
	response.Status = adapters.MapDomainStatusToAPI(status)
	response.Filters = adapters.MapDomainFiltersToAPI(filters, mode, status)
	writeJSON(w, r, http.StatusOK, response)
}

func (h *Handler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	kpi := h.session.Snapshot(ctx).KPI
	writeJSON(w, r, http.StatusOK, adapters.MapDomainKPIResponseToAPI(kpi, h.session.Comparison(ctx)))
}

func (h *Handler) GetMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainMonthlyTrendToAPI(h.session.Snapshot(r.Context()).MonthlyTrend))
}

func (h *Handler) GetSalesTrend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainSalesTrendToAPI(h.session.Snapshot(r.Context()).SalesTrend))
}

func (h *Handler) GetCategoryTrend(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainCategoryTrendToAPI(h.session.Snapshot(r.Context()).CategoryTrend))
}

func (h *Handler) GetScatter(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainScatterToAPI(h.session.Snapshot(r.Context()).Scatter))
}

func (h *Handler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainNamedValuesToAPI(h.session.Snapshot(r.Context()).TopProducts))
}

func (h *Handler) GetHeatmap(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainHeatmapToAPI(h.session.Snapshot(r.Context()).Heatmap))
}

func (h *Handler) GetOrderVolume(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainOrderVolumeToAPI(h.session.Snapshot(r.Context()).OrderVolume))
}

func (h *Handler) GetCategoryPerformance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainNamedValuesToAPI(h.session.Snapshot(r.Context()).CategoryPerformance))
}

func (h *Handler) GetProfitByCategory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainNamedValuesToAPI(h.session.Snapshot(r.Context()).ProfitByCategory))
}

func (h *Handler) GetCategoryProfitability(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK,
		adapters.MapDomainCategoryProfitabilityToAPI(h.session.Snapshot(r.Context()).CategoryProfitability))
}

func (h *Handler) GetRegionalSales(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, adapters.MapDomainNamedValuesToAPI(h.session.Snapshot(r.Context()).RegionalSales))
}

func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	filters, mode := h.session.Filters()
	writeJSON(w, r, http.StatusOK, adapters.MapDomainFiltersToAPI(filters, mode, h.session.Status()))
}

func (h *Handler) SetDateFilter(w http.ResponseWriter, r *http.Request) {
	var req api.DateRange
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	for _, bound := range []struct{ name, value string }{{"start", req.Start}, {"end", req.End}} {
		if bound.value == "" {
			continue
		}
		if _, err := time.Parse(time.DateOnly, bound.value); err != nil {
			http.Error(w, fmt.Sprintf("invalid '%s' date format. Expected format: YYYY-MM-DD", bound.name), http.StatusBadRequest)
			return
		}
	}

	h.session.SetDateFilter(req.Start, req.End)
	h.GetFilters(w, r)
}

func (h *Handler) ApplyDatePreset(w http.ResponseWriter, r *http.Request) {
	if err := h.session.ApplyDatePreset(chi.URLParam(r, "preset")); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.GetFilters(w, r)
}

func (h *Handler) SetComparisonMode(w http.ResponseWriter, r *http.Request) {
	mode := domain.ComparisonMode(chi.URLParam(r, "mode"))
	if err := h.session.SetComparisonMode(mode); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.GetFilters(w, r)
}

func (h *Handler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := pathValue(w, r, "category")
	if !ok {
		return
	}
	h.session.ToggleCategoryFilter(category)
	h.GetFilters(w, r)
}

func (h *Handler) ToggleRegion(w http.ResponseWriter, r *http.Request) {
	region, ok := pathValue(w, r, "region")
	if !ok {
		return
	}
	h.session.ToggleRegionFilter(region)
	h.GetFilters(w, r)
}

func (h *Handler) ClearFilters(w http.ResponseWriter, r *http.Request) {
	h.session.ClearFilters()
	h.GetFilters(w, r)
}

func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	v, state := h.session.Table(r.Context())
	writeJSON(w, r, http.StatusOK, adapters.MapDomainTableViewToAPI(v, state))
}

func (h *Handler) SetSearch(w http.ResponseWriter, r *http.Request) {
	var req api.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.session.SetSearchQuery(req.Query)
	h.GetTable(w, r)
}

func (h *Handler) SortBy(w http.ResponseWriter, r *http.Request) {
	column, ok := pathValue(w, r, "column")
	if !ok {
		return
	}
	if err := h.session.SortBy(column); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	h.GetTable(w, r)
}

func (h *Handler) SetPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		http.Error(w, "invalid page number", http.StatusBadRequest)
		return
	}
	h.session.SetPage(r.Context(), page)
	h.GetTable(w, r)
}

func (h *Handler) NextPage(w http.ResponseWriter, r *http.Request) {
	h.session.NextPage(r.Context())
	h.GetTable(w, r)
}

func (h *Handler) PreviousPage(w http.ResponseWriter, r *http.Request) {
	h.session.PreviousPage(r.Context())
	h.GetTable(w, r)
}

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, exporter, err := h.session.Export(ctx, format)
	if err != nil {
		logger.Error().Err(err).Str("format", string(format)).Msg("failed to export dataset")
		http.Error(w, "failed to export dataset", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", exporter.GetContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="%s%s"`, exportFileName, exporter.GetFileExtension()))
	if _, err := w.Write(data); err != nil {
		logger.Error().Err(err).Msg("failed to write export")
	}
}

func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	messages, processing := h.session.Conversation()
	writeJSON(w, r, http.StatusOK, adapters.MapDomainConversationToAPI(messages, processing))
}

func (h *Handler) SubmitQuery(w http.ResponseWriter, r *http.Request) {
	var req api.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	h.respond(w, r, h.session.SubmitQuery(r.Context(), req.Query))
}

func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, api.Suggestions{Suggestions: h.session.Suggestions()})
}

func (h *Handler) ClickSuggestion(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid suggestion index", http.StatusBadRequest)
		return
	}
	reply, ok := h.session.ClickSuggestion(r.Context(), index)
	if !ok {
		http.Error(w, "unknown suggestion", http.StatusNotFound)
		return
	}
	h.respond(w, r, reply)
}

func (h *Handler) respond(w http.ResponseWriter, r *http.Request, reply *domain.Message) {
	messages, processing := h.session.Conversation()
	response := api.QueryResponse{Conversation: adapters.MapDomainConversationToAPI(messages, processing)}
	if reply != nil {
		m := adapters.MapDomainMessageToAPI(*reply)
		response.Reply = &m
	}
	writeJSON(w, r, http.StatusOK, response)
}

func pathValue(w http.ResponseWriter, r *http.Request, name string) (string, bool) {
	value, err := url.PathUnescape(chi.URLParam(r, name))
	if err != nil || value == "" {
		http.Error(w, fmt.Sprintf("invalid %s", name), http.StatusBadRequest)
		return "", false
	}
	return value, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("path", r.URL.Path).
			Msg("failed to encode response")
	}
}

