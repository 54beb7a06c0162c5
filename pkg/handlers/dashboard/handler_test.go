package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/de-tools/sales-atlas/pkg/models/api"
	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/export"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSession struct {
	mock.Mock
}

func (m *mockSession) Status() domain.DatasetStatus {
	return m.Called().Get(0).(domain.DatasetStatus)
}

func (m *mockSession) Filters() (domain.FilterState, domain.ComparisonMode) {
	args := m.Called()
	return args.Get(0).(domain.FilterState), args.Get(1).(domain.ComparisonMode)
}

func (m *mockSession) SetDateFilter(start, end string) { m.Called(start, end) }

func (m *mockSession) ApplyDatePreset(preset string) error { return m.Called(preset).Error(0) }

func (m *mockSession) SetComparisonMode(mode domain.ComparisonMode) error {
	return m.Called(mode).Error(0)
}

func (m *mockSession) ToggleCategoryFilter(category string) { m.Called(category) }

func (m *mockSession) ToggleRegionFilter(region string) { m.Called(region) }

func (m *mockSession) ClearFilters() { m.Called() }

func (m *mockSession) SetSearchQuery(query string) { m.Called(query) }

func (m *mockSession) SortBy(column string) error { return m.Called(column).Error(0) }

func (m *mockSession) SetPage(ctx context.Context, page int) { m.Called(ctx, page) }

func (m *mockSession) NextPage(ctx context.Context) { m.Called(ctx) }

func (m *mockSession) PreviousPage(ctx context.Context) { m.Called(ctx) }

func (m *mockSession) Table(ctx context.Context) (domain.TableView, domain.TableViewState) {
	args := m.Called(ctx)
	return args.Get(0).(domain.TableView), args.Get(1).(domain.TableViewState)
}

func (m *mockSession) Snapshot(ctx context.Context) domain.Snapshot {
	return m.Called(ctx).Get(0).(domain.Snapshot)
}

func (m *mockSession) Comparison(ctx context.Context) *domain.KPIComparison {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.KPIComparison)
}

func (m *mockSession) Export(ctx context.Context, format export.Format) ([]byte, export.Exporter, error) {
	args := m.Called(ctx, format)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]byte), args.Get(1).(export.Exporter), args.Error(2)
}

func (m *mockSession) SubmitQuery(ctx context.Context, query string) *domain.Message {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.Message)
}

func (m *mockSession) ClickSuggestion(ctx context.Context, index int) (*domain.Message, bool) {
	args := m.Called(ctx, index)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.Message), args.Bool(1)
}

func (m *mockSession) Conversation() ([]domain.Message, bool) {
	args := m.Called()
	return args.Get(0).([]domain.Message), args.Bool(1)
}

func (m *mockSession) Suggestions() []string {
	return m.Called().Get(0).([]string)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func TestGetKPIs(t *testing.T) {
	tests := []struct {
		name       string
		comparison *domain.KPIComparison
		expected   api.KPIResponse
	}{
		{
			name:     "without comparison",
			expected: api.KPIResponse{Current: api.KPI{TotalSales: 400, TotalProfit: 100, TotalOrders: 2, ProfitMargin: 25}},
		},
		{
			name: "year over year",
			comparison: &domain.KPIComparison{
				Mode:     domain.ComparisonYearOverYear,
				Start:    "2023-01-01",
				End:      "2023-03-31",
				Previous: domain.KPI{TotalSales: 200, TotalProfit: 20, TotalOrders: 1, ProfitMargin: 10},
			},
			expected: api.KPIResponse{
				Current: api.KPI{TotalSales: 400, TotalProfit: 100, TotalOrders: 2, ProfitMargin: 25},
				Comparison: &api.KPIComparison{
					Mode:     "yoy",
					Start:    "2023-01-01",
					End:      "2023-03-31",
					Previous: api.KPI{TotalSales: 200, TotalProfit: 20, TotalOrders: 1, ProfitMargin: 10},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := new(mockSession)
			session.On("Snapshot", mock.Anything).Return(domain.Snapshot{
				KPI: domain.KPI{TotalSales: 400, TotalProfit: 100, TotalOrders: 2, ProfitMargin: 25},
			})
			session.On("Comparison", mock.Anything).Return(tt.comparison)

			rec := httptest.NewRecorder()
			NewHandler(session).GetKPIs(rec, httptest.NewRequest(http.MethodGet, "/kpis", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			var response api.KPIResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
			assert.Equal(t, tt.expected, response)
			session.AssertExpectations(t)
		})
	}
}

func TestSetDateFilter(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setupMock      func(*mockSession)
		expectedStatus int
	}{
		{
			name: "both bounds",
			body: `{"start":"2024-01-01","end":"2024-03-31"}`,
			setupMock: func(m *mockSession) {
				m.On("SetDateFilter", "2024-01-01", "2024-03-31").Return()
				m.On("Filters").Return(domain.FilterState{}, domain.ComparisonNone)
				m.On("Status").Return(domain.DatasetStatus{})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "clearing the range",
			body: `{"start":"","end":""}`,
			setupMock: func(m *mockSession) {
				m.On("SetDateFilter", "", "").Return()
				m.On("Filters").Return(domain.FilterState{}, domain.ComparisonNone)
				m.On("Status").Return(domain.DatasetStatus{})
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid end",
			body:           `{"start":"2024-01-01","end":"31.03.2024"}`,
			setupMock:      func(*mockSession) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `[`,
			setupMock:      func(*mockSession) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := new(mockSession)
			tt.setupMock(session)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPut, "/filters/date", strings.NewReader(tt.body))
			NewHandler(session).SetDateFilter(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			session.AssertExpectations(t)
		})
	}
}

func TestToggleCategory(t *testing.T) {
	session := new(mockSession)
	session.On("ToggleCategoryFilter", "Office Supplies").Return()
	session.On("Filters").Return(domain.FilterState{Categories: []string{"Office Supplies"}}, domain.ComparisonNone)
	session.On("Status").Return(domain.DatasetStatus{Categories: []string{"Office Supplies"}})

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodPost, "/filters/categories/x", nil), "category", "Office%20Supplies")
	NewHandler(session).ToggleCategory(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var response api.Filters
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, []string{"Office Supplies"}, response.Categories)
	session.AssertExpectations(t)
}

func TestSetPage_Invalid(t *testing.T) {
	session := new(mockSession)

	rec := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/table/page/x", nil), "page", "two")
	NewHandler(session).SetPage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	session.AssertNotCalled(t, "SetPage", mock.Anything, mock.Anything)
}

func TestExport(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(*mockSession)
		expectedStatus int
		expectedType   string
		expectedBody   string
	}{
		{
			name:  "defaults to csv",
			query: "",
			setupMock: func(m *mockSession) {
				m.On("Export", mock.Anything, export.FormatCSV).
					Return([]byte("Order ID\n1\n"), export.Exporter(export.NewCSVExporter()), nil)
			},
			expectedStatus: http.StatusOK,
			expectedType:   "text/csv",
			expectedBody:   "Order ID\n1\n",
		},
		{
			name:  "pdf",
			query: "?format=pdf",
			setupMock: func(m *mockSession) {
				m.On("Export", mock.Anything, export.FormatPDF).
					Return([]byte("%PDF-1.3"), export.Exporter(export.NewPDFExporter()), nil)
			},
			expectedStatus: http.StatusOK,
			expectedType:   "application/pdf",
			expectedBody:   "%PDF-1.3",
		},
		{
			name:  "export failure",
			query: "?format=xlsx",
			setupMock: func(m *mockSession) {
				m.On("Export", mock.Anything, export.FormatXLSX).Return(nil, nil, errors.New("disk full"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedType:   "text/plain; charset=utf-8",
			expectedBody:   "failed to export dataset\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := new(mockSession)
			tt.setupMock(session)

			rec := httptest.NewRecorder()
			NewHandler(session).Export(rec, httptest.NewRequest(http.MethodGet, "/export"+tt.query, nil))

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedType, rec.Header().Get("Content-Type"))
			body, _ := io.ReadAll(rec.Body)
			assert.Equal(t, tt.expectedBody, string(body))
			session.AssertExpectations(t)
		})
	}
}

func TestSubmitQuery(t *testing.T) {
	reply := &domain.Message{ID: "2", Role: domain.RoleBot, Content: "hello", Timestamp: "10:00"}
	messages := []domain.Message{
		{ID: "1", Role: domain.RoleUser, Content: "hi", Timestamp: "10:00"},
		*reply,
	}
	session := new(mockSession)
	session.On("SubmitQuery", mock.Anything, "hi").Return(reply)
	session.On("Conversation").Return(messages, false)

	rec := httptest.NewRecorder()
	NewHandler(session).SubmitQuery(rec, httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"query":"hi"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var response api.QueryResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	assert.Equal(t, &api.Message{ID: "2", Role: "bot", Content: "hello", Timestamp: "10:00"}, response.Reply)
	assert.Len(t, response.Conversation.Messages, 2)
	session.AssertExpectations(t)
}
