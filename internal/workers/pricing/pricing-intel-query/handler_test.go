package pricingintelquery

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"math"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	awsalerts "pricing-intel/internal/common/aws"
	"pricing-intel/internal/common/camunda/camundatest"
	"pricing-intel/internal/common/config"
	"pricing-intel/internal/common/errors"
	"pricing-intel/internal/common/logger"
	"pricing-intel/internal/common/observability"
	"pricing-intel/internal/models"
	"pricing-intel/internal/pricing/insights"
	"pricing-intel/internal/pricing/queries"
	"pricing-intel/internal/pricing/thresholds"
	"pricing-intel/internal/pricing/warehouse"
)

// ==========================
// Test Doubles
// ==========================

type fakeExecutor struct {
	ExecuteFunc func(ctx context.Context, q queries.Query, opts warehouse.ExecOptions) (*warehouse.Result, error)
	queries     []queries.Query
	opts        []warehouse.ExecOptions
}

func (f *fakeExecutor) Execute(ctx context.Context, q queries.Query, opts warehouse.ExecOptions) (*warehouse.Result, error) {
	f.queries = append(f.queries, q)
	f.opts = append(f.opts, opts)
	return f.ExecuteFunc(ctx, q, opts)
}

func returning(records []map[string]interface{}) *fakeExecutor {
	return &fakeExecutor{
		ExecuteFunc: func(ctx context.Context, q queries.Query, opts warehouse.ExecOptions) (*warehouse.Result, error) {
			return &warehouse.Result{
				Records:        records,
				BytesProcessed: 2048,
				BytesBilled:    warehouse.MinBilledBytes,
			}, nil
		},
	}
}

type MockAlertPublisher struct {
	PublishAlertsFunc func(ctx context.Context, msg awsalerts.AlertMessage) (string, error)
	messages          []awsalerts.AlertMessage
}

func (m *MockAlertPublisher) PublishAlerts(ctx context.Context, msg awsalerts.AlertMessage) (string, error) {
	m.messages = append(m.messages, msg)
	return m.PublishAlertsFunc(ctx, msg)
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig(t *testing.T) *Config {
	t.Helper()
	w, err := queries.ParseWindow("2024-12-14", "2024-12-15")
	require.NoError(t, err)
	return &Config{
		Window:       w,
		DefaultLimit: 100,
		MaxLimit:     500,
		ByteBudget:   config.DefaultByteBudget,
		Dataset:      "suvari_pricing",
		Location:     "europe-west1",
	}
}

func createTestHandler(t *testing.T, exec warehouse.Executor, opts ...Option) *Handler {
	t.Helper()
	h, err := NewHandler(createTestConfig(t), thresholds.Default(), exec, logger.NewTestLogger(t), opts...)
	require.NoError(t, err)
	h.newID = func() string { return "req-1" }
	return h
}

func competitorRows() []map[string]interface{} {
	return []map[string]interface{}{
		{
			"tracking_date":       "2024-12-15",
			"competitor":          "Kigili",
			"market":              "Turkey",
			"product_category":    "Suits",
			"price_gap_pct":       "-31.0",
			"raw_price_gap_pct":   -31.14,
			"promotion_flag":      false,
			"quality_comparison":  "Superior",
			"market_share_impact": "Very Positive",
		},
		{
			"tracking_date":       "2024-12-15",
			"competitor":          "Ramsey",
			"market":              "Turkey",
			"product_category":    "Shirts",
			"price_gap_pct":       20.0,
			"promotion_flag":      true,
			"quality_comparison":  "Comparable",
			"market_share_impact": "Negative",
		},
	}
}

func intPtr(v int) *int { return &v }

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Competitor(t *testing.T) {
	exec := returning(competitorRows())
	h := createTestHandler(t, exec)

	env, err := h.Execute(context.Background(), &Request{QueryType: "competitor_analysis"})
	require.NoError(t, err)

	assert.True(t, env.Success)
	assert.Equal(t, "req-1", env.RequestID)
	assert.Equal(t, Agent, env.Agent)
	assert.Equal(t, "competitor_tracking", env.QueryType)
	assert.Equal(t, 100, env.Parameters.Limit)
	assert.Equal(t, 2, env.RowCount)

	rows, ok := env.Rows.([]models.CompetitorRecord)
	require.True(t, ok)
	require.Len(t, rows, 2)
	assert.Equal(t, models.PositionDominant, rows[0].CompetitivePosition)
	assert.Equal(t, models.PositionDisadvantage, rows[1].CompetitivePosition)

	assert.Equal(t, 2, env.Summary["total_records"])
	assert.Equal(t, "competitor_tracking", env.Summary["query_type"])
	assert.Equal(t, -5.5, env.Summary["avg_price_gap"])
	assert.Equal(t, 1, env.Summary["competitive_advantages"])

	assert.Contains(t, env.Alerts, "🔴 1 kategoride fiyat dezavantajımız bulunuyor")
	assert.Contains(t, env.Alerts, "⚠️ 1 kategoride rakip promosyon baskısı var")
	assert.LessOrEqual(t, len(env.Insights), 10)
	assert.LessOrEqual(t, len(env.Recommendations), 5)

	assert.Equal(t, Metadata{
		BytesProcessed: 2048,
		BytesBilled:    warehouse.MinBilledBytes,
		CacheHit:       false,
		Dataset:        "suvari_pricing",
		Location:       "europe-west1",
		Window:         Window{Start: "2024-12-14", End: "2024-12-15"},
	}, env.Metadata)

	require.Len(t, exec.queries, 1)
	assert.Equal(t, []interface{}{"2024-12-14", "2024-12-15", int64(100)}, exec.queries[0].Args())
	assert.Equal(t, map[string]string{"agent": "pricing_intel", "query_type": "competitor_tracking"}, exec.opts[0].Labels)
	assert.Equal(t, config.DefaultByteBudget, exec.opts[0].ByteBudget)
}

func TestHandler_Execute_Resolution(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		want models.Category
	}{
		{"nil request", nil, models.CategoryCompetitorTracking},
		{"alias wins over question", &Request{QueryType: "price_optimization", Question: "kampanya ROI"}, models.CategoryPriceElasticity},
		{"unknown alias falls back to question", &Request{QueryType: "weather", Question: "kampanya ROI nasıl"}, models.CategoryCampaignPerformance},
		{"promotional alias", &Request{QueryType: "promotional_planning"}, models.CategoryPromotionalCalendar},
		{"nothing matches", &Request{Question: "merhaba"}, models.CategoryCompetitorTracking},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := returning(nil)
			h := createTestHandler(t, exec)

			env, err := h.Execute(context.Background(), tt.req)
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), env.QueryType)
			assert.Equal(t, string(tt.want), exec.queries[0].Name)
		})
	}
}

func TestHandler_Execute_LimitClamp(t *testing.T) {
	tests := []struct {
		name  string
		limit *int
		want  int
	}{
		{"default", nil, 100},
		{"within range", intPtr(20), 20},
		{"ceiling", intPtr(10000), 500},
		{"exactly max", intPtr(500), 500},
		{"negative passes through", intPtr(-5), -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := returning(nil)
			h := createTestHandler(t, exec)

			env, err := h.Execute(context.Background(), &Request{QueryType: "campaign_performance", Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, tt.want, env.Parameters.Limit)

			args := exec.queries[0].Args()
			assert.Equal(t, int64(tt.want), args[len(args)-1])
		})
	}
}

func TestHandler_Execute_HugeLimitClampsToMax(t *testing.T) {
	exec := returning(nil)
	h := createTestHandler(t, exec)

	req, err := h.ParseRequest([]byte(`{"query_type":"price_elasticity","limit":1e20}`))
	require.NoError(t, err)

	env, err := h.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 500, env.Parameters.Limit)
	args := exec.queries[0].Args()
	assert.Equal(t, int64(500), args[len(args)-1])
}

func TestHandler_Execute_Empty(t *testing.T) {
	h := createTestHandler(t, returning([]map[string]interface{}{}))

	env, err := h.Execute(context.Background(), &Request{QueryType: "price_elasticity"})
	require.NoError(t, err)

	assert.Equal(t, 0, env.RowCount)
	assert.Equal(t, models.SummaryStats{"total_records": 0}, env.Summary)
	assert.Equal(t, []string{insights.NoDataInsight}, env.Insights)
	assert.Equal(t, []string{insights.NoDataRecommendation}, env.Recommendations)
	assert.Empty(t, env.Alerts)

	body, err := json.Marshal(env)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"rows":[]`)
	assert.Contains(t, string(body), `"alerts":[]`)
}

// ==========================
// Failure Tests
// ==========================

func TestHandler_Execute_WarehouseFailure(t *testing.T) {
	exec := &fakeExecutor{
		ExecuteFunc: func(ctx context.Context, q queries.Query, opts warehouse.ExecOptions) (*warehouse.Result, error) {
			return nil, errors.NewByteBudgetExceededError(q.Name, 6<<30, opts.ByteBudget)
		},
	}
	h := createTestHandler(t, exec)

	env, err := h.Execute(context.Background(), &Request{QueryType: "campaign_analysis"})
	require.Error(t, err)
	assert.Nil(t, env)

	var execErr *ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, "campaign_performance", execErr.QueryType)

	out := NewErrorEnvelope(err)
	assert.False(t, out.Success)
	assert.Equal(t, "BYTE_BUDGET_EXCEEDED", out.ErrorType)
	assert.Equal(t, "campaign_performance", out.QueryType)
	assert.Equal(t, Agent, out.Agent)
	assert.Equal(t, "req-1", out.RequestID)
	assert.Contains(t, out.Error, "byte budget")
}

func TestHandler_Execute_UnclassifiedError(t *testing.T) {
	exec := &fakeExecutor{
		ExecuteFunc: func(ctx context.Context, q queries.Query, opts warehouse.ExecOptions) (*warehouse.Result, error) {
			return nil, stderrors.New("socket closed")
		},
	}
	h := createTestHandler(t, exec)

	_, err := h.Execute(context.Background(), &Request{})
	out := NewErrorEnvelope(err)
	assert.Equal(t, "INTERNAL_ERROR", out.ErrorType)
	assert.Equal(t, "competitor_tracking", out.QueryType)
}

func TestHandler_Execute_DecodeFailure(t *testing.T) {
	h := createTestHandler(t, returning([]map[string]interface{}{
		{"campaign_name": "Flash", "roi_pct": "not-a-number"},
	}))

	_, err := h.Execute(context.Background(), &Request{QueryType: "campaign_performance"})
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrDecode)
	assert.Equal(t, "RECORD_DECODE_FAILED", NewErrorEnvelope(err).ErrorType)
}

func TestNewErrorEnvelope_BeforeResolution(t *testing.T) {
	out := NewErrorEnvelope(errors.NewInvalidRequestError("limit: Invalid type. Expected: integer, given: string"))
	assert.Equal(t, UnknownQueryType, out.QueryType)
	assert.Equal(t, "INVALID_REQUEST", out.ErrorType)
	assert.Empty(t, out.RequestID)
}

// ==========================
// Alert Fan-out Tests
// ==========================

func TestHandler_Execute_PublishesAlerts(t *testing.T) {
	pub := &MockAlertPublisher{
		PublishAlertsFunc: func(ctx context.Context, msg awsalerts.AlertMessage) (string, error) {
			return "msg-1", nil
		},
	}
	h := createTestHandler(t, returning(competitorRows()), WithAlertPublisher(pub))

	env, err := h.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	require.Len(t, pub.messages, 1)
	assert.Equal(t, env.Alerts, pub.messages[0].Alerts)
	assert.Equal(t, "req-1", pub.messages[0].RequestID)
	assert.Equal(t, "competitor_tracking", pub.messages[0].QueryType)
	assert.Equal(t, "suvari_pricing", pub.messages[0].Dataset)
}

func TestHandler_Execute_PublishFailureDoesNotFailRequest(t *testing.T) {
	pub := &MockAlertPublisher{
		PublishAlertsFunc: func(ctx context.Context, msg awsalerts.AlertMessage) (string, error) {
			return "", stderrors.New("SNS service unavailable")
		},
	}
	h := createTestHandler(t, returning(competitorRows()), WithAlertPublisher(pub))

	env, err := h.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.True(t, env.Success)
	assert.Len(t, pub.messages, 1)
}

func TestHandler_Execute_NoAlertsNoPublish(t *testing.T) {
	pub := &MockAlertPublisher{}
	h := createTestHandler(t, returning(nil), WithAlertPublisher(pub))

	_, err := h.Execute(context.Background(), &Request{})
	require.NoError(t, err)
	assert.Empty(t, pub.messages)
}

// ==========================
// Request Parsing Tests
// ==========================

func TestHandler_ParseRequest(t *testing.T) {
	h := createTestHandler(t, returning(nil))

	tests := []struct {
		name    string
		body    string
		want    *Request
		wantErr bool
	}{
		{"malformed json", `{"question": `, &Request{}, false},
		{"empty body", ``, &Request{}, false},
		{"json null", `null`, &Request{}, false},
		{"full", `{"question":"rakip fiyat","query_type":"competitor_analysis","limit":25}`,
			&Request{Question: "rakip fiyat", QueryType: "competitor_analysis", Limit: intPtr(25)}, false},
		{"null fields", `{"question":null,"limit":null}`, &Request{}, false},
		{"limit beyond int range", `{"limit":1e20}`, &Request{Limit: intPtr(500)}, false},
		{"limit below int range", `{"limit":-1e20}`, &Request{Limit: intPtr(math.MinInt32)}, false},
		{"string limit", `{"limit":"abc"}`, nil, true},
		{"numeric query type", `{"query_type":7}`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := h.ParseRequest([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, "INVALID_REQUEST", NewErrorEnvelope(err).ErrorType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ==========================
// Configuration Tests
// ==========================

func TestLoadConfig(t *testing.T) {
	cfg := &config.Config{
		Warehouse: config.WarehouseConfig{
			Dataset:      "suvari_pricing",
			Location:     "europe-west1",
			ByteBudget:   1 << 30,
			QueryTimeout: 90000,
		},
		Analysis: config.AnalysisConfig{
			WindowStart:  "2024-12-01",
			WindowEnd:    "2024-12-31",
			DefaultLimit: 50,
			MaxLimit:     200,
		},
	}

	c, err := LoadConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "2024-12-01", c.Window.StartDate())
	assert.Equal(t, "2024-12-31", c.Window.EndDate())
	assert.Equal(t, 50, c.DefaultLimit)
	assert.Equal(t, 200, c.ClampLimit(intPtr(1000)))
	assert.Equal(t, int64(1<<30), c.ByteBudget)
	assert.Equal(t, 90*time.Second, c.Timeout)

	cfg.Analysis.WindowStart = "bad"
	_, err = LoadConfig(cfg)
	assert.Error(t, err)
}

// ==========================
// Integration With The SQL Executor
// ==========================

func TestHandler_Execute_WithSQLExecutor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	plan := `[{"Plan": {"Node Type": "Seq Scan", "Plan Rows": 100, "Plan Width": 64}}]`
	mock.ExpectQuery(`^/\* agent=pricing_intel query_type=price_elasticity \*/ EXPLAIN`).
		WithArgs("2024-12-14", "2024-12-15", int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"QUERY PLAN"}).AddRow([]byte(plan)))
	mock.ExpectQuery(`"suvari_pricing"\."price_elasticity"`).
		WithArgs("2024-12-14", "2024-12-15", int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"product_category", "elasticity_coefficient", "revenue_impact_pct"}).
			AddRow("Suits", []byte("2.40"), []byte("16.25")))

	exec := warehouse.NewSQLExecutor(db, logger.NewTestLogger(t))
	h := createTestHandler(t, exec)

	env, err := h.Execute(context.Background(), &Request{Question: "talep elastikiyet analizi"})
	require.NoError(t, err)

	assert.Equal(t, "price_elasticity", env.QueryType)
	assert.Equal(t, int64(6400), env.Metadata.BytesProcessed)
	assert.Equal(t, warehouse.MinBilledBytes, env.Metadata.BytesBilled)

	rows := env.Rows.([]models.ElasticityRecord)
	require.Len(t, rows, 1)
	assert.Equal(t, 2.4, rows[0].ElasticityCoefficient)
	assert.Equal(t, models.SensitivityHigh, rows[0].SensitivityClass)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Observability Tests
// ==========================

func TestHandler_Execute_Spans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	obs, err := observability.New("test",
		observability.WithRegisterer(promclient.NewRegistry()),
		observability.WithSpanProcessor(rec),
		observability.WithoutGlobal())
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	h := createTestHandler(t, returning(competitorRows()), WithObservability(obs))
	_, err = h.Execute(context.Background(), &Request{})
	require.NoError(t, err)

	names := []string{}
	for _, s := range rec.Ended() {
		names = append(names, s.Name())
	}
	assert.ElementsMatch(t, []string{"warehouse.execute", "pricing.execute"}, names)
}

// ==========================
// Zeebe Job Tests
// ==========================

func newJob(variables string, retries int32) entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:       99,
		Type:      TaskType,
		Retries:   retries,
		Variables: variables,
	}}
}

func createJobHandler(t *testing.T, exec warehouse.Executor) *Handler {
	t.Helper()
	h := createTestHandler(t, exec)
	h.config.Timeout = time.Minute
	return h
}

func TestHandler_Handle_CompletesJob(t *testing.T) {
	client := camundatest.NewJobClient()
	h := createJobHandler(t, returning(competitorRows()))

	h.Handle(client, newJob(`{"query_type":"competitor_analysis","limit":10}`, 3))

	completed := client.Completed()
	require.Len(t, completed, 1)
	assert.Equal(t, int64(99), completed[0].JobKey)

	var vars map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(completed[0].Variables), &vars))
	assert.Equal(t, true, vars["success"])
	assert.Equal(t, "competitor_tracking", vars["query_type"])
	assert.EqualValues(t, 2, vars["row_count"])
	assert.Empty(t, client.Failed())
	assert.Empty(t, client.Thrown())
}

func TestHandler_Handle_InvalidVariablesThrow(t *testing.T) {
	client := camundatest.NewJobClient()
	h := createJobHandler(t, returning(nil))

	h.Handle(client, newJob(`{"limit":"ten"}`, 3))

	thrown := client.Thrown()
	require.Len(t, thrown, 1)
	assert.Equal(t, "INVALID_REQUEST", thrown[0].ErrorCode)
	assert.Empty(t, client.Completed())
}

func TestHandler_Handle_TransientFailureDecrementsRetries(t *testing.T) {
	client := camundatest.NewJobClient()
	exec := &fakeExecutor{
		ExecuteFunc: func(ctx context.Context, q queries.Query, opts warehouse.ExecOptions) (*warehouse.Result, error) {
			return nil, errors.NewWarehouseConnectionFailedError(stderrors.New("connection refused"))
		},
	}
	h := createJobHandler(t, exec)

	h.Handle(client, newJob(`{}`, 3))

	failed := client.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, int32(2), failed[0].Retries)
	assert.Empty(t, client.Thrown())
}

func TestHandler_Handle_RejectedQueryIsNotRetried(t *testing.T) {
	client := camundatest.NewJobClient()
	exec := &fakeExecutor{
		ExecuteFunc: func(ctx context.Context, q queries.Query, opts warehouse.ExecOptions) (*warehouse.Result, error) {
			return nil, errors.NewWarehouseQueryRejectedError(q.Name, stderrors.New("LIMIT must not be negative"))
		},
	}
	h := createJobHandler(t, exec)

	h.Handle(client, newJob(`{"query_type":"price_elasticity","limit":-1}`, 3))

	assert.Empty(t, client.Failed())
	thrown := client.Thrown()
	require.Len(t, thrown, 1)
	assert.Equal(t, "WAREHOUSE_QUERY_FAILED", thrown[0].ErrorCode)
}
