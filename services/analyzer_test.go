package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moniapp/metrics-api/models"
)

// stubStore is an in-memory Store: fixture slices in, captured writes out.
type stubStore struct {
	transactions []models.Transaction
	assets       []models.Asset
	goals        []models.Goal
	budgets      []models.CategoryBudget
	debt         models.DebtSnapshot
	score        *models.ScoreRecord

	lifetimeIncome  float64
	lifetimeExpense float64
	goalCount       int

	transactionsErr error
	upsertErr       error

	upserted []models.ScoreRecord
}

func (s *stubStore) Transactions(ctx context.Context, userID string, from, to time.Time) ([]models.Transaction, error) {
	return s.transactions, s.transactionsErr
}

func (s *stubStore) Assets(ctx context.Context, userID string) ([]models.Asset, error) {
	return s.assets, nil
}

func (s *stubStore) Goals(ctx context.Context, userID string) ([]models.Goal, error) {
	return s.goals, nil
}

func (s *stubStore) Budgets(ctx context.Context, userID string) ([]models.CategoryBudget, error) {
	return s.budgets, nil
}

func (s *stubStore) Debts(ctx context.Context, userID string) (models.DebtSnapshot, error) {
	return s.debt, nil
}

func (s *stubStore) Score(ctx context.Context, userID string) (*models.ScoreRecord, error) {
	return s.score, nil
}

func (s *stubStore) UpsertScore(ctx context.Context, record models.ScoreRecord) error {
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserted = append(s.upserted, record)
	return nil
}

func (s *stubStore) LifetimeTotals(ctx context.Context, userID string) (float64, float64, error) {
	return s.lifetimeIncome, s.lifetimeExpense, nil
}

func (s *stubStore) GoalCount(ctx context.Context, userID string) (int, error) {
	return s.goalCount, nil
}

// newTestAnalyzer wires the pipeline against a stub store, a pinned clock
// and a collaborator with no API key, so every narrative path takes its
// deterministic fallback.
func newTestAnalyzer(store Store) *AnalyzerService {
	return &AnalyzerService{
		store:       store,
		ai:          &ClaudeAIService{},
		suggestions: NewSuggestionService(),
		now:         func() time.Time { return testNow },
	}
}

// analyzerFixture is 13 closed months of steady $1000 surplus plus a live
// March window with income, a recurring rent payment and groceries.
func analyzerFixture() *stubStore {
	history := monthlyHistory(13, 3000, 2000)
	history = append(history,
		tx(models.TypeIncome, 4000, time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC)),
		recurringExpense("Rent", 1500, time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)),
		expenseIn("Groceries", 500, time.Date(2026, time.March, 4, 0, 0, 0, 0, time.UTC)),
	)

	return &stubStore{
		transactions: history,
		assets: []models.Asset{
			{ID: "a1", Name: "Emergency fund", Category: "Savings", Value: 30000},
		},
		goals: []models.Goal{
			{ID: "g1", Title: "House deposit", Target: 20000, Current: 8000},
		},
		budgets: []models.CategoryBudget{
			{CategoryID: "cat-Groceries", CategoryName: "Groceries", MonthlyBudget: 400},
		},
	}
}

func TestAnalyzeFullPipeline(t *testing.T) {
	t.Parallel()

	store := analyzerFixture()
	svc := newTestAnalyzer(store)

	resp, err := svc.Analyze(context.Background(), models.AnalysisRequest{UserID: "user-1", Period: PeriodMonth})
	require.NoError(t, err)

	// Window totals
	assert.Equal(t, 4000.0, resp.Metrics.TotalIncome)
	assert.Equal(t, 2000.0, resp.Metrics.TotalExpenses)
	assert.Equal(t, 50.0, resp.Metrics.SavingsRate)
	assert.Equal(t, 15.0, resp.Metrics.LiquidityMonths)

	// Score: full savings, liquidity, debt and growth credit; 75% fixed
	// costs and spiky spending drag control and behavior down.
	assert.Equal(t, 70, resp.Metrics.ScoreMoni)
	assert.Equal(t, 30.0, resp.Metrics.Components.SavingsAndLiquidity)
	assert.Equal(t, 20.0, resp.Metrics.Components.Debt)
	assert.Equal(t, 5.0, resp.Metrics.Components.Control)

	// Historical averages feed the forecast.
	assert.Equal(t, 1000.0, resp.Forecast.Averages.Avg12)
	assert.Equal(t, 13, resp.Forecast.Averages.MonthsKnown)
	require.Len(t, resp.Forecast.Points, 120)
	assert.Equal(t, 12000.0, resp.Forecast.Points[11].Realistic)

	// Primary goal: $12,000 remaining at $1000/month.
	require.True(t, resp.Forecast.Goal.Computable)
	assert.Equal(t, 12, resp.Forecast.Goal.MonthsToGoal)
	assert.Equal(t, "g1", resp.Forecast.Goal.GoalID)

	// Window categories, largest first.
	require.Len(t, resp.TopCategories, 2)
	assert.Equal(t, "Rent", resp.TopCategories[0].CategoryName)
	assert.Equal(t, 75.0, resp.TopCategories[0].Percentage)

	// Groceries budget of 400 against 500 spent.
	require.True(t, resp.BudgetProgress.HasBudgets)
	require.Len(t, resp.BudgetProgress.Categories, 1)
	assert.True(t, resp.BudgetProgress.Categories[0].OverBudget)
	assert.Equal(t, 125.0, resp.BudgetProgress.Categories[0].PercentUsed)

	// With no API key the narrative falls back to the deterministic line.
	assert.Contains(t, resp.Analysis, "saving 50.0% of your income")

	// The rules fired, so no generic fallback suggestions.
	require.Len(t, resp.TopActions, 2)
	assert.Equal(t, "Renegotiate fixed commitments", resp.TopActions[0].Title)
	assert.Equal(t, "Back under budget: Groceries", resp.TopActions[1].Title)

	// Ancillary series
	assert.Len(t, resp.DailyCashFlow, 14)
	assert.Equal(t, 30000.0, resp.NetWorth.Current)
	assert.Len(t, resp.NetWorth.History, 12)
	require.Len(t, resp.Subscriptions, 1)
	assert.Equal(t, "Rent", resp.Subscriptions[0].CategoryName)
	assert.False(t, resp.DebtPlan.HasDebt)

	// Upcoming schedule carries the recurring rent, dated one month on.
	require.NotEmpty(t, resp.UpcomingTransactions.Schedule)
	assert.Equal(t, "Rent", resp.UpcomingTransactions.Schedule[0].Description)
	assert.Equal(t, "2026-04-03", resp.UpcomingTransactions.Schedule[0].DueDate)
	assert.Equal(t, 3000.0, resp.UpcomingTransactions.AvgMonthlyIncome)

	// Score cache written once with the fresh score.
	require.Len(t, store.upserted, 1)
	assert.Equal(t, "user-1", store.upserted[0].UserID)
	assert.Equal(t, 70, store.upserted[0].ScoreMoni)
	assert.Equal(t, testNow, store.upserted[0].LastCalculatedAt)
}

func TestAnalyzeIsIdempotent(t *testing.T) {
	t.Parallel()

	store := analyzerFixture()
	svc := newTestAnalyzer(store)
	req := models.AnalysisRequest{UserID: "user-1", Period: PeriodMonth}

	first, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Metrics, second.Metrics)
	assert.Equal(t, first.Forecast.Points, second.Forecast.Points)
	assert.Len(t, store.upserted, 2)
}

func TestAnalyzePreviousScoreFromCache(t *testing.T) {
	t.Parallel()

	store := analyzerFixture()
	store.score = &models.ScoreRecord{UserID: "user-1", ScoreMoni: 64}
	svc := newTestAnalyzer(store)

	resp, err := svc.Analyze(context.Background(), models.AnalysisRequest{UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, 64, resp.ScoreBreakdown.PreviousScore)
	assert.Equal(t, 70, resp.ScoreBreakdown.Score)
	assert.Contains(t, resp.ScoreBreakdown.Explanation, "went up 6 points to 70")
}

func TestAnalyzeEmptyLedger(t *testing.T) {
	t.Parallel()

	store := &stubStore{}
	svc := newTestAnalyzer(store)

	resp, err := svc.Analyze(context.Background(), models.AnalysisRequest{UserID: "user-1"})
	require.NoError(t, err)

	assert.Zero(t, resp.Metrics.TotalIncome)
	assert.Contains(t, resp.Analysis, "No transactions recorded this month")
	assert.False(t, resp.Forecast.Goal.Computable)
	assert.False(t, resp.BudgetProgress.HasBudgets)

	// No rule fired, so the generic suggestions fill in.
	require.Len(t, resp.TopActions, 3)
	assert.Equal(t, "Track every expense for two weeks", resp.TopActions[0].Title)

	// Even an all-zero run caches its score.
	require.Len(t, store.upserted, 1)
	assert.Equal(t, 40, store.upserted[0].ScoreMoni)
}

func TestAnalyzeStoreFailureIsFatal(t *testing.T) {
	t.Parallel()

	store := &stubStore{transactionsErr: errors.New("connection refused")}
	svc := newTestAnalyzer(store)

	resp, err := svc.Analyze(context.Background(), models.AnalysisRequest{UserID: "user-1"})

	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), "snapshot fetch failed")
}

func TestAnalyzeUpsertFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	store := analyzerFixture()
	store.upsertErr = errors.New("deadlock detected")
	svc := newTestAnalyzer(store)

	resp, err := svc.Analyze(context.Background(), models.AnalysisRequest{UserID: "user-1"})

	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, 70, resp.Metrics.ScoreMoni)
	assert.Empty(t, store.upserted)
}

func TestAnalyzeYearWindow(t *testing.T) {
	t.Parallel()

	store := analyzerFixture()
	svc := newTestAnalyzer(store)

	resp, err := svc.Analyze(context.Background(), models.AnalysisRequest{UserID: "user-1", Period: PeriodYear})
	require.NoError(t, err)

	// January and February history plus the March window fall inside 2026.
	assert.Equal(t, 10000.0, resp.Metrics.TotalIncome)
	assert.Equal(t, 6000.0, resp.Metrics.TotalExpenses)
}

func TestSuggestUsesFallbackWithoutCollaborator(t *testing.T) {
	t.Parallel()

	store := &stubStore{lifetimeIncome: 50000, lifetimeExpense: 30000, goalCount: 2}
	svc := newTestAnalyzer(store)

	resp, err := svc.Suggest(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Equal(t, 50000.0, resp.LifetimeIncome)
	assert.Equal(t, 30000.0, resp.LifetimeExpense)
	assert.Equal(t, 2, resp.GoalCount)
	require.Len(t, resp.Suggestions, 3)
}
