package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/moniapp/metrics-api/models"
	"github.com/moniapp/metrics-api/utils"
)

// ============================================================================
// ANALYZER SERVICE
// The single-pass pipeline: fetch the snapshot (concurrently), run the pure
// stages in dependency order, assemble the response, upsert the score cache.
// Stateless across requests; each run computes from its own snapshot.
// ============================================================================

// Ten years of trailing ledger feed the historical averager.
const historyYears = 10

type AnalyzerService struct {
	store       Store
	ai          *ClaudeAIService
	suggestions *SuggestionService

	// now is injectable so tests pin the clock.
	now func() time.Time
}

func NewAnalyzerService(store Store, ai *ClaudeAIService) *AnalyzerService {
	return &AnalyzerService{
		store:       store,
		ai:          ai,
		suggestions: NewSuggestionService(),
		now:         time.Now,
	}
}

// snapshot is everything the pipeline reads from the data store. The five
// reads have no data dependency on each other and are fetched concurrently.
type snapshot struct {
	history []models.Transaction
	assets  []models.Asset
	goals   []models.Goal
	budgets []models.CategoryBudget
	debt    models.DebtSnapshot
}

func (s *AnalyzerService) fetchSnapshot(ctx context.Context, userID string, now time.Time) (*snapshot, error) {
	snap := &snapshot{}
	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		snap.history, err = s.store.Transactions(gctx, userID, now.AddDate(-historyYears, 0, 0), now)
		return err
	})
	group.Go(func() error {
		var err error
		snap.assets, err = s.store.Assets(gctx, userID)
		return err
	})
	group.Go(func() error {
		var err error
		snap.goals, err = s.store.Goals(gctx, userID)
		return err
	})
	group.Go(func() error {
		var err error
		snap.budgets, err = s.store.Budgets(gctx, userID)
		return err
	})
	group.Go(func() error {
		var err error
		snap.debt, err = s.store.Debts(gctx, userID)
		return err
	})

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("snapshot fetch failed: %w", err)
	}
	return snap, nil
}

// Analyze runs the full pipeline for one request. A store read failure is
// fatal; everything downstream degrades gracefully instead of failing.
func (s *AnalyzerService) Analyze(ctx context.Context, req models.AnalysisRequest) (*models.AnalysisResponse, error) {
	started := time.Now()
	now := s.now()
	window := ResolvePeriod(req.Period, now)

	snap, err := s.fetchSnapshot(ctx, req.UserID, now)
	if err != nil {
		return nil, err
	}

	// Pure stages, dependency order.
	ledger := PartitionLedger(snap.history, window)
	assets := SummarizeAssets(snap.assets)
	metrics := CalculateMetrics(ledger, assets, snap.goals, snap.debt, window)
	metrics = ComposeScore(metrics, snap.debt)

	balances := MonthlyBalances(snap.history, now)
	averages := AverageBalances(balances, ledger.Balance)
	forecastPoints := ProjectForecast(averages, now)

	goalForecast := models.GoalForecast{Computable: false}
	if len(snap.goals) > 0 {
		goalForecast = EstimateGoal(snap.goals[0], averages, trailing(balances, 12))
	}

	budgetProgress := TrackBudgets(snap.budgets, ledger)
	actions := s.suggestions.RankActions(metrics, budgetProgress)
	if len(actions) == 0 {
		actions = FallbackSuggestions()
	}

	previousScore := 0
	if cached, err := s.store.Score(ctx, req.UserID); err != nil {
		utils.SafeWarn("[Analyzer] previous score read failed for %s: %v", utils.MaskID(req.UserID), err)
	} else if cached != nil {
		previousScore = cached.ScoreMoni
	}

	response := &models.AnalysisResponse{
		Analysis:             s.narrative(ctx, metrics, ledger, window),
		Metrics:              metrics,
		TopCategories:        ledger.TopCategories(5),
		RiskIndicators:       RiskIndicators(metrics),
		Projections:          buildProjections(ledger, window),
		DailyCashFlow:        buildDailyCashFlow(snap.history, now),
		SafeToSpend:          buildSafeToSpend(ledger, window),
		UpcomingTransactions: buildUpcoming(balances, snap.history, now),
		TopActions:           actions,
		ScoreBreakdown: models.ScoreBreakdown{
			Score:         metrics.ScoreMoni,
			PreviousScore: previousScore,
			Components:    metrics.Components,
			Explanation:   ExplainScore(metrics.ScoreMoni, previousScore, metrics.Components),
		},
		NetWorth: buildNetWorth(assets, balances, now),
		Forecast: models.Forecast{
			Points:   forecastPoints,
			Averages: averages,
			Goal:     goalForecast,
		},
		BudgetProgress: budgetProgress,
		DebtPlan:       buildDebtPlan(snap.debt),
		Subscriptions:  buildSubscriptions(snap.history, window),
	}

	// Side effect only after the full pipeline succeeded. The cache is not
	// authoritative; a failed write degrades to a warning.
	record := models.ScoreRecord{
		UserID:           req.UserID,
		ScoreMoni:        metrics.ScoreMoni,
		Components:       metrics.Components,
		LastCalculatedAt: now,
	}
	if err := s.store.UpsertScore(ctx, record); err != nil {
		utils.SafeWarn("[Analyzer] score cache upsert failed for %s: %v", utils.MaskID(req.UserID), err)
	}

	utils.LogAnalysisRun(req.UserID, window.Label, metrics.ScoreMoni, time.Since(started))

	return response, nil
}

// Suggest is the lightweight type="suggestions" path: lifetime aggregates
// and goal count only, collaborator first, local fallback always.
func (s *AnalyzerService) Suggest(ctx context.Context, userID string) (*models.SuggestionsResponse, error) {
	var (
		income, expenses float64
		goalCount        int
	)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		income, expenses, err = s.store.LifetimeTotals(gctx, userID)
		return err
	})
	group.Go(func() error {
		var err error
		goalCount, err = s.store.GoalCount(gctx, userID)
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("suggestions fetch failed: %w", err)
	}

	suggestions, err := s.ai.GenerateSuggestions(ctx, income, expenses, goalCount)
	if err != nil {
		log.Printf("[Analyzer] suggestions collaborator unavailable: %v", err)
		suggestions = FallbackSuggestions()
	}

	return &models.SuggestionsResponse{
		Suggestions:     suggestions,
		LifetimeIncome:  income,
		LifetimeExpense: expenses,
		GoalCount:       goalCount,
	}, nil
}

// narrative asks the collaborator for analysis text and falls back to a
// deterministic summary when it is unreachable or the window is empty.
func (s *AnalyzerService) narrative(ctx context.Context, metrics models.FinancialMetrics, ledger LedgerSummary, window Period) string {
	if ledger.IncomeCount == 0 && ledger.ExpenseCount == 0 {
		return fmt.Sprintf("No transactions recorded this %s yet. Your analysis will appear once activity comes in.", window.Label)
	}

	text, err := s.ai.GenerateAnalysis(ctx, metrics, window.Label)
	if err != nil {
		log.Printf("[Analyzer] narrative collaborator unavailable: %v", err)
		return fallbackAnalysis(metrics, window)
	}
	return text
}

func fallbackAnalysis(metrics models.FinancialMetrics, window Period) string {
	if metrics.Balance >= 0 {
		return fmt.Sprintf(
			"This %s you earned %.2f and spent %.2f, saving %.1f%% of your income. Your Score Moni is %d.",
			window.Label, metrics.TotalIncome, metrics.TotalExpenses, metrics.SavingsRate, metrics.ScoreMoni)
	}
	return fmt.Sprintf(
		"This %s you spent %.2f against %.2f of income, ending %.2f in the red. Your Score Moni is %d.",
		window.Label, metrics.TotalExpenses, metrics.TotalIncome, -metrics.Balance, metrics.ScoreMoni)
}

// ============================================================================
// RESPONSE BUILDERS
// ============================================================================

func buildProjections(ledger LedgerSummary, window Period) models.PeriodProjection {
	days := float64(window.DaysElapsed())
	total := float64(window.Days)

	income := ledger.TotalIncome / days * total
	expenses := ledger.TotalExpenses / days * total
	return models.PeriodProjection{
		ProjectedIncome:   round2(income),
		ProjectedExpenses: round2(expenses),
		ProjectedBalance:  round2(income - expenses),
	}
}

// buildDailyCashFlow returns the last 14 days of per-day balances.
func buildDailyCashFlow(transactions []models.Transaction, now time.Time) []models.CashFlowPoint {
	const days = 14

	type daily struct{ income, expense float64 }
	byDay := make(map[string]*daily, days)

	cutoff := now.AddDate(0, 0, -(days - 1))
	start := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, now.Location())

	for _, tx := range transactions {
		if tx.Date.Before(start) || tx.Date.After(now) {
			continue
		}
		key := tx.Date.Format("2006-01-02")
		day, ok := byDay[key]
		if !ok {
			day = &daily{}
			byDay[key] = day
		}
		switch tx.Type {
		case models.TypeIncome:
			day.income += tx.Amount
		case models.TypeExpense:
			day.expense += tx.Amount
		}
	}

	points := make([]models.CashFlowPoint, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		key := date.Format("2006-01-02")
		point := models.CashFlowPoint{Date: key}
		if day, ok := byDay[key]; ok {
			point.Income = round2(day.income)
			point.Expense = round2(day.expense)
			point.Balance = round2(day.income - day.expense)
		}
		points = append(points, point)
	}
	return points
}

func buildSafeToSpend(ledger LedgerSummary, window Period) models.SafeToSpend {
	safe := models.SafeToSpend{DaysLeft: window.DaysLeft()}
	if ledger.Balance <= 0 {
		return safe
	}

	safe.Total = round2(ledger.Balance)
	if safe.DaysLeft > 0 {
		safe.Daily = round2(ledger.Balance / float64(safe.DaysLeft))
	}
	return safe
}

// buildUpcoming pairs historical monthly averages with a short illustrative
// schedule built from the user's recurring transactions.
func buildUpcoming(balances []models.MonthlyBalance, transactions []models.Transaction, now time.Time) models.UpcomingSummary {
	summary := models.UpcomingSummary{Schedule: []models.UpcomingTransaction{}}

	if len(balances) > 0 {
		var income, expenses float64
		recent := trailing(balances, 12)
		for _, b := range recent {
			income += b.Income
			expenses += b.Expenses
		}
		summary.AvgMonthlyIncome = round2(income / float64(len(recent)))
		summary.AvgMonthlyExpenses = round2(expenses / float64(len(recent)))
	}

	// One illustrative entry per recurring category, dated next month on the
	// same day of month the last occurrence used.
	seen := make(map[string]bool)
	for i := len(transactions) - 1; i >= 0 && len(summary.Schedule) < 5; i-- {
		tx := transactions[i]
		if tx.Frequency != models.FrequencyRecurring {
			continue
		}
		name := tx.CategoryName
		if name == "" {
			name = "Recurring " + tx.Type
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		summary.Schedule = append(summary.Schedule, models.UpcomingTransaction{
			Description: name,
			Type:        tx.Type,
			Amount:      tx.Amount,
			DueDate:     tx.Date.AddDate(0, 1, 0).Format("2006-01-02"),
		})
	}

	return summary
}

// buildNetWorth simulates a 12-month trajectory by walking the current
// asset total backwards through the closed monthly balances.
func buildNetWorth(assets AssetSummary, balances []models.MonthlyBalance, now time.Time) models.NetWorth {
	byMonth := make(map[string]float64, len(balances))
	for _, b := range balances {
		byMonth[b.MonthKey] = b.Balance
	}

	history := make([]models.NetWorthPoint, 12)
	value := assets.TotalAssets
	for i := 0; i < 12; i++ {
		month := now.AddDate(0, -i, 0)
		key := month.Format("2006-01")
		history[11-i] = models.NetWorthPoint{MonthKey: key, Value: round2(value)}
		value -= byMonth[key]
	}

	return models.NetWorth{
		Current: round2(assets.TotalAssets),
		Liquid:  round2(assets.TotalLiquidAssets),
		History: history,
	}
}

func buildDebtPlan(debt models.DebtSnapshot) models.DebtPlan {
	plan := models.DebtPlan{
		HasDebt:         debt.HasDebt(),
		TotalDebt:       debt.TotalDebt,
		MonthlyPayments: debt.MonthlyPayments,
	}
	if debt.MonthlyPayments > 0 {
		plan.MonthsToClear = round2(debt.TotalDebt / debt.MonthlyPayments)
	}
	return plan
}

// buildSubscriptions groups the window's recurring expenses by category.
func buildSubscriptions(transactions []models.Transaction, window Period) []models.Subscription {
	type bucket struct {
		total float64
		count int
	}
	byCategory := make(map[string]*bucket)

	for _, tx := range transactions {
		if tx.Type != models.TypeExpense || tx.Frequency != models.FrequencyRecurring {
			continue
		}
		if !window.Contains(tx.Date) {
			continue
		}
		name := tx.CategoryName
		if name == "" {
			name = "Other"
		}
		b, ok := byCategory[name]
		if !ok {
			b = &bucket{}
			byCategory[name] = b
		}
		b.total += tx.Amount
		b.count++
	}

	subscriptions := make([]models.Subscription, 0, len(byCategory))
	for name, b := range byCategory {
		subscriptions = append(subscriptions, models.Subscription{
			CategoryName: name,
			MonthlyCost:  round2(b.total / float64(window.Months)),
			Count:        b.count,
		})
	}
	sortSubscriptions(subscriptions)
	return subscriptions
}

func sortSubscriptions(subs []models.Subscription) {
	for i := 0; i < len(subs)-1; i++ {
		for j := i + 1; j < len(subs); j++ {
			if subs[j].MonthlyCost > subs[i].MonthlyCost {
				subs[i], subs[j] = subs[j], subs[i]
			}
		}
	}
}

// trailing returns the last n elements of a monthly balance series.
func trailing(balances []models.MonthlyBalance, n int) []models.MonthlyBalance {
	if len(balances) <= n {
		return balances
	}
	return balances[len(balances)-n:]
}
