package models

// DebtSnapshot carries the debt figures consumed by the ratio calculator.
// There is no persisted debt ledger yet, so the store always returns the
// zero snapshot; the calculator still takes it as a parameter so a future
// debts service can be wired in without touching the formulas.
type DebtSnapshot struct {
	TotalDebt       float64 `json:"total_debt"`
	MonthlyPayments float64 `json:"monthly_payments"`
	MonthlyInterest float64 `json:"monthly_interest"`
}

// HasDebt reports whether any debt figure is populated.
func (d DebtSnapshot) HasDebt() bool {
	return d.TotalDebt > 0 || d.MonthlyPayments > 0
}

// ScoreComponents is the per-group breakdown of the composite score.
// Caps: savings & liquidity 30, debt 20, control 20, growth 15, behavior 15.
type ScoreComponents struct {
	SavingsAndLiquidity float64 `json:"savingsAndLiquidity"`
	Debt                float64 `json:"debt"`
	Control             float64 `json:"control"`
	Growth              float64 `json:"growth"`
	Behavior            float64 `json:"behavior"`
}

// FinancialMetrics is the full ratio/score object of an analysis run.
// Every percentage is rounded to 2 decimals; every ratio resolves a zero
// denominator to a defined zero or fallback, never NaN.
type FinancialMetrics struct {
	// Raw period totals
	TotalIncome     float64 `json:"totalIncome"`
	TotalExpenses   float64 `json:"totalExpenses"`
	Balance         float64 `json:"balance"`
	MonthlyIncome   float64 `json:"monthlyIncome"`
	MonthlyExpenses float64 `json:"monthlyExpenses"`

	// Liquidity
	TotalAssets        float64 `json:"totalAssets"`
	TotalLiquidAssets  float64 `json:"totalLiquidAssets"`
	LiquidityMonths    float64 `json:"liquidityMonths"`
	EmergencyFundRatio float64 `json:"emergencyFundRatio"`
	SafeToSpendDaily   float64 `json:"safeToSpendDaily"`

	// Debt (zero snapshot until a debt ledger exists)
	TotalDebt         float64 `json:"totalDebt"`
	DebtRatio         float64 `json:"debtRatio"`
	FinancialBurden   float64 `json:"financialBurden"`
	DebtToIncomeRatio float64 `json:"debtToIncomeRatio"`
	InterestOnIncome  float64 `json:"interestOnIncome"`
	MonthsToClearDebt float64 `json:"monthsToClearDebt"`

	// Expense structure
	FixedExpenses              float64 `json:"fixedExpenses"`
	VariableExpenses           float64 `json:"variableExpenses"`
	FixedExpensesPercentage    float64 `json:"fixedExpensesPercentage"`
	VariableExpensesPercentage float64 `json:"variableExpensesPercentage"`
	AntExpenses                float64 `json:"antExpenses"`
	AntExpensesPercentage      float64 `json:"antExpensesPercentage"`
	LeisureExpenses            float64 `json:"leisureExpenses"`
	LeisureExpensesPercentage  float64 `json:"leisureExpensesPercentage"`
	TopCategoryShare           float64 `json:"topCategoryShare"`
	ExpenseToIncomeRatio       float64 `json:"expenseToIncomeRatio"`

	// Growth
	SavingsRate            float64 `json:"savingsRate"`
	SavingsCapacity        float64 `json:"savingsCapacity"`
	ProjectedAnnualSavings float64 `json:"projectedAnnualSavings"`
	GoalFundingRate        float64 `json:"goalFundingRate"`

	// Stability / behavior
	ConsistencyScore     float64 `json:"consistencyScore"`
	ExpenseVolatility    float64 `json:"expenseVolatility"`
	RecurringIncomeShare float64 `json:"recurringIncomeShare"`
	AverageDailyIncome   float64 `json:"averageDailyIncome"`
	AverageDailyExpense  float64 `json:"averageDailyExpense"`

	// Composite score
	ScoreMoni  int             `json:"scoreMoni"`
	Components ScoreComponents `json:"scoreComponents"`
}

// MonthlyBalance is one closed calendar month of the ledger, derived on the
// fly for historical averaging. The in-progress month is never included.
type MonthlyBalance struct {
	MonthKey string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// HistoricalAverages are the trailing mean monthly balances over the three
// forecast horizons (completed months only).
type HistoricalAverages struct {
	Avg12       float64 `json:"avg12"`
	Avg60       float64 `json:"avg60"`
	Avg120      float64 `json:"avg120"`
	MonthsKnown int     `json:"monthsKnown"`
}

// ForecastPoint is one of the 120 forward months of the savings projection.
type ForecastPoint struct {
	Month        int     `json:"month"`
	Label        string  `json:"label"`
	Conservative float64 `json:"conservative"`
	Realistic    float64 `json:"realistic"`
	Optimistic   float64 `json:"optimistic"`
}

// GoalForecast is the probability estimate for the primary goal. Computable
// is false when avg12 <= 0 or the goal is already reached.
type GoalForecast struct {
	Computable   bool    `json:"computable"`
	GoalID       string  `json:"goal_id,omitempty"`
	GoalTitle    string  `json:"goal_title,omitempty"`
	Probability  int     `json:"probability,omitempty"`
	MonthsToGoal int     `json:"months_to_goal,omitempty"`
	ETA          string  `json:"eta,omitempty"`
	Remaining    float64 `json:"remaining,omitempty"`
}
