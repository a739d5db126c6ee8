package backtest

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/advisordash/rebalancer/internal/clients/tiingo"
	"github.com/advisordash/rebalancer/internal/domain"
	"github.com/advisordash/rebalancer/internal/events"
	"github.com/advisordash/rebalancer/internal/modules/books"
	"github.com/advisordash/rebalancer/pkg/formulas"
)

// History fetches adjusted daily closes for a symbol.
type History interface {
	DailyHistory(symbol string, start, end time.Time) ([]tiingo.DailyBar, error)
}

// Service simulates an account's current target weights as a
// buy-and-hold basket over the lookback window and compares the curve
// to the benchmark.
type Service struct {
	accounts  *books.AccountRepository
	positions *books.PositionRepository
	history   History
	events    *events.Manager
	log       zerolog.Logger
}

// NewService creates a new backtest service
func NewService(
	accounts *books.AccountRepository,
	positions *books.PositionRepository,
	history History,
	eventManager *events.Manager,
	log zerolog.Logger,
) *Service {
	return &Service{
		accounts:  accounts,
		positions: positions,
		history:   history,
		events:    eventManager,
		log:       log.With().Str("service", "backtest").Logger(),
	}
}

// Run backtests an account's target weights. Bonds are excluded; their
// CUSIPs have no exchange price history. Weights are the stored target
// percentages, renormalized over the symbols actually simulated.
func (s *Service) Run(accountID string) (*Result, error) {
	account, err := s.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("account %s not found", accountID)
	}

	positions, err := s.positions.GetByAccount(accountID)
	if err != nil {
		return nil, err
	}

	symbols, weights := basketOf(positions)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("account %s has no weighted equity positions to backtest", accountID)
	}

	end := time.Now()
	start := end.AddDate(-lookbackYears, 0, 0)

	benchmark, err := s.history.DailyHistory(benchmarkSymbol, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch benchmark history: %w", err)
	}

	histories := make(map[string]map[string]float64, len(symbols))
	startPrices := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		bars, err := s.history.DailyHistory(symbol, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
		}

		byDate := make(map[string]float64, len(bars))
		for _, bar := range bars {
			byDate[bar.Date.Format("2006-01-02")] = bar.AdjClose
		}
		histories[symbol] = byDate
		startPrices[symbol] = bars[0].AdjClose
	}

	result := s.simulate(accountID, start, end, symbols, weights, benchmark, histories, startPrices)

	s.events.Emit(events.BacktestComplete, "backtest", map[string]interface{}{
		"account_id": accountID,
		"symbols":    len(symbols),
		"alpha":      result.Alpha,
	})

	return result, nil
}

// simulate walks the benchmark's trading days and accumulates both
// curves as percent return since day one.
func (s *Service) simulate(
	accountID string,
	start, end time.Time,
	symbols []string,
	weights map[string]float64,
	benchmark []tiingo.DailyBar,
	histories map[string]map[string]float64,
	startPrices map[string]float64,
) *Result {
	benchmarkStart := benchmark[0].AdjClose

	series := make([]Point, 0, len(benchmark))
	modelCurve := make([]float64, 0, len(benchmark))

	for _, day := range benchmark {
		date := day.Date.Format("2006-01-02")

		model := 0.0
		for _, symbol := range symbols {
			price, ok := histories[symbol][date]
			if !ok || startPrices[symbol] <= 0 {
				continue
			}
			model += (price/startPrices[symbol] - 1) * 100 * weights[symbol]
		}

		point := Point{
			Date:      date,
			Model:     model,
			Benchmark: (day.AdjClose/benchmarkStart - 1) * 100,
		}
		series = append(series, point)
		modelCurve = append(modelCurve, model)
	}

	final := series[len(series)-1]
	dailyDiffs := formulas.Diffs(modelCurve)

	// Rebuild an index level from the percent curve for drawdown.
	index := make([]float64, len(modelCurve))
	for i, v := range modelCurve {
		index[i] = 100 + v
	}

	return &Result{
		AccountID:       accountID,
		Start:           start,
		End:             end,
		Symbols:         symbols,
		Series:          series,
		ModelReturn:     final.Model,
		BenchmarkReturn: final.Benchmark,
		Alpha:           final.Model - final.Benchmark,
		Volatility:      formulas.AnnualizedVolatility(dailyDiffs),
		Sharpe:          formulas.SharpeRatio(dailyDiffs, 0),
		MaxDrawdown:     formulas.MaxDrawdown(index),
	}
}

// basketOf extracts the simulatable symbols and their normalized
// weights from an account's positions.
func basketOf(positions []domain.Position) ([]string, map[string]float64) {
	var symbols []string
	weights := make(map[string]float64)
	total := 0.0

	for _, pos := range positions {
		if pos.Kind == domain.KindBond || pos.TargetPct <= 0 {
			continue
		}
		if _, seen := weights[pos.Symbol]; !seen {
			symbols = append(symbols, pos.Symbol)
		}
		weights[pos.Symbol] += pos.TargetPct
		total += pos.TargetPct
	}

	if total <= 0 {
		return nil, nil
	}
	for symbol := range weights {
		weights[symbol] /= total
	}

	return symbols, weights
}
