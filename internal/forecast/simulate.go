package forecast

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/theirongolddev/cashcast/internal/model"
)

// SimConfig controls the Monte Carlo simulation.
type SimConfig struct {
	HorizonDays int
	Runs        int     // simulation count; more runs, tighter bands
	Seed        uint64  // base seed; per-run seeds derive from it
	NoiseScale  float64 // scales the daily discretionary perturbation
}

// DefaultSeed is the base seed used when the caller has no preference.
// Any fixed value works; forecasts only need to be reproducible, not
// unpredictable.
const DefaultSeed = 0x5AFE_CA5B

// Simulate produces the percentile-banded forecast: one ForecastDay per
// horizon day, dates contiguous starting tomorrow. Runs execute on a
// worker pool; each run's seed depends only on its index, so the output
// is deterministic regardless of scheduling.
func Simulate(
	accounts []model.Account,
	projections []model.Projection,
	patterns Patterns,
	today time.Time,
	cfg SimConfig,
) []model.ForecastDay {
	if cfg.HorizonDays <= 0 {
		return nil
	}
	if cfg.Runs <= 0 {
		cfg.Runs = 300
	}

	start := model.TotalBalance(accounts)

	// Index projections by day offset from today. Offset 0 is today
	// itself; forecast days begin at offset 1.
	byOffset := make(map[int][]model.Projection)
	for _, p := range projections {
		off := int(p.Date.Sub(today).Hours() / 24)
		byOffset[off] = append(byOffset[off], p)
	}

	// results[run][day]
	results := make([][]float64, cfg.Runs)

	workers := runtime.NumCPU()
	if workers > cfg.Runs {
		workers = cfg.Runs
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for run := range jobs {
				results[run] = simulateRun(start, byOffset, patterns, cfg, run)
			}
		}()
	}
	for run := 0; run < cfg.Runs; run++ {
		jobs <- run
	}
	close(jobs)
	wg.Wait()

	shares := accountShares(accounts, start)

	days := make([]model.ForecastDay, cfg.HorizonDays)
	column := make([]float64, cfg.Runs)
	for d := 0; d < cfg.HorizonDays; d++ {
		for run := 0; run < cfg.Runs; run++ {
			column[run] = results[run][d]
		}
		sort.Float64s(column)

		p10 := column[percentileIndex(cfg.Runs, 0.10)]
		p50 := column[percentileIndex(cfg.Runs, 0.50)]
		p90 := column[percentileIndex(cfg.Runs, 0.90)]

		bands := make([]model.AccountBand, len(accounts))
		for i, a := range accounts {
			bands[i] = model.AccountBand{
				AccountID: a.ID,
				P10:       p10 * shares[i],
				P50:       p50 * shares[i],
				P90:       p90 * shares[i],
			}
		}

		days[d] = model.ForecastDay{
			Date:     today.AddDate(0, 0, d+1),
			P10Total: p10,
			P50Total: p50,
			P90Total: p90,
			Accounts: bands,
		}
	}

	return days
}

// simulateRun walks one randomized balance path across the horizon.
func simulateRun(start float64, byOffset map[int][]model.Projection, patterns Patterns, cfg SimConfig, run int) []float64 {
	rng := SeedForRun(cfg.Seed, run)
	path := make([]float64, cfg.HorizonDays)

	balance := start
	for d := 0; d < cfg.HorizonDays; d++ {
		due := byOffset[d+1]
		if d == 0 {
			// Occurrences dated today land on the first forecast day.
			due = append(byOffset[0], due...)
		}
		for _, p := range due {
			var z float64
			z, rng = rng.Norm()
			balance += p.Amount + z*(1-p.Confidence)*abs(p.Amount)
		}

		var z float64
		z, rng = rng.Norm()
		balance += patterns.DailyMean + z*patterns.DailyStdDev*cfg.NoiseScale

		path[d] = balance
	}
	return path
}

// accountShares returns each account's proportional share of the starting
// balance, or an equal split when the total is zero.
func accountShares(accounts []model.Account, total float64) []float64 {
	shares := make([]float64, len(accounts))
	if len(accounts) == 0 {
		return shares
	}
	if total == 0 {
		for i := range shares {
			shares[i] = 1 / float64(len(accounts))
		}
		return shares
	}
	for i, a := range accounts {
		shares[i] = a.Balance / total
	}
	return shares
}

func percentileIndex(n int, p float64) int {
	idx := int(float64(n) * p)
	if idx >= n {
		idx = n - 1
	}
	return idx
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
