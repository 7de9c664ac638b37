package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/rileyhilliard/nerdminer/internal/network"
	"github.com/rileyhilliard/nerdminer/internal/render"
)

// PriceCheck fetches the spot price once.
type PriceCheck struct {
	Source  network.Source
	Timeout time.Duration
}

func (c *PriceCheck) Name() string     { return "price_endpoint" }
func (c *PriceCheck) Category() string { return CategoryNetwork }

func (c *PriceCheck) Run() CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	start := time.Now()
	price, err := c.Source.FetchSpotPriceUSD(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Price endpoint unavailable: %v", err),
			Suggestion: "The dashboard still runs and shows $0 until the price loads",
		}
	}
	return CheckResult{
		Name:    c.Name(),
		Status:  StatusPass,
		Message: fmt.Sprintf("BTC price %s (%s)", render.FormatPrice(price), formatLatency(time.Since(start))),
	}
}

// ChainCheck fetches block height and difficulty once.
type ChainCheck struct {
	Source  network.Source
	Timeout time.Duration
}

func (c *ChainCheck) Name() string     { return "chain_endpoint" }
func (c *ChainCheck) Category() string { return CategoryNetwork }

func (c *ChainCheck) Run() CheckResult {
	ctx, cancel := context.WithTimeout(context.Background(), c.Timeout)
	defer cancel()

	start := time.Now()
	height, difficulty, err := c.Source.FetchDifficultyAndHeight(ctx)
	if err != nil {
		return CheckResult{
			Name:       c.Name(),
			Status:     StatusWarn,
			Message:    fmt.Sprintf("Chain endpoints unavailable: %v", err),
			Suggestion: "Check network.height_url and network.difficulty_url",
		}
	}
	return CheckResult{
		Name:   c.Name(),
		Status: StatusPass,
		Message: fmt.Sprintf("Block %s, difficulty %s (%s)",
			render.FormatHeight(height),
			network.FormatDifficulty(difficulty),
			formatLatency(time.Since(start))),
	}
}

func formatLatency(d time.Duration) string {
	if d < time.Millisecond {
		return "<1ms"
	}
	return d.Round(time.Millisecond).String()
}
