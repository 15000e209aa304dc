package fetch

import (
	"context"
	"fmt"

	"github.com/tomvannes/riskpulse/internal/contracts"
)

// quoteSummaryResponse mirrors the Yahoo Finance quoteSummary payload
// down to the single field we read.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			SummaryDetail struct {
				TrailingPE struct {
					Raw float64 `json:"raw"`
				} `json:"trailingPE"`
			} `json:"summaryDetail"`
		} `json:"result"`
	} `json:"quoteSummary"`
}

// chartResponse mirrors the Yahoo Finance chart payload.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
	} `json:"chart"`
}

// fetchTrailingPE fetches the NVIDIA trailing P/E ratio.
func (c *Collector) fetchTrailingPE(ctx context.Context) (contracts.RawValue, error) {
	url := fmt.Sprintf("%s/v10/finance/quoteSummary/NVDA?modules=summaryDetail", c.cfg.Fetch.YahooURL)

	var resp quoteSummaryResponse
	if err := c.http.GetJSON(ctx, url, &resp); err != nil {
		return contracts.Absent(), fmt.Errorf("quote summary request failed: %w", err)
	}

	if len(resp.QuoteSummary.Result) == 0 {
		return contracts.Absent(), fmt.Errorf("quote summary empty for NVDA")
	}

	pe := resp.QuoteSummary.Result[0].SummaryDetail.TrailingPE.Raw
	if pe == 0 {
		return contracts.Absent(), fmt.Errorf("trailing P/E not reported")
	}

	return contracts.Num(pe), nil
}

// fetchVIX fetches the latest VIX close over the past five days.
func (c *Collector) fetchVIX(ctx context.Context) (contracts.RawValue, error) {
	closes, err := c.fetchCloses(ctx, "^VIX", "5d")
	if err != nil {
		return contracts.Absent(), err
	}

	latest, ok := lastClose(closes)
	if !ok {
		return contracts.Absent(), fmt.Errorf("no VIX closes in window")
	}

	return contracts.Num(latest), nil
}

// fetchDefenseTrend fetches the one-month percentage change of the
// ITA defense ETF, a proxy for global defense spending momentum.
func (c *Collector) fetchDefenseTrend(ctx context.Context) (contracts.RawValue, error) {
	closes, err := c.fetchCloses(ctx, "ITA", "1mo")
	if err != nil {
		return contracts.Absent(), err
	}

	first, okFirst := firstClose(closes)
	last, okLast := lastClose(closes)
	if !okFirst || !okLast || first == 0 {
		return contracts.Absent(), fmt.Errorf("not enough ITA closes in window")
	}

	change := (last - first) / first * 100
	return contracts.Num(change), nil
}

// fetchCloses fetches daily closes from the Yahoo chart API.
func (c *Collector) fetchCloses(ctx context.Context, symbol, window string) ([]*float64, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d", c.cfg.Fetch.YahooURL, symbol, window)

	var resp chartResponse
	if err := c.http.GetJSON(ctx, url, &resp); err != nil {
		return nil, fmt.Errorf("chart request failed for %s: %w", symbol, err)
	}

	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("chart response empty for %s", symbol)
	}

	return resp.Chart.Result[0].Indicators.Quote[0].Close, nil
}

func firstClose(closes []*float64) (float64, bool) {
	for _, v := range closes {
		if v != nil {
			return *v, true
		}
	}
	return 0, false
}

func lastClose(closes []*float64) (float64, bool) {
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] != nil {
			return *closes[i], true
		}
	}
	return 0, false
}
