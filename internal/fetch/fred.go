package fetch

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/tomvannes/riskpulse/internal/contracts"
)

// fetchYieldSpread fetches the latest 10Y–2Y treasury spread from the
// FRED T10Y2Y series CSV. FRED reports missing observations as ".";
// the latest real observation wins.
func (c *Collector) fetchYieldSpread(ctx context.Context) (contracts.RawValue, error) {
	url := fmt.Sprintf("%s?id=T10Y2Y", c.cfg.Fetch.FredURL)

	body, err := c.http.GetBody(ctx, url)
	if err != nil {
		return contracts.Absent(), fmt.Errorf("FRED request failed: %w", err)
	}

	reader := csv.NewReader(strings.NewReader(string(body)))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return contracts.Absent(), fmt.Errorf("FRED CSV malformed: %w", err)
	}

	// Walk backwards past placeholder observations.
	for i := len(records) - 1; i >= 1; i-- {
		if len(records[i]) < 2 {
			continue
		}
		raw := strings.TrimSpace(records[i][1])
		if raw == "" || raw == "." {
			continue
		}

		spread, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			continue
		}
		return contracts.Num(spread), nil
	}

	return contracts.Absent(), fmt.Errorf("no T10Y2Y observations in FRED response")
}
