package fetch

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tomvannes/riskpulse/internal/contracts"
)

// fetchFundFlows scrapes the AI ETF channel page and reduces it to the
// Inflows/Outflows vocabulary the classifier understands. Inflows
// wins when the page mentions both. A page mentioning neither resolves
// absent: the signal's Unknown policy keeps it out of the score rather
// than guessing a direction.
func (c *Collector) fetchFundFlows(ctx context.Context) (contracts.RawValue, error) {
	body, err := c.http.GetBody(ctx, c.cfg.Fetch.ETFFlowsURL)
	if err != nil {
		return contracts.Absent(), fmt.Errorf("ETF flows request failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return contracts.Absent(), fmt.Errorf("ETF flows page unparseable: %w", err)
	}

	text := strings.ToLower(doc.Find("body").Text())
	switch {
	case strings.Contains(text, "inflows"):
		return contracts.Cat("Inflows"), nil
	case strings.Contains(text, "outflows"):
		return contracts.Cat("Outflows"), nil
	default:
		return contracts.Absent(), fmt.Errorf("no flow keyword on ETF page")
	}
}
