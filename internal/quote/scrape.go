package quote

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"porterquote/internal/browser"
	"porterquote/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_client_wait_results = "client.wait-results"
	report_client_scrape_rows  = "client.scrape-rows"
)

func (c *Client) waitForResults(ctx context.Context, s browser.Session) *Error {
	ctx, span := tracer.Start(ctx, "step:wait_results")
	defer span.End()

	container := c.opts.Selectors.ResultsContainer
	err := waitFor(ctx, c.opts.ResultsTimeout, c.opts.PollInterval, func(ctx context.Context) (bool, error) {
		n, err := s.Count(ctx, container)
		return n > 0, err
	})
	if err == nil {
		return nil
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, "wait results")
	c.tel.ReportWarning(report_client_wait_results, container, err)

	// the lookup itself was still failing at the deadline
	if errors.Is(err, errWaitTimeout) && err != errWaitTimeout {
		return newError(
			CategoryScrapeTargetMissing, StepWaitResults, err,
			"could not look for results using %q", container,
		)
	}
	return newError(
		CategoryTimeout, StepWaitResults, err,
		"results did not appear within %s", c.opts.ResultsTimeout,
	)
}

func (c *Client) scrapeResults(ctx context.Context, s browser.Session) ([]RawRow, *Error) {
	ctx, span := tracer.Start(ctx, "step:scrape_results")
	defer span.End()

	readCtx, cancel := context.WithTimeout(ctx, c.opts.ElementTimeout)
	defer cancel()

	html, err := s.OuterHTML(readCtx, c.opts.Selectors.ResultsContainer)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read results")
		return nil, newError(
			CategoryScrapeTargetMissing, StepScrapeResults, err,
			"could not read the results panel",
		)
	}

	rows, skipped, err := ParseResults(html, c.opts.Selectors)
	if err != nil {
		return nil, newError(CategoryParse, StepScrapeResults, err, "could not parse the results panel")
	}
	for _, skip := range skipped {
		c.tel.ReportWarning(report_client_scrape_rows, CategoryParse, skip)
	}
	span.SetAttributes(
		attribute.Int("rows", len(rows)),
		attribute.Int("skipped", len(skipped)),
	)
	c.tel.ReportCount(report_client_scrape_rows, int64(len(rows)))
	return rows, nil
}

// ParseResults enumerates the vehicle rows inside the results panel html.
// Rows without a vehicle name are left out and described in skipped, a row
// missing its price or capacity is kept with that text empty.
func ParseResults(html string, sel Selectors) (rows []RawRow, skipped []error, err error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, nil, err
	}

	rows = []RawRow{}
	doc.Find(sel.ResultRow).Each(func(i int, row *goquery.Selection) {
		name := row.Find(sel.RowName).First()
		if name.Length() == 0 {
			skipped = append(skipped, fmt.Errorf("row %d has no %q", i, sel.RowName))
			return
		}
		rows = append(rows, RawRow{
			Name:     htmlutil.SelectionText(name),
			Price:    htmlutil.SelectionText(row.Find(sel.RowPrice).First()),
			Capacity: htmlutil.SelectionText(row.Find(sel.RowCapacity).First()),
		})
	})
	return rows, skipped, nil
}
