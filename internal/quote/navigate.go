package quote

import (
	"context"
	"errors"
	"fmt"

	"porterquote/internal/browser"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Step names a single interaction with the quote form.
type Step string

const (
	StepOpenPage          Step = "open_page"
	StepOpenCitySelector  Step = "open_city_selector"
	StepSelectCity        Step = "select_city"
	StepOpenEstimateForm  Step = "open_estimate_form"
	StepSelectServiceType Step = "select_service_type"
	StepFillPickup        Step = "fill_pickup"
	StepFillDrop          Step = "fill_drop"
	StepFillPhone         Step = "fill_phone"
	StepFillName          Step = "fill_name"
	StepSubmit            Step = "submit"
	StepWaitResults       Step = "wait_results"
	StepScrapeResults     Step = "scrape_results"
)

const report_client_navigate = "client.navigate"

type formStep struct {
	step   Step
	target string
	// minCount elements must match target before acting
	minCount int
	act      func(ctx context.Context, s browser.Session) error
}

func click(selector string) func(context.Context, browser.Session) error {
	return func(ctx context.Context, s browser.Session) error {
		return s.Click(ctx, selector)
	}
}

func fill(selector, value string) func(context.Context, browser.Session) error {
	return func(ctx context.Context, s browser.Session) error {
		return s.SetValue(ctx, selector, value)
	}
}

var errCityNotListed = errors.New("city is not listed on the site")

func formSteps(sel Selectors, req Request) []formStep {
	serviceIdx := req.ServiceType.index()

	return []formStep{
		{step: StepOpenCitySelector, target: sel.CitySelector, minCount: 1, act: click(sel.CitySelector)},
		{
			step:     StepSelectCity,
			target:   sel.CityOption,
			minCount: 1,
			act: func(ctx context.Context, s browser.Session) error {
				found, err := s.ClickText(ctx, sel.CityOption, req.City)
				if err != nil {
					return err
				}
				if !found {
					return fmt.Errorf("%w: %s", errCityNotListed, req.City)
				}
				return nil
			},
		},
		{step: StepOpenEstimateForm, target: sel.EstimateCard, minCount: 1, act: click(sel.EstimateCard)},
		{
			step:     StepSelectServiceType,
			target:   sel.ServiceRadio,
			minCount: serviceIdx + 1,
			act: func(ctx context.Context, s browser.Session) error {
				return s.ClickNth(ctx, sel.ServiceRadio, serviceIdx)
			},
		},
		{step: StepFillPickup, target: sel.PickupInput, minCount: 1, act: fill(sel.PickupInput, req.PickupAddress)},
		{step: StepFillDrop, target: sel.DropInput, minCount: 1, act: fill(sel.DropInput, req.DropAddress)},
		{step: StepFillPhone, target: sel.PhoneInput, minCount: 1, act: fill(sel.PhoneInput, req.Phone)},
		{step: StepFillName, target: sel.NameInput, minCount: 1, act: fill(sel.NameInput, req.Name)},
		{step: StepSubmit, target: sel.Submit, minCount: 1, act: click(sel.Submit)},
	}
}

func (c *Client) openPage(ctx context.Context, s browser.Session) *Error {
	ctx, span := tracer.Start(ctx, "step:open_page")
	defer span.End()

	loadCtx, cancel := context.WithTimeout(ctx, c.opts.PageLoadTimeout)
	defer cancel()

	err := s.Navigate(loadCtx, c.opts.BaseUrl)
	if err == nil {
		return nil
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, "navigate")

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(loadCtx.Err(), context.DeadlineExceeded) {
		return newError(
			CategoryTimeout, StepOpenPage, err,
			"%s did not load within %s", c.opts.BaseUrl, c.opts.PageLoadTimeout,
		)
	}
	if errors.Is(err, context.Canceled) {
		return newError(CategoryTimeout, StepOpenPage, err, "quote cancelled")
	}
	qerr := newError(CategoryEnvironment, StepOpenPage, err, "could not load %s", c.opts.BaseUrl)
	qerr.Suggestion = "check if the site is reachable from this machine"
	return qerr
}

func (c *Client) runStep(ctx context.Context, s browser.Session, fs formStep) *Error {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("step:%s", fs.step), trace.WithAttributes(
		attribute.String("selector", fs.target),
	))
	defer span.End()

	stepError := func(err error, format string, args ...any) *Error {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(fs.step))
		c.tel.ReportWarning(report_client_navigate, fs.step, fs.target, err)

		if errors.Is(err, context.Canceled) {
			return newError(CategoryTimeout, fs.step, err, "quote cancelled")
		}
		return newError(CategoryScrapeTargetMissing, fs.step, err, format, args...)
	}

	err := waitFor(ctx, c.opts.ElementTimeout, c.opts.PollInterval, func(ctx context.Context) (bool, error) {
		n, err := s.Count(ctx, fs.target)
		return n >= fs.minCount, err
	})
	if err != nil {
		return stepError(
			err, "could not find %q within %s while trying to %s",
			fs.target, c.opts.ElementTimeout, fs.step,
		)
	}

	actCtx, cancel := context.WithTimeout(ctx, c.opts.ElementTimeout)
	defer cancel()
	err = fs.act(actCtx, s)
	if err != nil {
		return stepError(err, "could not %s using %q", fs.step, fs.target)
	}
	c.tel.ReportDebug("step done", fs.step)
	return nil
}

// navigate drives the form from the landing page up to submission. There are
// no retries, the first step that fails ends the call.
func (c *Client) navigate(ctx context.Context, s browser.Session, req Request) *Error {
	if qerr := c.openPage(ctx, s); qerr != nil {
		return qerr
	}
	for _, fs := range formSteps(c.opts.Selectors, req) {
		if qerr := c.runStep(ctx, s, fs); qerr != nil {
			return qerr
		}
	}
	return nil
}
