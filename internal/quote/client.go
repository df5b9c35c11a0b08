package quote

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"porterquote/internal/browser"
	"porterquote/internal/components/assert"
	"porterquote/internal/components/chrono"
	"porterquote/internal/components/telemetry"
	tracing "porterquote/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	report_client_get_quote     = "client.get-quote"
	report_client_open_session  = "client.open-session"
	report_client_close_session = "client.close-session"
	report_client_dump_page     = "client.dump-page"
)

// Client fetches quotes from porter.in, one browser session per call.
type Client struct {
	opts   Options
	opener browser.Opener
	http   *resty.Client
	time   chrono.API
	tel    telemetry.API
	dump   telemetry.MessageOutput
}

func NewClient(opts Options, opener browser.Opener, clock chrono.API, tel telemetry.API) *Client {
	assert.NotNil(opener)
	assert.NotNil(clock)
	assert.NotNil(tel)
	assert.NotEmptyStr(opts.BaseUrl)
	assert.Positive(opts.ElementTimeout)
	assert.Positive(opts.ResultsTimeout)

	tel = telemetry.NewScopedAPI("quote", tel)

	http := resty.New()
	http.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(http.GetClient().Transport)
	http.SetHeader("user-agent", opts.UserAgent)
	http.SetTimeout(opts.PageLoadTimeout)
	tracing.TraceResty(http, "internal/quote")

	c := &Client{
		opts:   opts,
		opener: opener,
		http:   http,
		time:   clock,
		tel:    tel,
	}
	telemetry.InstrumentResty(http, tel, dumpOutput{client: c})
	return c
}

// dumpOutput forwards to the client's dump output as it is at write time.
type dumpOutput struct {
	client *Client
}

func (d dumpOutput) Write(id string, contents string) {
	if d.client.dump != nil {
		d.client.dump.Write(id, contents)
	}
}

// SetDumpOutput makes the client write the page html to out whenever a call
// fails after the page was opened.
func (c *Client) SetDumpOutput(out telemetry.MessageOutput) {
	c.dump = out
}

func (c *Client) Options() Options {
	return c.opts
}

func (c *Client) SupportedCities() []string {
	return SupportedCities()
}

func (c *Client) SupportedServiceTypes() []ServiceType {
	return SupportedServiceTypes()
}

// quoteCall tracks one GetQuote call through its states.
type quoteCall struct {
	id      string
	state   State
	started time.Time
	span    trace.Span
	tel     telemetry.API
}

func (q *quoteCall) transition(next State) {
	q.tel.ReportDebug("quote state", q.id, q.state.String(), next.String())
	q.span.AddEvent(next.String())
	q.state = next
}

func (q *quoteCall) fail(err *Error) Result {
	q.transition(StateFailed)
	return Result{Failure: err}
}

// GetQuote runs the full flow for req. It never panics and never returns
// an error, every failure is carried in the Result.
func (c *Client) GetQuote(ctx context.Context, req Request) (result Result) {
	call := &quoteCall{
		id:      uuid.NewString(),
		state:   StateIdle,
		started: time.Now(),
		tel:     c.tel,
	}
	ctx, call.span = tracer.Start(ctx, "client:GetQuote", trace.WithAttributes(
		attribute.String("request_id", call.id),
		attribute.String("city", req.City),
		attribute.String("service_type", string(req.ServiceType)),
	))
	defer call.span.End()

	defer func() {
		if r := recover(); r != nil {
			category := call.state.failureCategory()
			err := newError(
				category, "", fmt.Errorf("panic: %v", r),
				"unexpected failure while %s", call.state,
			)
			c.tel.ReportBroken(report_client_get_quote, call.id, err, string(debug.Stack()))
			result = call.fail(err)
		}
		c.record(ctx, call, result)
	}()

	call.transition(StateValidating)
	validated, err := Validate(req)
	if err != nil {
		qerr := AsError(err)
		if qerr == nil {
			qerr = newError(CategoryValidation, "", err, "invalid request")
		}
		return call.fail(qerr)
	}

	call.transition(StateSessionStarting)
	session, err := c.opener.Open(ctx, c.opts.sessionOptions())
	if err != nil {
		c.tel.ReportBroken(report_client_open_session, call.id, err)
		return call.fail(newError(CategoryEnvironment, "", err, "could not start a browser session"))
	}
	defer c.closeSession(call, session)

	call.transition(StateNavigating)
	if qerr := c.navigate(ctx, session, validated); qerr != nil {
		c.dumpPage(ctx, call, session, qerr)
		return call.fail(qerr)
	}

	call.transition(StateWaitingForResults)
	if qerr := c.waitForResults(ctx, session); qerr != nil {
		c.dumpPage(ctx, call, session, qerr)
		return call.fail(qerr)
	}

	call.transition(StateScraping)
	rows, qerr := c.scrapeResults(ctx, session)
	if qerr != nil {
		c.dumpPage(ctx, call, session, qerr)
		return call.fail(qerr)
	}

	call.transition(StateNormalizing)
	quotes := make([]VehicleQuote, 0, len(rows))
	for _, row := range rows {
		quotes = append(quotes, NormalizeRow(row))
	}

	call.transition(StateDone)
	return Result{Success: &Success{
		Request:   validated,
		Quotes:    quotes,
		Timestamp: c.time.Now(),
	}}
}

func (c *Client) closeSession(call *quoteCall, session browser.Session) {
	err := session.Close()
	if err != nil {
		c.tel.ReportWarning(report_client_close_session, call.id, err)
	}
}

func (c *Client) dumpPage(ctx context.Context, call *quoteCall, session browser.Session, qerr *Error) {
	if c.dump == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	html, err := session.OuterHTML(ctx, "html")
	if err != nil {
		c.tel.ReportWarning(report_client_dump_page, call.id, err)
		return
	}
	step := string(qerr.Step)
	if step == "" {
		step = string(qerr.Category)
	}
	c.dump.Write(fmt.Sprintf("page-%s-%s.html", call.id, step), html)
}

func (c *Client) record(ctx context.Context, call *quoteCall, result Result) {
	outcome := "success"
	if result.Failure != nil {
		outcome = string(result.Failure.Category)
		call.span.RecordError(result.Failure)
		call.span.SetStatus(codes.Error, result.Failure.Message)
		c.tel.ReportWarning(report_client_get_quote, call.id, result.Failure)
	} else if result.Success != nil {
		call.span.SetAttributes(attribute.Int("quotes", len(result.Success.Quotes)))
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	quoteCounter.Add(ctx, 1, attrs)
	quoteDuration.Record(ctx, time.Since(call.started).Seconds(), attrs)
}

// Ping checks that the quote page answers over plain http.
func (c *Client) Ping(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:Ping")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		Get(c.opts.BaseUrl)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("reach %s: %w", c.opts.BaseUrl, err)
	}
	span.SetAttributes(attribute.Int("status", res.StatusCode()))
	if res.StatusCode() >= 500 {
		err := fmt.Errorf("reach %s: status %s", c.opts.BaseUrl, res.Status())
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// GetQuote builds a Client backed by a local Chrome and runs one quote call.
// Zero fields of opts fall back to DefaultOptions and an empty service type
// means trucks.
func GetQuote(ctx context.Context, opts Options, req Request) Result {
	opts, err := opts.withDefaults()
	if err != nil {
		return Result{Failure: newError(CategoryEnvironment, "", err, "invalid client options")}
	}
	if req.ServiceType == "" {
		req.ServiceType = ServiceTrucks
	}

	clock, _ := chrono.NewStandardImpl()
	tel := telemetry.SlogAPI{}
	client := NewClient(opts, browser.NewChromeOpener(tel), clock, tel)
	return client.GetQuote(ctx, req)
}
