package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"porterquote/internal/components/telemetry"

	"github.com/chromedp/chromedp"
)

const (
	report_opener_open   = "opener.open"
	report_session_close = "session.close"
)

// ChromeOpener starts sessions with chromedp.
type ChromeOpener struct {
	tel telemetry.API
}

func NewChromeOpener(tel telemetry.API) ChromeOpener {
	return ChromeOpener{tel: telemetry.NewScopedAPI("browser", tel)}
}

func allocatorOptions(opts Options) []chromedp.ExecAllocatorOption {
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	width, height := opts.WindowWidth, opts.WindowHeight
	if width <= 0 || height <= 0 {
		width, height = 1920, 1080
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(width, height),
		chromedp.UserAgent(userAgent),
	)
	if !opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}
	return allocOpts
}

func (o ChromeOpener) Open(ctx context.Context, opts Options) (Session, error) {
	// the session outlives the caller's step deadlines, it ends on Close
	parent := context.WithoutCancel(ctx)

	var allocCtx context.Context
	var allocCancel context.CancelFunc
	if opts.RemoteURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(parent, opts.RemoteURL)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(parent, allocatorOptions(opts)...)
	}
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	startTimeout := opts.StartTimeout
	if startTimeout <= 0 {
		startTimeout = 30 * time.Second
	}
	s := &chromeSession{
		ctx: tabCtx,
		cancel: func() {
			tabCancel()
			allocCancel()
		},
		tel: o.tel,
	}

	err := s.start(ctx, startTimeout)
	if err != nil {
		s.cancel()
		o.tel.ReportBroken(report_opener_open, err, opts.RemoteURL != "")
		return nil, fmt.Errorf("start browser: %w", err)
	}
	return s, nil
}

type chromeSession struct {
	ctx    context.Context
	cancel context.CancelFunc
	tel    telemetry.API

	closeOnce sync.Once
}

// start launches the browser. The first Run must be given the tab context
// itself, a derived context would tie the browser process to its deadline.
func (s *chromeSession) start(ctx context.Context, timeout time.Duration) error {
	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(s.ctx)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		return fmt.Errorf("browser did not start within %s", timeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run executes actions on the tab while honoring ctx's deadline and cancellation.
func (s *chromeSession) run(ctx context.Context, actions ...chromedp.Action) error {
	runCtx, cancel := context.WithCancel(s.ctx)
	defer cancel()
	if deadline, ok := ctx.Deadline(); ok {
		var cancelDeadline context.CancelFunc
		runCtx, cancelDeadline = context.WithDeadline(runCtx, deadline)
		defer cancelDeadline()
	}
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func jsString(s string) string {
	encoded, _ := json.Marshal(s)
	return string(encoded)
}

func (s *chromeSession) Navigate(ctx context.Context, url string) error {
	return s.run(ctx, chromedp.Navigate(url))
}

func (s *chromeSession) Count(ctx context.Context, selector string) (int, error) {
	var n int
	err := s.run(ctx, chromedp.Evaluate(
		fmt.Sprintf(`document.querySelectorAll(%s).length`, jsString(selector)),
		&n,
	))
	return n, err
}

func (s *chromeSession) Click(ctx context.Context, selector string) error {
	return s.ClickNth(ctx, selector, 0)
}

const clickNthScript = `(() => {
	const els = document.querySelectorAll(%s);
	if (els.length <= %d) {
		return false;
	}
	els[%d].scrollIntoView({block: "center"});
	els[%d].click();
	return true;
})()`

func (s *chromeSession) ClickNth(ctx context.Context, selector string, index int) error {
	var clicked bool
	err := s.run(ctx, chromedp.Evaluate(
		fmt.Sprintf(clickNthScript, jsString(selector), index, index, index),
		&clicked,
	))
	if err != nil {
		return err
	}
	if !clicked {
		return fmt.Errorf("no element %d matching %q", index, selector)
	}
	return nil
}

const clickTextScript = `(() => {
	const needle = %s.toLowerCase();
	for (const el of document.querySelectorAll(%s)) {
		if ((el.textContent || "").toLowerCase().includes(needle)) {
			el.scrollIntoView({block: "center"});
			el.click();
			return true;
		}
	}
	return false;
})()`

func (s *chromeSession) ClickText(ctx context.Context, selector, text string) (bool, error) {
	var found bool
	err := s.run(ctx, chromedp.Evaluate(
		fmt.Sprintf(clickTextScript, jsString(text), jsString(selector)),
		&found,
	))
	return found, err
}

func (s *chromeSession) SetValue(ctx context.Context, selector, value string) error {
	return s.run(
		ctx,
		chromedp.Clear(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, value, chromedp.ByQuery),
	)
}

func (s *chromeSession) OuterHTML(ctx context.Context, selector string) (string, error) {
	var html string
	err := s.run(ctx, chromedp.OuterHTML(selector, &html, chromedp.ByQuery))
	return html, err
}

func (s *chromeSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		err = chromedp.Cancel(s.ctx)
		s.cancel()
		if err != nil {
			s.tel.ReportWarning(report_session_close, err)
		}
	})
	return err
}
