package quote

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"porterquote/internal/browser"
)

// fakePage is an in-memory stand-in for the porter.in landing page.
type fakePage struct {
	mu sync.Mutex

	sel     Selectors
	counts  map[string]int
	cities  []string
	results string
	// hasResults makes the results container appear once the form is submitted.
	hasResults bool

	navigateErr error
	actErrs     map[string]error
	// countErrs makes the next n lookups of a selector fail, -1 fails them all.
	countErrs map[string]int
	panicOn     string

	submitted bool
	actions   []string
	values    map[string]string
	closed    int
}

func newFakePage(results string) *fakePage {
	sel := DefaultSelectors()
	p := &fakePage{
		sel:        sel,
		cities:     []string{"Bangalore", "Mumbai", "Delhi", "Chennai", "Hyderabad", "Pune"},
		results:    results,
		hasResults: true,
		actErrs:    map[string]error{},
		countErrs:  map[string]int{},
		values:     map[string]string{},
		counts: map[string]int{
			sel.CitySelector: 1,
			sel.CityOption:   6,
			sel.EstimateCard: 1,
			sel.ServiceRadio: 3,
			sel.PickupInput:  1,
			sel.DropInput:    1,
			sel.PhoneInput:   1,
			sel.NameInput:    1,
			sel.Submit:       1,
		},
	}
	return p
}

func (p *fakePage) record(action string) {
	p.actions = append(p.actions, action)
}

func (p *fakePage) check(selector string) error {
	if p.panicOn != "" && p.panicOn == selector {
		panic("page crashed")
	}
	return p.actErrs[selector]
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.record("navigate " + url)
	if errors.Is(p.navigateErr, context.DeadlineExceeded) {
		<-ctx.Done()
		return ctx.Err()
	}
	return p.navigateErr
}

func (p *fakePage) Count(ctx context.Context, selector string) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n := p.countErrs[selector]; n != 0 {
		if n > 0 {
			p.countErrs[selector] = n - 1
		}
		return 0, errors.New("Cannot find context with specified id")
	}
	if selector == p.sel.ResultsContainer {
		if p.submitted && p.hasResults {
			return 1, nil
		}
		return 0, nil
	}
	return p.counts[selector], nil
}

func (p *fakePage) Click(ctx context.Context, selector string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.check(selector); err != nil {
		return err
	}
	p.record("click " + selector)
	if selector == p.sel.Submit {
		p.submitted = true
	}
	return nil
}

func (p *fakePage) ClickNth(ctx context.Context, selector string, index int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.check(selector); err != nil {
		return err
	}
	p.record("click-nth " + selector + " " + string(rune('0'+index)))
	return nil
}

func (p *fakePage) ClickText(ctx context.Context, selector, text string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.check(selector); err != nil {
		return false, err
	}
	for _, city := range p.cities {
		if strings.Contains(strings.ToLower(city), strings.ToLower(text)) {
			p.record("click-text " + city)
			return true, nil
		}
	}
	return false, nil
}

func (p *fakePage) SetValue(ctx context.Context, selector, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.check(selector); err != nil {
		return err
	}
	p.values[selector] = value
	return nil
}

func (p *fakePage) OuterHTML(ctx context.Context, selector string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.check(selector); err != nil {
		return "", err
	}
	if selector == p.sel.ResultsContainer {
		return p.results, nil
	}
	return "<html><body>porter</body></html>", nil
}

func (p *fakePage) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed++
	return nil
}

func (p *fakePage) closeCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

type fakeOpener struct {
	page    *fakePage
	err     error
	opened  int
	options browser.Options
}

func (o *fakeOpener) Open(ctx context.Context, opts browser.Options) (browser.Session, error) {
	o.opened++
	o.options = opts
	if o.err != nil {
		return nil, o.err
	}
	return o.page, nil
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.PageLoadTimeout = 100 * time.Millisecond
	opts.ElementTimeout = 50 * time.Millisecond
	opts.ResultsTimeout = 50 * time.Millisecond
	opts.PollInterval = 5 * time.Millisecond
	return opts
}

type memoryOutput struct {
	files map[string]string
}

func (m *memoryOutput) Write(id string, contents string) {
	if m.files == nil {
		m.files = map[string]string{}
	}
	m.files[id] = contents
}

const resultsHTML = `
<div class="FareEstimateResult_container">
	<div class="FareEstimateResultVehicleCard_container__BdMav">
		<span class="FareEstimateResultVehicleCard_vehicle-name__d4107">3 Wheeler</span>
		<div class="FareEstimateResultVehicleCard_vehicle-fare__3YMOc"><p>₹585 - ₹615</p></div>
		<span class="VehicleCapacity_vehicle-capacity__P53Z0">500 kg</span>
	</div>
	<div class="FareEstimateResultVehicleCard_container__BdMav">
		<span class="FareEstimateResultVehicleCard_vehicle-name__d4107">Tata Ace</span>
		<div class="FareEstimateResultVehicleCard_vehicle-fare__3YMOc"><p>₹1,020 - ₹1,070</p></div>
		<span class="VehicleCapacity_vehicle-capacity__P53Z0">750 kg</span>
	</div>
	<div class="FareEstimateResultVehicleCard_container__BdMav">
		<span class="FareEstimateResultVehicleCard_vehicle-name__d4107">Eeco</span>
		<div class="FareEstimateResultVehicleCard_vehicle-fare__3YMOc"><p>Price on request</p></div>
		<span class="VehicleCapacity_vehicle-capacity__P53Z0">1 ton</span>
	</div>
</div>`
