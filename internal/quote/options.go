package quote

import (
	"time"

	"porterquote/internal/browser"

	"dario.cat/mergo"
)

// Selectors locates every element the quote flow touches. The defaults track
// porter.in, they can be overridden from config when the site layout moves.
type Selectors struct {
	CitySelector     string `json:"city_selector"`
	CityOption       string `json:"city_option"`
	EstimateCard     string `json:"estimate_card"`
	ServiceRadio     string `json:"service_radio"`
	PickupInput      string `json:"pickup_input"`
	DropInput        string `json:"drop_input"`
	PhoneInput       string `json:"phone_input"`
	NameInput        string `json:"name_input"`
	Submit           string `json:"submit"`
	ResultsContainer string `json:"results_container"`
	ResultRow        string `json:"result_row"`
	RowName          string `json:"row_name"`
	RowPrice         string `json:"row_price"`
	RowCapacity      string `json:"row_capacity"`
}

// DefaultSelectors matches the porter.in fare estimate flow.
func DefaultSelectors() Selectors {
	return Selectors{
		CitySelector:     ".CitySelector_city-selected-text__1dNz4",
		CityOption:       `[class^="CitySelectorModal_city-title"]`,
		EstimateCard:     ".EstimateCard_estimate-card__NgFIr",
		ServiceRadio:     ".FareEstimateRequirement_requirement-radio-button__oBz_y",
		PickupInput:      `input[placeholder="Enter pickup address"]`,
		DropInput:        `input[placeholder="Enter drop address"]`,
		PhoneInput:       ".FareEstimateForms_mobile-input__jy5wR",
		NameInput:        ".FareEstimateForms_name-input__n8xyD",
		Submit:           ".FormInput_submit__ea0jJ.FormInput_submit-enabled__DbSnE.FareEstimateForms_submit-container___lB5u",
		ResultsContainer: `[class^="FareEstimateResult_"]`,
		ResultRow:        ".FareEstimateResultVehicleCard_container__BdMav",
		RowName:          ".FareEstimateResultVehicleCard_vehicle-name__d4107",
		RowPrice:         ".FareEstimateResultVehicleCard_vehicle-fare__3YMOc p",
		RowCapacity:      ".VehicleCapacity_vehicle-capacity__P53Z0",
	}
}

const DefaultBaseUrl = "https://porter.in/"

// Options configures a Client.
type Options struct {
	BaseUrl  string
	Headless bool
	// PageLoadTimeout bounds loading the target page.
	PageLoadTimeout time.Duration
	// ElementTimeout bounds waiting for each form element.
	ElementTimeout time.Duration
	// ResultsTimeout bounds waiting for the results panel after submitting.
	ResultsTimeout time.Duration
	// PollInterval is how often a pending element is looked for again.
	PollInterval time.Duration
	UserAgent    string
	ExecPath     string
	RemoteURL    string
	Selectors    Selectors
}

// DefaultOptions mirrors the timeouts porter.in needs on a normal connection.
func DefaultOptions() Options {
	return Options{
		BaseUrl:         DefaultBaseUrl,
		Headless:        true,
		PageLoadTimeout: 30 * time.Second,
		ElementTimeout:  15 * time.Second,
		ResultsTimeout:  20 * time.Second,
		PollInterval:    250 * time.Millisecond,
		UserAgent:       browser.DefaultUserAgent,
		Selectors:       DefaultSelectors(),
	}
}

// withDefaults fills every zero field, including single selectors, from
// DefaultOptions. Non-positive durations count as unset. Headless is always
// taken from the defaults when false, use NewClient for a visible browser.
func (o Options) withDefaults() (Options, error) {
	for _, d := range []*time.Duration{&o.PageLoadTimeout, &o.ElementTimeout, &o.ResultsTimeout, &o.PollInterval} {
		if *d < 0 {
			*d = 0
		}
	}
	err := mergo.Merge(&o, DefaultOptions())
	return o, err
}

func (o Options) sessionOptions() browser.Options {
	return browser.Options{
		Headless:     o.Headless,
		UserAgent:    o.UserAgent,
		ExecPath:     o.ExecPath,
		RemoteURL:    o.RemoteURL,
		WindowWidth:  1920,
		WindowHeight: 1080,
		StartTimeout: o.PageLoadTimeout,
	}
}
