package quote

import (
	"encoding/json"
	"slices"
	"strings"
	"time"
)

// ServiceType is the category of vehicle a quote is requested for.
type ServiceType string

// Order matches the radio buttons on the fare estimate form.
const (
	ServiceTwoWheelers      ServiceType = "two_wheelers"
	ServiceTrucks           ServiceType = "trucks"
	ServicePackersAndMovers ServiceType = "packers_and_movers"
)

var serviceTypes = []ServiceType{
	ServiceTwoWheelers,
	ServiceTrucks,
	ServicePackersAndMovers,
}

var supportedCities = []string{
	"Bangalore",
	"Mumbai",
	"Delhi",
	"Chennai",
	"Hyderabad",
	"Pune",
	"Ahmedabad",
	"Kolkata",
}

// SupportedServiceTypes returns a copy of the service types porter.in accepts.
func SupportedServiceTypes() []ServiceType {
	return slices.Clone(serviceTypes)
}

// SupportedCities returns a copy of the cities quotes can be requested in.
func SupportedCities() []string {
	return slices.Clone(supportedCities)
}

// Valid reports whether s is one of the supported service types.
func (s ServiceType) Valid() bool {
	return s.index() >= 0
}

func (s ServiceType) index() int {
	return slices.Index(serviceTypes, s)
}

// LookupCity matches city case-insensitively and returns the canonical spelling.
func LookupCity(city string) (string, bool) {
	city = strings.TrimSpace(city)
	for _, c := range supportedCities {
		if strings.EqualFold(c, city) {
			return c, true
		}
	}
	return "", false
}

// Request holds everything needed to fill the fare estimate form.
type Request struct {
	Name          string      `json:"user_name" validate:"notblank"`
	Phone         string      `json:"user_phone" validate:"phone10"`
	PickupAddress string      `json:"pickup_address" validate:"notblank"`
	DropAddress   string      `json:"drop_address" validate:"notblank"`
	City          string      `json:"city" validate:"city"`
	ServiceType   ServiceType `json:"service_type" validate:"service_type"`
}

// VehicleQuote is one row of the results panel. Numeric fields are nil when
// the corresponding display text could not be parsed.
type VehicleQuote struct {
	VehicleName string `json:"vehicle_name"`
	PriceRange  string `json:"price_range"`
	MinPrice    *int   `json:"min_price"`
	MaxPrice    *int   `json:"max_price"`
	Capacity    string `json:"capacity"`
	CapacityKg  *int   `json:"capacity_kg"`
}

// TimestampLayout is how completion times are rendered in results.
const TimestampLayout = "2006-01-02 15:04:05"

// Success is the payload of a quote call that reached the results panel.
type Success struct {
	Request
	Quotes    []VehicleQuote
	Timestamp time.Time
}

// Result is either a Success or a Failure, never both.
type Result struct {
	Success *Success
	Failure *Error
}

// OK reports whether the call produced quotes.
func (r Result) OK() bool {
	return r.Success != nil
}

type successJSON struct {
	Success bool `json:"success"`
	Request
	Quotes    []VehicleQuote `json:"quotes"`
	Timestamp string         `json:"timestamp"`
}

type failureJSON struct {
	Success    bool     `json:"success"`
	Error      Category `json:"error"`
	Details    string   `json:"details"`
	Suggestion string   `json:"suggestion,omitempty"`
	Step       Step     `json:"step,omitempty"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	if r.Success != nil {
		quotes := r.Success.Quotes
		if quotes == nil {
			quotes = []VehicleQuote{}
		}
		return json.Marshal(successJSON{
			Success:   true,
			Request:   r.Success.Request,
			Quotes:    quotes,
			Timestamp: r.Success.Timestamp.Format(TimestampLayout),
		})
	}

	failure := r.Failure
	if failure == nil {
		failure = &Error{Category: CategoryEnvironment, Message: "empty result"}
	}
	return json.Marshal(failureJSON{
		Success:    false,
		Error:      failure.Category,
		Details:    failure.Message,
		Suggestion: failure.Suggestion,
		Step:       failure.Step,
	})
}
