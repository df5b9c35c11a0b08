package quote

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResultJSON(t *testing.T) {
	success := Result{Success: &Success{
		Request: Request{
			Name:          "Asha",
			Phone:         "9876543210",
			PickupAddress: "MG Road",
			DropAddress:   "Whitefield",
			City:          "Bangalore",
			ServiceType:   ServiceTrucks,
		},
		Quotes: []VehicleQuote{{
			VehicleName: "Eeco",
			PriceRange:  "Price on request",
			Capacity:    "1 ton",
			CapacityKg:  intPtr(1000),
		}},
		Timestamp: completedAt,
	}}

	out, err := json.Marshal(success)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"success": true,
		"user_name": "Asha",
		"user_phone": "9876543210",
		"pickup_address": "MG Road",
		"drop_address": "Whitefield",
		"city": "Bangalore",
		"service_type": "trucks",
		"quotes": [{
			"vehicle_name": "Eeco",
			"price_range": "Price on request",
			"min_price": null,
			"max_price": null,
			"capacity": "1 ton",
			"capacity_kg": 1000
		}],
		"timestamp": "2024-03-14 16:30:05"
	}`, string(out))

	empty := Result{Success: &Success{Request: success.Success.Request, Timestamp: completedAt}}
	out, err = json.Marshal(empty)
	require.NoError(t, err)
	require.Contains(t, string(out), `"quotes":[]`)

	failure := Result{Failure: newError(CategoryScrapeTargetMissing, StepSubmit, nil, "could not find the submit button")}
	out, err = json.Marshal(failure)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"success": false,
		"error": "scrape_target_missing",
		"details": "could not find the submit button",
		"suggestion": "the porter.in page layout may have changed, check the selectors for the failed step",
		"step": "submit"
	}`, string(out))
}

func TestStateFailureCategory(t *testing.T) {
	table := []struct {
		state    State
		expected Category
	}{
		{state: StateValidating, expected: CategoryValidation},
		{state: StateSessionStarting, expected: CategoryEnvironment},
		{state: StateNavigating, expected: CategoryScrapeTargetMissing},
		{state: StateWaitingForResults, expected: CategoryTimeout},
		{state: StateScraping, expected: CategoryParse},
		{state: StateIdle, expected: CategoryEnvironment},
	}
	for _, row := range table {
		require.Equal(t, row.expected, row.state.failureCategory(), row.state.String())
	}
	require.True(t, StateDone.Terminal())
	require.False(t, StateScraping.Terminal())
}
