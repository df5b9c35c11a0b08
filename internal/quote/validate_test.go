package quote

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	table := []struct {
		name       string
		modify     func(r *Request)
		message    string
		suggestion string
	}{
		{
			name:    "short phone",
			modify:  func(r *Request) { r.Phone = "98765" },
			message: "phone must be exactly 10 digits",
		},
		{
			name:    "phone with country code",
			modify:  func(r *Request) { r.Phone = "+919876543210" },
			message: "phone must be exactly 10 digits",
		},
		{
			name:    "phone with spaces",
			modify:  func(r *Request) { r.Phone = "98765 43210" },
			message: "phone must be exactly 10 digits",
		},
		{
			name:    "phone with letters",
			modify:  func(r *Request) { r.Phone = "98765abcde" },
			message: "phone must be exactly 10 digits",
		},
		{
			name:       "unsupported city",
			modify:     func(r *Request) { r.City = "Atlantis" },
			message:    "city not supported",
			suggestion: "verify city spelling, supported cities are Bangalore, Mumbai, Delhi, Chennai, Hyderabad, Pune, Ahmedabad, Kolkata",
		},
		{
			name:       "misspelled city",
			modify:     func(r *Request) { r.City = "Banglore" },
			message:    "city not supported",
			suggestion: "verify city spelling, did you mean Bangalore?",
		},
		{
			name:       "unknown service type",
			modify:     func(r *Request) { r.ServiceType = "helicopters" },
			message:    "service_type must be one of {two_wheelers, trucks, packers_and_movers}",
			suggestion: "use one of two_wheelers, trucks, packers_and_movers",
		},
		{
			name:    "blank pickup",
			modify:  func(r *Request) { r.PickupAddress = "   " },
			message: "pickup_address must not be empty",
		},
		{
			name:    "empty drop",
			modify:  func(r *Request) { r.DropAddress = "" },
			message: "drop_address must not be empty",
		},
		{
			name:    "empty name",
			modify:  func(r *Request) { r.Name = "" },
			message: "user_name must not be empty",
		},
		{
			name: "several fields",
			modify: func(r *Request) {
				r.Name = ""
				r.Phone = "1"
			},
			message:    "user_name must not be empty; phone must be exactly 10 digits",
			suggestion: "enter the 10 digit mobile number without spaces or country code",
		},
	}

	for _, test := range table {
		t.Run(test.name, func(t *testing.T) {
			req := validRequest()
			test.modify(&req)

			_, err := Validate(req)
			require.Error(t, err)

			qerr := AsError(err)
			require.NotNil(t, qerr)
			require.Equal(t, CategoryValidation, qerr.Category)
			require.Equal(t, test.message, qerr.Message)
			require.Empty(t, qerr.Step)
			if test.suggestion != "" {
				require.Equal(t, test.suggestion, qerr.Suggestion)
			} else {
				require.NotEmpty(t, qerr.Suggestion)
			}
		})
	}
}

func TestValidateCanonicalCity(t *testing.T) {
	table := []struct {
		input    string
		expected string
	}{
		{input: "bangalore", expected: "Bangalore"},
		{input: "MUMBAI", expected: "Mumbai"},
		{input: " Delhi ", expected: "Delhi"},
		{input: "Pune", expected: "Pune"},
	}

	for _, row := range table {
		req := validRequest()
		req.City = row.input

		validated, err := Validate(req)
		require.NoError(t, err)
		require.Equal(t, row.expected, validated.City)
	}
}

func TestValidateKeepsFields(t *testing.T) {
	req := validRequest()
	req.ServiceType = ServicePackersAndMovers

	validated, err := Validate(req)
	require.NoError(t, err)
	require.Equal(t, req.Phone, validated.Phone)
	require.Equal(t, req.PickupAddress, validated.PickupAddress)
	require.Equal(t, ServicePackersAndMovers, validated.ServiceType)
}
