package quote

import (
	"errors"
	"fmt"
)

// Category classifies why a quote call failed.
type Category string

const (
	// CategoryValidation means the request was rejected before a browser was started.
	CategoryValidation Category = "validation"
	// CategoryEnvironment means no browser session could be started.
	CategoryEnvironment Category = "environment"
	// CategoryScrapeTargetMissing means an expected element never appeared, usually a layout change.
	CategoryScrapeTargetMissing Category = "scrape_target_missing"
	// CategoryTimeout means the results panel did not render in time.
	CategoryTimeout Category = "timeout"
	// CategoryParse means a result row had an unexpected shape.
	CategoryParse Category = "parse"
)

type categoryMetadata struct {
	suggestion string
}

var metadataByCategory = map[Category]categoryMetadata{
	CategoryValidation: {
		suggestion: "check the request fields, city spelling and service type",
	},
	CategoryEnvironment: {
		suggestion: "make sure Chrome or Chromium is installed, or point remote_url at a running browser",
	},
	CategoryScrapeTargetMissing: {
		suggestion: "the porter.in page layout may have changed, check the selectors for the failed step",
	},
	CategoryTimeout: {
		suggestion: "check if the site is reachable and try again, or raise results_timeout",
	},
	CategoryParse: {
		suggestion: "the results panel layout may have changed, check the row selectors",
	},
}

// Error is the failure payload of a quote call.
type Error struct {
	Category   Category
	Step       Step
	Message    string
	Suggestion string
	Err        error
}

func newError(category Category, step Step, err error, format string, args ...any) *Error {
	return &Error{
		Category:   category,
		Step:       step,
		Message:    fmt.Sprintf(format, args...),
		Suggestion: metadataByCategory[category].suggestion,
		Err:        err,
	}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Category, e.Message)
	if e.Step != "" {
		msg = fmt.Sprintf("%s (step %s)", msg, e.Step)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Error())
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by category so errors.Is(err, &Error{Category: CategoryTimeout}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Category == e.Category && (t.Step == "" || t.Step == e.Step)
}

// AsError extracts the *Error in err's chain, or nil.
func AsError(err error) *Error {
	var qerr *Error
	if errors.As(err, &qerr) {
		return qerr
	}
	return nil
}
