package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration accepts "15s" style strings or a bare number of seconds.
type Duration time.Duration

func parseDuration(text string) (Duration, error) {
	text = strings.TrimSpace(text)
	seconds, err := strconv.ParseFloat(text, 64)
	if err == nil {
		return Duration(seconds * float64(time.Second)), nil
	}
	d, err := time.ParseDuration(text)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", text)
	}
	return Duration(d), nil
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	parsed, err := parseDuration(strings.Trim(string(b), `"'`))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

// Decode implements envconfig.Decoder.
func (d *Duration) Decode(value string) error {
	parsed, err := parseDuration(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Duration) String() string {
	return time.Duration(d).String()
}
