package chrono

import "time"

// API is the source of wall clock time for anything that stamps results.
type API interface {
	Now() time.Time
}

// StandardImpl reads the system clock and reports it in India Standard Time,
// the timezone porter.in quotes are issued in.
type StandardImpl struct {
	location *time.Location
}

func NewStandardImpl() (StandardImpl, error) {
	location, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// tzdata can be missing on minimal images, IST has no DST so a fixed zone is exact.
		location = time.FixedZone("IST", 5*60*60+30*60)
	}
	return StandardImpl{location: location}, nil
}

func (s StandardImpl) Now() time.Time {
	return time.Now().In(s.location)
}

// FixedImpl always returns the same instant, it is meant for tests.
type FixedImpl struct {
	Instant time.Time
}

func (f FixedImpl) Now() time.Time {
	return f.Instant
}
