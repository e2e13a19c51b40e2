package intervals

import "errors"

var (
	// ErrInvalidInterval is returned when an interval or domain is
	// given with start > end.
	ErrInvalidInterval = errors.New("invalid interval")
	// ErrDomainViolation is returned when an inserted interval falls
	// outside the set's domain.
	ErrDomainViolation = errors.New("interval outside domain")
	// ErrDomainMismatch is returned when a binary operation is given
	// two sets whose domains do not overlap.
	ErrDomainMismatch = errors.New("domain mismatch")
)
