package custom_error

import "fmt"

// InvalidPrefixError is returned when a code prefix is empty or malformed.
type InvalidPrefixError struct {
	Prefix string
}

func (e *InvalidPrefixError) Error() string {
	return fmt.Sprintf("invalid code prefix: %q", e.Prefix)
}

// RangeExhaustedError signals that the numeric range for a prefix has no
// number left. It is never wrapped around silently.
type RangeExhaustedError struct {
	Prefix string
	Floor  int
	Ceil   int
}

func (e *RangeExhaustedError) Error() string {
	return fmt.Sprintf("code range [%d, %d] exhausted for prefix %s", e.Floor, e.Ceil, e.Prefix)
}

// CodeConflictError marks a unique-constraint violation on the asset code
// column. The allocator treats it as a lost race and retries with a fresh
// number; anything else propagates as a row failure.
type CodeConflictError struct {
	Code string
}

func (e *CodeConflictError) Error() string {
	return fmt.Sprintf("asset code %s already taken", e.Code)
}
