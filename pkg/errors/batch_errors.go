package custom_error

import "fmt"

// DuplicateSerialError marks a serial number that already belongs to
// another asset. Detected before insert, so the code is never burned.
type DuplicateSerialError struct {
	Serial string
}

func (e *DuplicateSerialError) Error() string {
	return fmt.Sprintf("serial number %s is already registered", e.Serial)
}

// UnknownCategoryError marks a category label with no matching record.
type UnknownCategoryError struct {
	Name string
}

func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown category: %s", e.Name)
}
