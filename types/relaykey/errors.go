package relaykey

import (
	"errors"
	"fmt"
)

// ErrInvalidRecordLength is matched by every *InvalidRecordLengthError through errors.Is.
var ErrInvalidRecordLength = errors.New("invalid record length")

// InvalidRecordLengthError reports a credential that does not have its fixed length.
type InvalidRecordLengthError struct {
	// Field names the credential, empty when converted through ToFixedLength directly.
	Field string

	Expected int
	Actual   int
}

func (e *InvalidRecordLengthError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid record length: expected %d bytes, got %d", e.Expected, e.Actual)
	}
	return fmt.Sprintf("invalid %s length: expected %d bytes, got %d", e.Field, e.Expected, e.Actual)
}

func (e *InvalidRecordLengthError) Is(target error) bool {
	return target == ErrInvalidRecordLength
}
