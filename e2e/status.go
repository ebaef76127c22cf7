package e2e

// Status is the outcome of a Check call. The zero value is StatusOk.
type Status uint8

const (
	// StatusOk means the counter advanced by exactly 1 modulo the
	// counter's modulus and every signature matched.
	StatusOk Status = iota

	// StatusOkSomeLost means the counter advanced by 2..Δ: some
	// messages were lost but within the configured tolerance.
	StatusOkSomeLost

	// StatusRepeated means the counter did not advance.
	StatusRepeated

	// StatusWrongSequence means the counter advanced by more than Δ,
	// or went backwards.
	StatusWrongSequence

	// StatusCrcError means the recomputed CRC did not match the
	// buffer's CRC field.
	StatusCrcError

	// StatusDataIdError means the buffer's Data ID signature did not
	// match the configured Data ID.
	StatusDataIdError

	// StatusDataLengthError means the buffer length was outside the
	// configured bounds, or disagreed with an embedded Length field.
	StatusDataLengthError
)

var statusNames = [...]string{
	"Ok",
	"OkSomeLost",
	"Repeated",
	"WrongSequence",
	"CrcError",
	"DataIdError",
	"DataLengthError",
}

// String renders the status for logs and CLI output.
func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "Unknown"
}
