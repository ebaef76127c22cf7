package e2e

import "github.com/autosar-go/e2e/seqcounter"

// statusFromClassification maps the counter validator's classification
// onto the public Status enumeration. It is only ever called after CRC
// and Data ID have already been confirmed to match, so the precedence
// rule of spec §4.11 (DataLengthError > CrcError > DataIdError > counter
// classification) falls out of call order rather than needing explicit
// ranking here.
func statusFromClassification(c seqcounter.Classification) Status {
	switch c {
	case seqcounter.Ok:
		return StatusOk
	case seqcounter.OkSomeLost:
		return StatusOkSomeLost
	case seqcounter.Repeated:
		return StatusRepeated
	default:
		return StatusWrongSequence
	}
}
