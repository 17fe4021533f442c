package constants

// OCRStatus is the canonical recognition state for a receipt entry.
type OCRStatus string

// Stable values (serialized to clients as-is).
const (
	OCRStatusIdle        OCRStatus = ""            // no recognition requested yet
	OCRStatusRecognizing OCRStatus = "RECOGNIZING" // request in flight
	OCRStatusDone        OCRStatus = "DONE"        // text extracted
	OCRStatusEmpty       OCRStatus = "NO_TEXT"     // engine returned no usable text
	OCRStatusFailed      OCRStatus = "FAILED"      // terminal failure, user may re-trigger
)
