package entity

import "github.com/victorlai/deliverydesk/constants"

// ReceiptEntry is one row of the receipt form. Entries live in memory for the
// duration of a session and are owned exclusively by the entry store.
//
// OCRToken identifies the most recently issued recognition request for this
// entry; a recognition result carrying any other token is stale and must be
// discarded without mutating the entry.
type ReceiptEntry struct {
	ID          string              `json:"id"`
	DriverName  string              `json:"driver_name"`
	Amount      string              `json:"amount"` // user-typed, coerced at projection time
	Note        string              `json:"note"`
	Image       string              `json:"image"` // data URL, empty when no image attached
	ImageHeight int                 `json:"image_height"`
	OCRText     string              `json:"ocr_text"`
	OCRStatus   constants.OCRStatus `json:"ocr_status"`
	OCRToken    string              `json:"-"`
}
