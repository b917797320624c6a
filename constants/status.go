package constants

// DocStatus is the canonical lifecycle status for rows in documents.
type DocStatus string

// Stable values (store these exact strings in DB).
const (
	DocStatusUploaded   DocStatus = "UPLOADED"   // raw bytes stored, no text yet
	DocStatusTextReady  DocStatus = "TEXT_READY" // OCR text cached
	DocStatusClassified DocStatus = "CLASSIFIED" // detect ran
	DocStatusExtracted  DocStatus = "EXTRACTED"  // extraction persisted
	DocStatusFailed     DocStatus = "FAILED"     // terminal failure
)

// IDType is the inferred subtype of an identity document.
type IDType string

const (
	IDTypePassport       IDType = "passport"
	IDTypeDrivingLicense IDType = "driving_license"
	IDTypeAadhaar        IDType = "aadhaar"
	IDTypePANCard        IDType = "pan_card"
	IDTypeUnknown        IDType = "unknown"
)
