package extract

import (
	"testing"

	"github.com/docuscan/docintake/constants"
)

const samplePassport = `REPUBLIC OF UTOPIA
Passport
Name: Jane Q Roe
Number: P1234567
DOB: 01/02/1990
Issue Date: 10/01/2020
Expiry Date: 10/01/2030
Address: 12 Harbor Lane, Port City`

func TestIDExtract(t *testing.T) {
	rec, err := NewIDExtractor().Extract(samplePassport)
	if err != nil {
		t.Fatal(err)
	}
	id := rec.(*IDRecord)

	if id.IDType != constants.IDTypePassport {
		t.Errorf("id_type = %v, want passport", id.IDType)
	}
	checkStr(t, "full_name", id.FullName, "Jane Q Roe")
	checkStr(t, "id_number", id.IDNumber, "P1234567")
	checkStr(t, "date_of_birth", id.DateOfBirth, "01/02/1990")
	checkStr(t, "issue_date", id.IssueDate, "10/01/2020")
	checkStr(t, "expiry_date", id.ExpiryDate, "10/01/2030")
	checkStr(t, "address", id.Address, "12 Harbor Lane, Port City")
	if id.RawText != samplePassport {
		t.Error("raw_text must equal the input text")
	}
}

func TestIDExtractEmpty(t *testing.T) {
	rec, err := NewIDExtractor().Extract("")
	if err != nil {
		t.Fatal(err)
	}
	id := rec.(*IDRecord)
	if id.IDType != constants.IDTypeUnknown {
		t.Errorf("id_type = %v, want unknown", id.IDType)
	}
	if id.FullName != nil || id.IDNumber != nil || id.DateOfBirth != nil {
		t.Error("fields must be absent for empty input")
	}
	if id.RawText != "" {
		t.Errorf("raw_text = %q, want empty", id.RawText)
	}
}

// Subtype keyword priority is fixed: passport outranks the rest even when
// several keywords are present.
func TestIDTypePriority(t *testing.T) {
	cases := []struct {
		text string
		want constants.IDType
	}{
		{"Passport and Aadhaar mentioned", constants.IDTypePassport},
		{"Driving Licence No: DL-42", constants.IDTypeDrivingLicense},
		{"Driver's License", constants.IDTypeDrivingLicense},
		{"Aadhar enrollment", constants.IDTypeAadhaar},
		{"PAN Card holder", constants.IDTypePANCard},
		{"no subtype keywords here", constants.IDTypeUnknown},
	}
	for _, tc := range cases {
		rec, _ := NewIDExtractor().Extract(tc.text)
		if got := rec.(*IDRecord).IDType; got != tc.want {
			t.Errorf("Extract(%q).IDType = %v, want %v", tc.text, got, tc.want)
		}
	}
}
