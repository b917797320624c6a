package extract

import (
	"regexp"

	"github.com/docuscan/docintake/constants"
)

var (
	idNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)ID\s*No\.?[:\s]*([A-Z0-9-]+)`),
		regexp.MustCompile(`(?i)ID\s*Number[:\s]*([A-Z0-9-]+)`),
		regexp.MustCompile(`(?i)Number[:\s]*([A-Z0-9-]{6,})`),
	}
	fullNamePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Name[:\s]*([^\n]+)`),
		regexp.MustCompile(`(?i)Full\s*Name[:\s]*([^\n]+)`),
	}
	dobPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)DOB[:\s]*([0-9]{1,2}[-/][0-9]{1,2}[-/][0-9]{2,4})`),
		regexp.MustCompile(`(?i)Date\s*of\s*Birth[:\s]*([0-9]{1,2}[-/][0-9]{1,2}[-/][0-9]{2,4})`),
	}
	issueDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Issue\s*Date[:\s]*([0-9]{1,2}[-/][0-9]{1,2}[-/][0-9]{2,4})`),
		regexp.MustCompile(`(?i)Issued\s*On[:\s]*([0-9]{1,2}[-/][0-9]{1,2}[-/][0-9]{2,4})`),
	}
	expiryDatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Expiry\s*Date[:\s]*([0-9]{1,2}[-/][0-9]{1,2}[-/][0-9]{2,4})`),
		regexp.MustCompile(`(?i)Valid\s*Till[:\s]*([0-9]{1,2}[-/][0-9]{1,2}[-/][0-9]{2,4})`),
	}
	addressPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Address[:\s]*([^\n]+)`),
	}

	// Subtype keywords, first match wins. The order is fixed.
	idTypeRules = []struct {
		idType  constants.IDType
		keyword *regexp.Regexp
	}{
		{constants.IDTypePassport, regexp.MustCompile(`(?i)Passport`)},
		{constants.IDTypeDrivingLicense, regexp.MustCompile(`(?i)Driving\s*Licence|Driver's\s*License`)},
		{constants.IDTypeAadhaar, regexp.MustCompile(`(?i)Aadhar|Aadhaar`)},
		{constants.IDTypePANCard, regexp.MustCompile(`(?i)PAN\s*Card`)},
	}
)

// IDExtractor pulls labeled fields out of identity-document text and infers
// the document subtype from keywords.
type IDExtractor struct{}

func NewIDExtractor() *IDExtractor { return &IDExtractor{} }

func (e *IDExtractor) Extract(text string) (Record, error) {
	rec := &IDRecord{IDType: constants.IDTypeUnknown, RawText: text}
	if text == "" {
		return rec, nil
	}

	rec.IDNumber = findFirst(idNumberPatterns, text)
	rec.FullName = findFirst(fullNamePatterns, text)
	rec.DateOfBirth = findFirst(dobPatterns, text)
	rec.IssueDate = findFirst(issueDatePatterns, text)
	rec.ExpiryDate = findFirst(expiryDatePatterns, text)
	rec.Address = findFirst(addressPatterns, text)

	for _, r := range idTypeRules {
		if r.keyword.MatchString(text) {
			rec.IDType = r.idType
			break
		}
	}

	return rec, nil
}
