package domain

// CaseListKind tags the two shapes the case-list lookup can decode into.
// A case still in filing (pre-registration) has no case number yet and its
// details live behind a different endpoint than a registered case.
type CaseListKind int

const (
	CaseRegistered CaseListKind = iota
	CaseInFiling
)

// CaseListing is the decoded result of the case-list lookup with the
// registration state made explicit.
type CaseListing struct {
	Kind       CaseListKind
	CaseNumber string
	Fields     map[string]any
}

// NewCaseListing classifies a decoded case-list payload. Only a missing or
// null case_number marks a filing-stage case; any other value, including an
// empty string, counts as registered.
func NewCaseListing(fields map[string]any) CaseListing {
	listing := CaseListing{Kind: CaseRegistered, Fields: fields}
	v, ok := fields["case_number"]
	if !ok || v == nil {
		listing.Kind = CaseInFiling
		return listing
	}
	if s, ok := v.(string); ok {
		listing.CaseNumber = s
	}
	return listing
}
