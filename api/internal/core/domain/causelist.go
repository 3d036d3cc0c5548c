package domain

import "fmt"

// CauseListType selects the civil or criminal listing. The string values are
// the wire values the backend expects in the cause-list "flag" parameter.
type CauseListType string

const (
	CauseListCivil    CauseListType = "Civ"
	CauseListCriminal CauseListType = "Cri"
)

// ParseCauseListType maps the caller-facing names onto the wire values.
func ParseCauseListType(s string) (CauseListType, error) {
	switch s {
	case "CIVIL":
		return CauseListCivil, nil
	case "CRIMINAL":
		return CauseListCriminal, nil
	default:
		return "", fmt.Errorf("invalid cause list type %q: must be CIVIL or CRIMINAL", s)
	}
}

// CauseListQuery carries everything the cause-list lookup needs beyond the
// bearer token. Date is DD-MM-YYYY, as the backend expects it.
type CauseListQuery struct {
	StateCode    string
	DistrictCode string
	CourtCode    string
	CourtNumber  string
	Type         CauseListType
	Date         string
}
