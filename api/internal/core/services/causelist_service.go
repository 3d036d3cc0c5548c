package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"ecourts/api/internal/core/domain"
	"ecourts/api/internal/infrastructure/ecourts"
)

// retrievalWindowMessage is the user-facing explanation for the one known
// claimed-success-but-undecryptable case: the backend rejects cause-list
// dates outside its retrieval window with a body that does not decrypt.
const retrievalWindowMessage = "You can only get 30 days of data"

type CauseListService struct {
	client *ecourts.Client
	logger *slog.Logger
}

func NewCauseListService(client *ecourts.Client, logger *slog.Logger) *CauseListService {
	return &CauseListService{client: client, logger: logger}
}

// States lists every state known to the e-courts system.
func (s *CauseListService) States(ctx context.Context, token string) (map[string]any, error) {
	return s.client.Do(ctx, ecourts.Request{
		Script:   "stateWebService.php",
		Resource: "state data",
		Params: map[string]string{
			"action_code": "fillState",
			"time":        strconv.FormatInt(time.Now().Unix(), 10),
		},
		Token: token,
	})
}

// Districts lists the districts of a state.
func (s *CauseListService) Districts(ctx context.Context, token, stateCode string) (map[string]any, error) {
	return s.client.Do(ctx, ecourts.Request{
		Script:   "districtWebService.php",
		Resource: "district data",
		Params: map[string]string{
			"state_code": stateCode,
			"test_param": "pending",
		},
		Token: token,
	})
}

// CourtComplex lists the court complexes of a district.
func (s *CauseListService) CourtComplex(ctx context.Context, token, stateCode, districtCode string) (map[string]any, error) {
	return s.client.Do(ctx, ecourts.Request{
		Script:   "courtEstWebService.php",
		Resource: "court complex data",
		Params: map[string]string{
			"action_code": "fillCourtComplex",
			"state_code":  stateCode,
			"dist_code":   districtCode,
		},
		Token: token,
	})
}

// CourtNames lists the courts of a complex.
func (s *CauseListService) CourtNames(ctx context.Context, token, stateCode, districtCode, courtCode string) (map[string]any, error) {
	return s.client.Do(ctx, ecourts.Request{
		Script:   "courtNameWebService.php",
		Resource: "court name data",
		Params: map[string]string{
			"state_code":     stateCode,
			"dist_code":      districtCode,
			"court_code":     courtCode,
			"language_flag":  languageEnglish,
			"bilingual_flag": bilingualOff,
		},
		Token: token,
	})
}

// CauseList fetches the cause list for one court, date, and listing type.
// The backend enforces a 30-day retrieval window by answering with a body
// that will not decrypt; that outcome is reported as a request failure with
// the window message rather than a decode failure.
func (s *CauseListService) CauseList(ctx context.Context, token string, query domain.CauseListQuery) (map[string]any, error) {
	data, err := s.client.Do(ctx, ecourts.Request{
		Script:   "cases_new.php",
		Resource: "cause list data",
		Params: map[string]string{
			"state_code":     query.StateCode,
			"dist_code":      query.DistrictCode,
			"flag":           string(query.Type),
			"selprevdays":    "0",
			"court_no":       query.CourtNumber,
			"court_code":     query.CourtCode,
			"causelist_date": query.Date,
			"language_flag":  languageEnglish,
			"bilingual_flag": bilingualOff,
			"uid":            s.client.UID(),
		},
		Token: token,
	})
	if err != nil {
		var de *domain.DecryptError
		if errors.As(err, &de) {
			return nil, &domain.RequestError{
				Status:  de.Status,
				Body:    de.Body,
				Message: retrievalWindowMessage,
			}
		}
		return nil, err
	}
	return data, nil
}
