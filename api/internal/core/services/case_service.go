package services

import (
	"context"
	"log/slog"

	"ecourts/api/internal/core/domain"
	"ecourts/api/internal/infrastructure/ecourts"
)

// Flags every case and court lookup carries.
const (
	languageEnglish = "english"
	bilingualOff    = "0"
)

type CaseService struct {
	client *ecourts.Client
	logger *slog.Logger
}

func NewCaseService(client *ecourts.Client, logger *slog.Logger) *CaseService {
	return &CaseService{client: client, logger: logger}
}

// DetailsByCNR resolves full case details for a CNR. The case-list lookup
// decides which of two detail endpoints applies: a case still in filing has
// no case number yet and lives behind filingCaseHistory.php, a registered
// case behind caseHistoryWebService.php. A failure at any step propagates
// immediately; there is no fallback to the other branch.
func (s *CaseService) DetailsByCNR(ctx context.Context, token, cnr string) (map[string]any, error) {
	listing, err := s.CaseList(ctx, token, cnr)
	if err != nil {
		return nil, err
	}

	switch listing.Kind {
	case domain.CaseInFiling:
		s.logger.Info("retrieving filing case details", slog.String("cnr", cnr))
		return s.FilingCaseDetails(ctx, token, cnr)
	default:
		s.logger.Info("retrieving registered case details", slog.String("cnr", cnr))
		return s.DefaultCaseDetails(ctx, token, cnr)
	}
}

// CaseList queries the case-list endpoint and classifies the result into the
// registered/in-filing variant.
func (s *CaseService) CaseList(ctx context.Context, token, cnr string) (domain.CaseListing, error) {
	data, err := s.client.Do(ctx, ecourts.Request{
		Script:   "listOfCasesWebService.php",
		Resource: "case list",
		Params: map[string]string{
			"cino":           cnr,
			"version_number": "3.0",
			"language_flag":  languageEnglish,
			"bilingual_flag": bilingualOff,
		},
		Token: token,
	})
	if err != nil {
		return domain.CaseListing{}, err
	}
	return domain.NewCaseListing(data), nil
}

// DefaultCaseDetails fetches the standard case history for a registered case.
func (s *CaseService) DefaultCaseDetails(ctx context.Context, token, cnr string) (map[string]any, error) {
	return s.client.Do(ctx, ecourts.Request{
		Script:   "caseHistoryWebService.php",
		Resource: "case details",
		Params: map[string]string{
			"cinum":          cnr,
			"language_flag":  languageEnglish,
			"bilingual_flag": bilingualOff,
		},
		Token: token,
	})
}

// FilingCaseDetails fetches the history of a case that has not been
// registered yet. Note the parameter name differs from the registered
// endpoint: cino here, cinum there.
func (s *CaseService) FilingCaseDetails(ctx context.Context, token, cnr string) (map[string]any, error) {
	return s.client.Do(ctx, ecourts.Request{
		Script:   "filingCaseHistory.php",
		Resource: "case details",
		Params: map[string]string{
			"cino":           cnr,
			"language_flag":  languageEnglish,
			"bilingual_flag": bilingualOff,
		},
		Token: token,
	})
}
