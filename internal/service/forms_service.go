package service

import (
	"context"
	"fmt"
	"time"

	"github.com/fadilmartias/recruiting-sync/internal/config"
	"github.com/fadilmartias/recruiting-sync/internal/model"
	"github.com/fadilmartias/recruiting-sync/internal/syncerr"
	"google.golang.org/api/forms/v1"
	"google.golang.org/api/option"
)

type FormSourceInterface interface {
	FetchLatest(ctx context.Context) (*model.Submission, error)
}

type FormsService struct {
	service *forms.Service
	formID  string
}

func NewFormsService(ctx context.Context) (*FormsService, error) {
	googleConfig := config.LoadGoogleConfig()
	if googleConfig.FormID == "" {
		return nil, fmt.Errorf("FORM_ID not set")
	}

	svc, err := forms.NewService(ctx,
		option.WithCredentialsFile(googleConfig.ServiceAccountFile),
		option.WithScopes(forms.FormsResponsesReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("forms service: %w", err)
	}
	return &FormsService{service: svc, formID: googleConfig.FormID}, nil
}

// FetchLatest lists every response of the configured form and returns the one
// with the greatest creation timestamp. Answers come back ordered by the
// form's question layout; the slice index is the mapping position.
func (s *FormsService) FetchLatest(ctx context.Context) (*model.Submission, error) {
	form, err := s.service.Forms.Get(s.formID).Context(ctx).Do()
	if err != nil {
		return nil, syncerr.Wrap(syncerr.ErrSourceUnavailable, "get form "+s.formID, err)
	}

	questionIDs := []string{}
	for _, item := range form.Items {
		if item.QuestionItem != nil && item.QuestionItem.Question != nil {
			questionIDs = append(questionIDs, item.QuestionItem.Question.QuestionId)
		}
	}

	var responses []*forms.FormResponse
	err = s.service.Forms.Responses.
		List(s.formID).
		Pages(ctx, func(resp *forms.ListFormResponsesResponse) error {
			responses = append(responses, resp.Responses...)
			return nil
		})
	if err != nil {
		return nil, syncerr.Wrap(syncerr.ErrSourceUnavailable, "list responses for form "+s.formID, err)
	}
	if len(responses) == 0 {
		return nil, syncerr.Wrap(syncerr.ErrEmptySubmissionSet, "form "+s.formID+" has no responses", nil)
	}

	// ties keep the first listed response
	latest := responses[0]
	latestTime := parseCreateTime(latest.CreateTime)
	for _, resp := range responses[1:] {
		if t := parseCreateTime(resp.CreateTime); t.After(latestTime) {
			latest, latestTime = resp, t
		}
	}

	sub := &model.Submission{ResponseID: latest.ResponseId, CreateTime: latestTime}
	for _, questionID := range questionIDs {
		answer := model.Answer{QuestionID: questionID}
		if raw, ok := latest.Answers[questionID]; ok {
			answer.Answered = true
			if raw.TextAnswers != nil {
				for _, text := range raw.TextAnswers.Answers {
					answer.Values = append(answer.Values, text.Value)
				}
			}
			if raw.FileUploadAnswers != nil {
				for _, file := range raw.FileUploadAnswers.Answers {
					answer.FileIDs = append(answer.FileIDs, file.FileId)
				}
			}
		}
		sub.Answers = append(sub.Answers, answer)
	}
	return sub, nil
}

func parseCreateTime(raw string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, raw)
	return t
}
