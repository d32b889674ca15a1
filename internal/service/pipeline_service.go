package service

import (
	"context"
	"strconv"
	"time"

	"github.com/fadilmartias/recruiting-sync/internal/config"
	"github.com/fadilmartias/recruiting-sync/internal/model"
	"github.com/fadilmartias/recruiting-sync/internal/syncerr"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// CRM-side keys of the person custom fields.
const (
	labelClassOf          = "custom_label_3815151"
	labelRecruitingStep   = "custom_label_3843630"
	labelTermInterest     = "custom_label_3815053"
	labelSourceReferredBy = "custom_label_3844026"
)

// Catalog entry names in the custom field listings. Lookup is always by these
// names, never by index, so a reordered CRM catalog cannot mis-assign fields.
const (
	catalogRecruitingSteps = "Recruiting Steps"
	catalogClassOf         = "Class of ..."
	catalogTermInterest    = "Term Interested in Internship"
)

type PipelineServiceInterface interface {
	FetchCatalogs(ctx context.Context) (*model.FieldCatalogs, error)
	FindPerson(ctx context.Context, rec *model.ApplicantRecord) (int64, error)
	CreatePerson(ctx context.Context, rec *model.ApplicantRecord) (int64, error)
	UpdatePerson(ctx context.Context, personID int64, rec *model.ApplicantRecord) (int64, error)
	FindDocument(ctx context.Context, title string) (int64, error)
	CreateDocument(ctx context.Context, personID int64, doc model.FileRef) (int64, error)
	UpdateDocument(ctx context.Context, documentID, personID int64, doc model.FileRef) error
}

type PipelineService struct {
	client *resty.Client
}

func NewPipelineService() *PipelineService {
	pipelineConfig := config.LoadPipelineConfig()
	client := resty.New().
		SetBaseURL(pipelineConfig.BaseURL).
		SetQueryParam("api_key", pipelineConfig.APIKey).
		SetQueryParam("app_key", pipelineConfig.AppKey).
		SetTimeout(15 * time.Second).
		SetRetryCount(1)
	return &PipelineService{client: client}
}

// FetchCatalogs pulls both custom field listings fresh; the CRM catalog can
// change between runs.
func (s *PipelineService) FetchCatalogs(ctx context.Context) (*model.FieldCatalogs, error) {
	general, err := s.client.R().SetContext(ctx).Get("/admin/custom_field_labels.json")
	if err != nil {
		return nil, syncerr.Wrap(syncerr.ErrSourceUnavailable, "fetch custom field labels", err)
	}
	if general.IsError() {
		return nil, syncerr.Wrap(syncerr.ErrCrmRequestFailed, "fetch custom field labels: status "+general.Status(), nil)
	}

	person, err := s.client.R().SetContext(ctx).Get("/admin/person_custom_field_labels.json")
	if err != nil {
		return nil, syncerr.Wrap(syncerr.ErrSourceUnavailable, "fetch person custom field labels", err)
	}
	if person.IsError() {
		return nil, syncerr.Wrap(syncerr.ErrCrmRequestFailed, "fetch person custom field labels: status "+person.Status(), nil)
	}

	return &model.FieldCatalogs{
		RecruitingSteps: catalogByName(general.String(), catalogRecruitingSteps),
		ClassOf:         catalogByName(person.String(), catalogClassOf),
		TermInterest:    catalogByName(person.String(), catalogTermInterest),
	}, nil
}

func catalogByName(body, name string) model.Catalog {
	catalog := model.Catalog{FieldName: name}
	gjson.Get(body, "entries").ForEach(func(_, entry gjson.Result) bool {
		if entry.Get("name").String() != name {
			return true
		}
		entry.Get("custom_field_label_dropdown_entries").ForEach(func(_, opt gjson.Result) bool {
			catalog.Entries = append(catalog.Entries, model.CatalogEntry{
				ID:   opt.Get("id").Int(),
				Name: opt.Get("name").String(),
			})
			return true
		})
		return false
	})
	return catalog
}

// FindPerson matches on LinkedIn URL plus first and last name. Query errors
// and empty result sets both come back as ErrNotFound; the caller decides
// whether to absorb them.
func (s *PipelineService) FindPerson(ctx context.Context, rec *model.ApplicantRecord) (int64, error) {
	resp, err := s.client.R().SetContext(ctx).
		SetQueryParam("conditions[person_linked_in_url]", rec.LinkedInURL).
		SetQueryParam("conditions[person_first_name]", rec.FirstName).
		SetQueryParam("conditions[person_last_name]", rec.LastName).
		Get("/people")
	if err != nil {
		return 0, syncerr.Wrap(syncerr.ErrNotFound, "person lookup", err)
	}
	if resp.IsError() {
		return 0, syncerr.Wrap(syncerr.ErrNotFound, "person lookup: status "+resp.Status(), nil)
	}

	id := gjson.Get(resp.String(), "entries.0.id").Int()
	if id == 0 {
		return 0, syncerr.Wrap(syncerr.ErrNotFound, "no person matched "+rec.FirstName+" "+rec.LastName, nil)
	}
	return id, nil
}

func (s *PipelineService) CreatePerson(ctx context.Context, rec *model.ApplicantRecord) (int64, error) {
	resp, err := s.client.R().SetContext(ctx).
		SetBody(personPayload(rec)).
		Post("/people")
	if err != nil {
		return 0, syncerr.Wrap(syncerr.ErrCrmRequestFailed, "create person", err)
	}
	if resp.IsError() {
		return 0, syncerr.Wrap(syncerr.ErrCrmRequestFailed, "create person: status "+resp.Status()+": "+resp.String(), nil)
	}
	return gjson.Get(resp.String(), "id").Int(), nil
}

func (s *PipelineService) UpdatePerson(ctx context.Context, personID int64, rec *model.ApplicantRecord) (int64, error) {
	resp, err := s.client.R().SetContext(ctx).
		SetBody(personPayload(rec)).
		Put("/people/" + strconv.FormatInt(personID, 10))
	if err != nil {
		return 0, syncerr.Wrap(syncerr.ErrCrmRequestFailed, "update person", err)
	}
	if resp.IsError() {
		return 0, syncerr.Wrap(syncerr.ErrCrmRequestFailed, "update person: status "+resp.Status()+": "+resp.String(), nil)
	}
	return gjson.Get(resp.String(), "id").Int(), nil
}

// FindDocument looks a document up by exact title match, independently per
// document.
func (s *PipelineService) FindDocument(ctx context.Context, title string) (int64, error) {
	resp, err := s.client.R().SetContext(ctx).
		SetQueryParam("conditions[document_name]", title).
		Get("/documents")
	if err != nil {
		return 0, syncerr.Wrap(syncerr.ErrNotFound, "document lookup", err)
	}
	if resp.IsError() {
		return 0, syncerr.Wrap(syncerr.ErrNotFound, "document lookup: status "+resp.Status(), nil)
	}

	id := gjson.Get(resp.String(), "entries.0.id").Int()
	if id == 0 {
		return 0, syncerr.Wrap(syncerr.ErrNotFound, "no document titled '"+title+"'", nil)
	}
	return id, nil
}

func (s *PipelineService) CreateDocument(ctx context.Context, personID int64, doc model.FileRef) (int64, error) {
	resp, err := s.client.R().SetContext(ctx).
		SetBody(documentPayload(personID, doc)).
		Post("/documents")
	if err != nil {
		return 0, syncerr.Wrap(syncerr.ErrCrmRequestFailed, "create document '"+doc.Title+"'", err)
	}
	if resp.IsError() {
		return 0, syncerr.Wrap(syncerr.ErrCrmRequestFailed, "create document '"+doc.Title+"': status "+resp.Status(), nil)
	}
	return gjson.Get(resp.String(), "id").Int(), nil
}

func (s *PipelineService) UpdateDocument(ctx context.Context, documentID, personID int64, doc model.FileRef) error {
	resp, err := s.client.R().SetContext(ctx).
		SetBody(documentPayload(personID, doc)).
		Put("/documents/" + strconv.FormatInt(documentID, 10))
	if err != nil {
		return syncerr.Wrap(syncerr.ErrCrmRequestFailed, "update document '"+doc.Title+"'", err)
	}
	if resp.IsError() {
		return syncerr.Wrap(syncerr.ErrCrmRequestFailed, "update document '"+doc.Title+"': status "+resp.Status(), nil)
	}
	return nil
}

func personPayload(rec *model.ApplicantRecord) map[string]any {
	return map[string]any{
		"person": map[string]any{
			"first_name":    rec.FirstName,
			"last_name":     rec.LastName,
			"email":         rec.Email,
			"mobile":        rec.Mobile,
			"linked_in_url": rec.LinkedInURL,
			"company_name":  rec.CompanyName,
			"position":      rec.Position,
			"summary":       rec.Summary,
			"custom_fields": map[string]any{
				labelClassOf:          rec.CustomFields.GraduationYearID,
				labelRecruitingStep:   rec.CustomFields.RecruitingStepID,
				labelTermInterest:     rec.CustomFields.TermInterestIDs,
				labelSourceReferredBy: rec.CustomFields.SourceReferredBy,
			},
		},
	}
}

func documentPayload(personID int64, doc model.FileRef) map[string]any {
	return map[string]any{
		"document": map[string]any{
			"url":           doc.URL,
			"person_id":     personID,
			"title":         doc.Title,
			"document_type": "documents",
		},
	}
}
