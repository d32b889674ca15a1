package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/recruiting-sync/internal/model"
	"github.com/fadilmartias/recruiting-sync/internal/syncerr"
	"github.com/go-resty/resty/v2"
)

func testPipelineService(srv *httptest.Server) *PipelineService {
	client := resty.New().
		SetBaseURL(srv.URL).
		SetQueryParam("api_key", "test-api-key").
		SetQueryParam("app_key", "test-app-key")
	return &PipelineService{client: client}
}

func testRecord() *model.ApplicantRecord {
	return &model.ApplicantRecord{
		FirstName:   "A",
		LastName:    "B",
		Email:       "a@example.com",
		LinkedInURL: "linkedin.com/x",
		Position:    "Student",
		Summary:     "\nMajor: Bio",
		CustomFields: model.CustomFields{
			GraduationYearID: 11,
			RecruitingStepID: 6960371,
			TermInterestIDs:  []int64{21, 22},
			SourceReferredBy: "Friend\nApplication Date: 03-09-2024",
		},
	}
}

func TestFetchCatalogsByName(t *testing.T) {
	// entries deliberately ordered so that positional lookup would pick the
	// wrong field
	generalBody := `{"entries": [
		{"name": "Deal Stage", "custom_field_label_dropdown_entries": [{"id": 1, "name": "x"}]},
		{"name": "Recruiting Steps", "custom_field_label_dropdown_entries": [{"id": 6960371, "name": "Applied"}]}
	]}`
	personBody := `{"entries": [
		{"name": "Term Interested in Internship", "custom_field_label_dropdown_entries": [{"id": 21, "name": "Fall"}, {"id": 22, "name": "Spring"}]},
		{"name": "T-Shirt Size", "custom_field_label_dropdown_entries": [{"id": 9, "name": "M"}]},
		{"name": "Class of ...", "custom_field_label_dropdown_entries": [{"id": 11, "name": "2024"}]}
	]}`

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "test-api-key" {
			t.Errorf("missing api_key query param on %s", r.URL.Path)
		}
		switch r.URL.Path {
		case "/admin/custom_field_labels.json":
			io.WriteString(w, generalBody)
		case "/admin/person_custom_field_labels.json":
			io.WriteString(w, personBody)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	catalogs, err := testPipelineService(srv).FetchCatalogs(context.Background())
	if err != nil {
		t.Fatalf("FetchCatalogs() error = %v", err)
	}

	if id, err := catalogs.TermInterest.Resolve("Spring"); err != nil || id != 22 {
		t.Errorf("TermInterest.Resolve(Spring) = %d, %v, want 22", id, err)
	}
	if id, err := catalogs.ClassOf.Resolve("2024"); err != nil || id != 11 {
		t.Errorf("ClassOf.Resolve(2024) = %d, %v, want 11", id, err)
	}
	if !catalogs.RecruitingSteps.Contains(6960371) {
		t.Error("RecruitingSteps.Contains(6960371) = false, want true")
	}
}

func TestFindPerson(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/people" {
			t.Errorf("path = %s, want /people", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("conditions[person_linked_in_url]") != "linkedin.com/x" ||
			q.Get("conditions[person_first_name]") != "A" ||
			q.Get("conditions[person_last_name]") != "B" {
			t.Errorf("unexpected conditions: %v", q)
		}
		io.WriteString(w, `{"entries": [{"id": 42, "first_name": "A"}]}`)
	}))
	defer srv.Close()

	id, err := testPipelineService(srv).FindPerson(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("FindPerson() error = %v", err)
	}
	if id != 42 {
		t.Errorf("FindPerson() = %d, want 42", id)
	}
}

func TestFindPersonNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"entries": []}`)
	}))
	defer srv.Close()

	_, err := testPipelineService(srv).FindPerson(context.Background(), testRecord())
	if !errors.Is(err, syncerr.ErrNotFound) {
		t.Fatalf("FindPerson() error = %v, want ErrNotFound", err)
	}
}

func TestFindPersonQueryErrorIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := testPipelineService(srv).FindPerson(context.Background(), testRecord())
	if !errors.Is(err, syncerr.ErrNotFound) {
		t.Fatalf("FindPerson() error = %v, want ErrNotFound", err)
	}
}

func TestCreatePersonPayload(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/people" {
			t.Errorf("%s %s, want POST /people", r.Method, r.URL.Path)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &got); err != nil {
			t.Fatalf("invalid request body: %v", err)
		}
		io.WriteString(w, `{"id": 77}`)
	}))
	defer srv.Close()

	id, err := testPipelineService(srv).CreatePerson(context.Background(), testRecord())
	if err != nil {
		t.Fatalf("CreatePerson() error = %v", err)
	}
	if id != 77 {
		t.Errorf("CreatePerson() = %d, want 77", id)
	}

	person, ok := got["person"].(map[string]any)
	if !ok {
		t.Fatalf("payload has no person object: %v", got)
	}
	if person["first_name"] != "A" || person["linked_in_url"] != "linkedin.com/x" {
		t.Errorf("person payload = %v", person)
	}
	custom, ok := person["custom_fields"].(map[string]any)
	if !ok {
		t.Fatalf("person payload has no custom_fields: %v", person)
	}
	if custom[labelRecruitingStep] != float64(6960371) {
		t.Errorf("custom_fields[%s] = %v, want 6960371", labelRecruitingStep, custom[labelRecruitingStep])
	}
	terms, ok := custom[labelTermInterest].([]any)
	if !ok || len(terms) != 2 {
		t.Errorf("custom_fields[%s] = %v, want two ids", labelTermInterest, custom[labelTermInterest])
	}
}

func TestUpdatePersonUsesPut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/people/42" {
			t.Errorf("%s %s, want PUT /people/42", r.Method, r.URL.Path)
		}
		io.WriteString(w, `{"id": 42}`)
	}))
	defer srv.Close()

	id, err := testPipelineService(srv).UpdatePerson(context.Background(), 42, testRecord())
	if err != nil {
		t.Fatalf("UpdatePerson() error = %v", err)
	}
	if id != 42 {
		t.Errorf("UpdatePerson() = %d, want 42", id)
	}
}

func TestPersonWriteNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"error": "email taken"}`)
	}))
	defer srv.Close()

	svc := testPipelineService(srv)
	if _, err := svc.CreatePerson(context.Background(), testRecord()); !errors.Is(err, syncerr.ErrCrmRequestFailed) {
		t.Errorf("CreatePerson() error = %v, want ErrCrmRequestFailed", err)
	}
	if _, err := svc.UpdatePerson(context.Background(), 42, testRecord()); !errors.Is(err, syncerr.ErrCrmRequestFailed) {
		t.Errorf("UpdatePerson() error = %v, want ErrCrmRequestFailed", err)
	}
}

func TestFindDocumentByTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents" {
			t.Errorf("path = %s, want /documents", r.URL.Path)
		}
		if r.URL.Query().Get("conditions[document_name]") != "resume-a-b.pdf" {
			t.Errorf("conditions = %v", r.URL.Query())
		}
		io.WriteString(w, `{"entries": [{"id": 9}]}`)
	}))
	defer srv.Close()

	id, err := testPipelineService(srv).FindDocument(context.Background(), "resume-a-b.pdf")
	if err != nil {
		t.Fatalf("FindDocument() error = %v", err)
	}
	if id != 9 {
		t.Errorf("FindDocument() = %d, want 9", id)
	}
}

func TestDocumentWrites(t *testing.T) {
	var gotMethod, gotPath string
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &got)
		io.WriteString(w, `{"id": 5}`)
	}))
	defer srv.Close()

	svc := testPipelineService(srv)
	doc := model.FileRef{URL: "https://drive.example/r", Title: "resume-a-b.pdf"}

	id, err := svc.CreateDocument(context.Background(), 77, doc)
	if err != nil {
		t.Fatalf("CreateDocument() error = %v", err)
	}
	if id != 5 {
		t.Errorf("CreateDocument() = %d, want 5", id)
	}
	if gotMethod != http.MethodPost || gotPath != "/documents" {
		t.Errorf("%s %s, want POST /documents", gotMethod, gotPath)
	}
	document, _ := got["document"].(map[string]any)
	if document["url"] != doc.URL || document["title"] != doc.Title ||
		document["person_id"] != float64(77) || document["document_type"] != "documents" {
		t.Errorf("document payload = %v", document)
	}

	if err := svc.UpdateDocument(context.Background(), 5, 77, doc); err != nil {
		t.Fatalf("UpdateDocument() error = %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/documents/5" {
		t.Errorf("%s %s, want PUT /documents/5", gotMethod, gotPath)
	}
}
