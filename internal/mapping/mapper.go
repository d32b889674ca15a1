package mapping

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/fadilmartias/recruiting-sync/internal/model"
	"github.com/fadilmartias/recruiting-sync/internal/syncerr"
)

// FileStorage resolves an uploaded file id to its name and downloadable URL.
type FileStorage interface {
	FileMeta(ctx context.Context, fileID string) (model.FileMeta, error)
}

type Mapper struct {
	files            FileStorage
	recruitingStepID int64
}

func NewMapper(files FileStorage, recruitingStepID int64) *Mapper {
	return &Mapper{files: files, recruitingStepID: recruitingStepID}
}

// Map walks the submission's answers in ascending position order and builds
// the applicant record. It is pure given (submission, catalogs, now): mapping
// the same submission twice yields identical records.
func (m *Mapper) Map(ctx context.Context, sub *model.Submission, catalogs *model.FieldCatalogs, now time.Time) (*model.ApplicantRecord, error) {
	rec := &model.ApplicantRecord{Position: "Student"}
	// Recruiting step is never read from the submission.
	rec.CustomFields.RecruitingStepID = m.recruitingStepID
	if !catalogs.RecruitingSteps.Contains(m.recruitingStepID) {
		log.Printf("Warning: recruiting step %d is not in the CRM catalog", m.recruitingStepID)
	}

	for pos, ans := range sub.Answers {
		if pos >= len(Table) {
			log.Printf("Warning: answer at position %d is beyond the mapping table (version %d), skipping", pos, TableVersion)
			continue
		}
		if !ans.Answered {
			continue
		}
		field := Table[pos]

		switch field.Kind {
		case KindTranscript, KindResume:
			if len(ans.FileIDs) == 0 {
				return nil, syncerr.Wrap(syncerr.ErrMalformedAnswer, "file answer at position "+strconv.Itoa(pos)+" has no file id", nil)
			}
			meta, err := m.files.FileMeta(ctx, ans.FileIDs[0])
			if err != nil {
				return nil, err
			}
			ref := model.FileRef{URL: meta.DownloadURL, Title: meta.Name}
			if field.Kind == KindTranscript {
				rec.Transcript = ref
			} else {
				rec.Resume = ref
			}

		case KindTermInterest:
			if len(ans.Values) == 0 {
				return nil, syncerr.Wrap(syncerr.ErrMalformedAnswer, "multi-select at position "+strconv.Itoa(pos)+" has no values", nil)
			}
			for _, value := range ans.Values {
				id, err := catalogs.TermInterest.Resolve(value)
				if err != nil {
					return nil, err
				}
				rec.CustomFields.TermInterestIDs = append(rec.CustomFields.TermInterestIDs, id)
			}

		case KindGraduationYear:
			value, err := scalar(ans, pos)
			if err != nil {
				return nil, err
			}
			id, err := catalogs.ClassOf.Resolve(value)
			if err != nil {
				return nil, err
			}
			rec.CustomFields.GraduationYearID = id

		case KindReferralSource:
			value, err := scalar(ans, pos)
			if err != nil {
				return nil, err
			}
			rec.CustomFields.SourceReferredBy = value + "\nApplication Date: " + now.Format("01-02-2006")

		case KindSummary:
			value, err := scalar(ans, pos)
			if err != nil {
				return nil, err
			}
			// appends in position order, so the final summary reads the same
			// way on every run
			rec.Summary += "\n" + field.Label + ": " + value

		case KindLinkedInURL:
			value, err := scalar(ans, pos)
			if err != nil {
				return nil, err
			}
			rec.LinkedInURL = value
		case KindCompanyName:
			value, err := scalar(ans, pos)
			if err != nil {
				return nil, err
			}
			rec.CompanyName = value
		case KindFirstName:
			value, err := scalar(ans, pos)
			if err != nil {
				return nil, err
			}
			rec.FirstName = value
		case KindLastName:
			value, err := scalar(ans, pos)
			if err != nil {
				return nil, err
			}
			rec.LastName = value
		case KindMobile:
			value, err := scalar(ans, pos)
			if err != nil {
				return nil, err
			}
			rec.Mobile = value
		case KindEmail:
			value, err := scalar(ans, pos)
			if err != nil {
				return nil, err
			}
			rec.Email = value
		}
	}

	return rec, nil
}

// scalar extracts a single textual value; multi-valued answers (e.g. the FT/PT
// hours checkboxes) join with ", ".
func scalar(ans model.Answer, pos int) (string, error) {
	if len(ans.Values) == 0 {
		return "", syncerr.Wrap(syncerr.ErrMalformedAnswer, "answer at position "+strconv.Itoa(pos)+" has no value", nil)
	}
	if len(ans.Values) == 1 {
		return ans.Values[0], nil
	}
	return strings.Join(ans.Values, ", "), nil
}

