package model

// FileRef points at an uploaded document: the downloadable URL plus the
// human-readable title used for document lookup in the CRM.
type FileRef struct {
	URL   string
	Title string
}

// CustomFields holds the CRM-coded dropdown values of a person.
type CustomFields struct {
	GraduationYearID int64
	RecruitingStepID int64
	TermInterestIDs  []int64
	SourceReferredBy string
}

// ApplicantRecord is the normalized shape consumed by the CRM sync client.
// It exists only for the duration of one run.
type ApplicantRecord struct {
	FirstName   string
	LastName    string
	Email       string
	Mobile      string
	LinkedInURL string
	CompanyName string
	Position    string
	Summary     string
	Transcript  FileRef
	Resume      FileRef
	CustomFields CustomFields
}

// Documents returns the record's file references in the fixed sync order,
// transcript before resume, skipping files the submission did not include.
func (r *ApplicantRecord) Documents() []FileRef {
	docs := []FileRef{}
	if r.Transcript.URL != "" {
		docs = append(docs, r.Transcript)
	}
	if r.Resume.URL != "" {
		docs = append(docs, r.Resume)
	}
	return docs
}
