package model

import (
	"time"
)

// Submission is one completed form response, immutable once fetched. Answers
// are ordered by the form's question layout, so the slice index is the
// position consumed by the mapping table.
type Submission struct {
	ResponseID string
	CreateTime time.Time
	Answers    []Answer
}

// Answer normalizes the form API's answer shapes: single-choice, multi-choice
// and file uploads all collapse to value/file-id slices. Answered is false
// when the respondent skipped the question.
type Answer struct {
	QuestionID string
	Answered   bool
	Values     []string
	FileIDs    []string
}

// FileMeta is the resolved metadata of an uploaded file.
type FileMeta struct {
	Name        string
	DownloadURL string
}
