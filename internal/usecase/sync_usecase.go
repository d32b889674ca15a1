package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/fadilmartias/recruiting-sync/internal/mapping"
	"github.com/fadilmartias/recruiting-sync/internal/model"
	"github.com/fadilmartias/recruiting-sync/internal/repository"
	"github.com/fadilmartias/recruiting-sync/internal/response"
	"github.com/fadilmartias/recruiting-sync/internal/service"
	"github.com/fadilmartias/recruiting-sync/internal/syncerr"
	"github.com/google/uuid"
)

type SyncUsecase struct {
	forms    service.FormSourceInterface
	pipeline service.PipelineServiceInterface
	mapper   *mapping.Mapper
	runRepo  *repository.SyncRunRepository // nil when run history is disabled
}

func NewSyncUsecase(forms service.FormSourceInterface, pipeline service.PipelineServiceInterface, mapper *mapping.Mapper, runRepo *repository.SyncRunRepository) *SyncUsecase {
	return &SyncUsecase{forms: forms, pipeline: pipeline, mapper: mapper, runRepo: runRepo}
}

// Run executes one synchronization pass: FETCH, MAP, LOOKUP_PERSON,
// UPSERT_PERSON, LOOKUP_DOCUMENTS, UPSERT_DOCUMENTS. Fetch and map failures
// abort the run; lookup failures degrade to not-found; a person write failure
// aborts before any document operation starts.
func (uc *SyncUsecase) Run(ctx context.Context) (*model.SyncResult, error) {
	run := &model.SyncRun{ID: uuid.New(), Status: "running", StartedAt: time.Now()}
	uc.record(run, uc.createRun)

	result, err := uc.sync(ctx)

	run.FinishedAt = time.Now()
	if err != nil {
		run.Status = "failed"
		run.Error = err.Error()
	} else {
		run.Status = "completed"
		run.PersonID = result.PersonID
		run.PersonAction = result.PersonAction
		run.DocumentsCreated = result.DocumentsCreated
		run.DocumentsUpdated = result.DocumentsUpdated
		if result.DocumentsFailed > 0 {
			run.Status = "partial"
			run.Error = fmt.Sprintf("%d document operation(s) failed", result.DocumentsFailed)
		}
	}
	uc.record(run, uc.updateRun)

	return result, err
}

func (uc *SyncUsecase) sync(ctx context.Context) (*model.SyncResult, error) {
	sub, err := uc.forms.FetchLatest(ctx)
	if err != nil {
		return nil, err
	}
	log.Printf("Fetched submission %s created at %s", sub.ResponseID, sub.CreateTime.Format(time.RFC3339))

	catalogs, err := uc.pipeline.FetchCatalogs(ctx)
	if err != nil {
		return nil, err
	}

	rec, err := uc.mapper.Map(ctx, sub, catalogs, time.Now())
	if err != nil {
		return nil, err
	}

	personID, err := uc.pipeline.FindPerson(ctx, rec)
	if err != nil {
		// absorbed: query errors and empty result sets both route to create
		log.Printf("Person lookup: %v", err)
		personID = 0
	}

	result := &model.SyncResult{}
	if personID == 0 {
		id, err := uc.pipeline.CreatePerson(ctx, rec)
		if err != nil {
			return nil, err
		}
		result.PersonID, result.PersonAction = id, "created"
		log.Printf("Created person %d (%s %s)", id, rec.FirstName, rec.LastName)
	} else {
		id, err := uc.pipeline.UpdatePerson(ctx, personID, rec)
		if err != nil {
			return nil, err
		}
		result.PersonID, result.PersonAction = id, "updated"
		log.Printf("Updated person %d (%s %s)", id, rec.FirstName, rec.LastName)
	}

	// existence tracked per document, transcript before resume
	for _, doc := range rec.Documents() {
		docID, err := uc.pipeline.FindDocument(ctx, doc.Title)
		if err != nil {
			if !errors.Is(err, syncerr.ErrNotFound) {
				log.Printf("Document lookup for %q: %v", doc.Title, err)
			}
			if _, err := uc.pipeline.CreateDocument(ctx, result.PersonID, doc); err != nil {
				log.Printf("Create document %q: %v", doc.Title, err)
				result.DocumentsFailed++
				continue
			}
			result.DocumentsCreated++
			continue
		}
		if err := uc.pipeline.UpdateDocument(ctx, docID, result.PersonID, doc); err != nil {
			log.Printf("Update document %q: %v", doc.Title, err)
			result.DocumentsFailed++
			continue
		}
		result.DocumentsUpdated++
	}

	return result, nil
}

func (uc *SyncUsecase) GetRun(id string) (*model.SyncRun, error) {
	if uc.runRepo == nil {
		return nil, fmt.Errorf("run history is disabled")
	}
	return uc.runRepo.FindRunByID(id)
}

func (uc *SyncUsecase) ListRuns(page, pageSize int) ([]model.SyncRun, *response.Pagination, error) {
	if uc.runRepo == nil {
		return nil, nil, fmt.Errorf("run history is disabled")
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	total, err := uc.runRepo.CountRuns()
	if err != nil {
		return nil, nil, err
	}
	runs, err := uc.runRepo.ListRuns(pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, nil, err
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)
	pagination := &response.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalItems: total,
		HasMore:    int64(page) < totalPages,
		From:       (page-1)*pageSize + 1,
		To:         (page-1)*pageSize + len(runs),
	}
	return runs, pagination, nil
}

func (uc *SyncUsecase) record(run *model.SyncRun, write func(*model.SyncRun) error) {
	if uc.runRepo == nil {
		return
	}
	if err := write(run); err != nil {
		log.Printf("Run history write for %s: %v", run.ID, err)
	}
}

func (uc *SyncUsecase) createRun(run *model.SyncRun) error { return uc.runRepo.CreateRun(run) }
func (uc *SyncUsecase) updateRun(run *model.SyncRun) error { return uc.runRepo.UpdateRun(run) }
