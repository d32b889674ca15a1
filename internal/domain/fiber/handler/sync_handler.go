package handler

import (
	"context"
	"log"
	"time"

	"github.com/fadilmartias/recruiting-sync/internal/dto"
	"github.com/fadilmartias/recruiting-sync/internal/middleware"
	"github.com/fadilmartias/recruiting-sync/internal/model"
	"github.com/fadilmartias/recruiting-sync/internal/usecase"
	"github.com/fadilmartias/recruiting-sync/internal/util"
	"github.com/gofiber/fiber/v2"
)

type SyncHandler struct {
	uc *usecase.SyncUsecase
}

func NewSyncHandler(uc *usecase.SyncUsecase) *SyncHandler {
	return &SyncHandler{uc: uc}
}

func (h *SyncHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Index)
	app.Post("/updatePD", middleware.RateLimiter(1, 4*time.Second), h.UpdatePD)
	app.Get("/runs", h.Runs)
	app.Get("/runs/:id", h.RunDetail)
}

func (h *SyncHandler) Index(c *fiber.Ctx) error {
	return c.SendString("api home")
}

// UpdatePD runs one synchronization pass to completion. The response body is
// fixed; details go to the log and the run history.
func (h *SyncHandler) UpdatePD(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := h.uc.Run(ctx)
	if err != nil {
		log.Printf("Sync run failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"response": "unable to update pipeline"})
	}

	log.Printf("Sync run %s person %d (documents: %d created, %d updated, %d failed)",
		result.PersonAction, result.PersonID,
		result.DocumentsCreated, result.DocumentsUpdated, result.DocumentsFailed)
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"response": "successfully updated pipeline"})
}

func (h *SyncHandler) Runs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 20)

	runs, pagination, err := h.uc.ListRuns(page, pageSize)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "run history unavailable",
		}, err)
	}

	data := make([]dto.SyncRunDTO, 0, len(runs))
	for _, run := range runs {
		data = append(data, toRunDTO(&run))
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:       fiber.StatusOK,
		Message:    "Success get sync runs",
		Data:       data,
		Pagination: pagination,
	})
}

func (h *SyncHandler) RunDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	run, err := h.uc.GetRun(id)
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusNotFound,
			Message: "run not found",
		}, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusOK,
		Message: "Success get sync run",
		Data:    toRunDTO(run),
	})
}

func toRunDTO(run *model.SyncRun) dto.SyncRunDTO {
	return dto.SyncRunDTO{
		ID:               run.ID,
		Status:           run.Status,
		PersonID:         run.PersonID,
		PersonAction:     run.PersonAction,
		DocumentsCreated: run.DocumentsCreated,
		DocumentsUpdated: run.DocumentsUpdated,
		Error:            run.Error,
		StartedAt:        run.StartedAt,
		FinishedAt:       run.FinishedAt,
	}
}
