package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"loan-booklet-be/internal/dto"
	"loan-booklet-be/internal/pkg/serverutils"
	"loan-booklet-be/internal/service"
)

type IBookletController interface {
	RegisterRoutes(r fiber.Router)
	Schemes(ctx *fiber.Ctx) error
	GetDraft(ctx *fiber.Ctx) error
	UpdateField(ctx *fiber.Ctx) error
	ResetDraft(ctx *fiber.Ctx) error
	AddRecord(ctx *fiber.Ctx) error
	UpdateRecord(ctx *fiber.Ctx) error
	DeleteRecord(ctx *fiber.Ctx) error
	ImportDraft(ctx *fiber.Ctx) error
	ExportDraft(ctx *fiber.Ctx) error
	NextStep(ctx *fiber.Ctx) error
	BackStep(ctx *fiber.Ctx) error
	JumpStep(ctx *fiber.Ctx) error
	Validate(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
}

type bookletController struct {
	draftService      service.IDraftService
	submissionService service.ISubmissionService
	schemeService     service.ISchemeService
}

func NewBookletController(
	draftService service.IDraftService,
	submissionService service.ISubmissionService,
	schemeService service.ISchemeService,
) IBookletController {
	return &bookletController{
		draftService:      draftService,
		submissionService: submissionService,
		schemeService:     schemeService,
	}
}

func (c *bookletController) RegisterRoutes(r fiber.Router) {
	r.Get("/booklet/v1/schemes", c.Schemes)

	h := r.Group("/booklet/v1/:scheme")
	h.Use(serverutils.JwtMiddleware) // ✅ PROTECTED: Wajib login
	h.Get("draft", c.GetDraft)
	h.Put("draft/fields", c.UpdateField)
	h.Delete("draft", c.ResetDraft)
	h.Post("draft/records/:list", c.AddRecord)
	h.Put("draft/records/:list/:index", c.UpdateRecord)
	h.Delete("draft/records/:list/:index", c.DeleteRecord)
	h.Post("draft/import", c.ImportDraft)
	h.Get("draft/export", c.ExportDraft)
	h.Post("steps/next", c.NextStep)
	h.Post("steps/back", c.BackStep)
	h.Post("steps/jump", c.JumpStep)
	h.Post("validate", c.Validate)
	h.Post("submit", c.Submit)
	h.Get("submissions", c.History)
}

func (c *bookletController) Schemes(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success list schemes", c.schemeService.List()))
}

func (c *bookletController) GetDraft(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	res, err := c.draftService.Get(ctx.Context(), userId, ctx.Params("scheme"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show draft", res))
}

func (c *bookletController) UpdateField(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.UpdateFieldRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.draftService.UpdateField(ctx.Context(), userId, ctx.Params("scheme"), &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update field", res))
}

func (c *bookletController) ResetDraft(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	res, err := c.draftService.Reset(ctx.Context(), userId, ctx.Params("scheme"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success reset draft", res))
}

func (c *bookletController) AddRecord(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	res, err := c.draftService.AddRecord(ctx.Context(), userId, ctx.Params("scheme"), ctx.Params("list"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success add record", res))
}

func (c *bookletController) UpdateRecord(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid record index"))
	}

	var req dto.UpdateRecordRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.draftService.UpdateRecord(ctx.Context(), userId, ctx.Params("scheme"), ctx.Params("list"), index, &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update record", res))
}

func (c *bookletController) DeleteRecord(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	index, err := strconv.Atoi(ctx.Params("index"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid record index"))
	}

	res, err := c.draftService.DeleteRecord(ctx.Context(), userId, ctx.Params("scheme"), ctx.Params("list"), index)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success delete record", res))
}

func (c *bookletController) ImportDraft(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	res, err := c.draftService.Import(ctx.Context(), userId, ctx.Params("scheme"), ctx.Body())
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success import draft", res))
}

func (c *bookletController) ExportDraft(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	raw, err := c.draftService.Export(ctx.Context(), userId, ctx.Params("scheme"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Send(raw)
}

func (c *bookletController) NextStep(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	res, err := c.draftService.Next(ctx.Context(), userId, ctx.Params("scheme"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success advance step", res))
}

func (c *bookletController) BackStep(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	res, err := c.draftService.Back(ctx.Context(), userId, ctx.Params("scheme"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success step back", res))
}

func (c *bookletController) JumpStep(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.StepRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.draftService.Jump(ctx.Context(), userId, ctx.Params("scheme"), req.Step)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success jump step", res))
}

func (c *bookletController) Validate(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	var req dto.ValidateDraftRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.draftService.Validate(ctx.Context(), userId, ctx.Params("scheme"), &req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success validate draft", res))
}

func (c *bookletController) Submit(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	res, err := c.submissionService.Submit(ctx.Context(), userId, ctx.Params("scheme"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success submit booklet", res))
}

func (c *bookletController) History(ctx *fiber.Ctx) error {
	userId := userIdFromCtx(ctx)

	res, err := c.submissionService.History(ctx.Context(), userId, ctx.Params("scheme"), ctx.QueryInt("limit"))
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list submissions", res))
}

func userIdFromCtx(ctx *fiber.Ctx) uuid.UUID {
	userIdStr, _ := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)
	return userId
}

// respondServiceError maps service failures onto HTTP statuses.
func respondServiceError(ctx *fiber.Ctx, err error) error {
	var validationErr *service.ValidationFailedError
	if errors.As(err, &validationErr) {
		return ctx.Status(fiber.StatusUnprocessableEntity).
			JSON(serverutils.ValidationErrorResponse(fiber.StatusUnprocessableEntity, "Draft failed validation", validationErr.Errors))
	}

	switch {
	case errors.Is(err, service.ErrUnknownScheme),
		errors.Is(err, service.ErrUnknownList),
		errors.Is(err, service.ErrRecordNotFound),
		errors.Is(err, service.ErrDraftMissing),
		errors.Is(err, service.ErrUserNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, err.Error()))
	case errors.Is(err, service.ErrSubmissionInFlight):
		return ctx.Status(fiber.StatusConflict).JSON(serverutils.ErrorResponse(409, err.Error()))
	case errors.Is(err, service.ErrProfileIncomplete):
		return ctx.Status(fiber.StatusPreconditionFailed).JSON(serverutils.ErrorResponse(412, err.Error()))
	case errors.Is(err, service.ErrReadOnlyField),
		errors.Is(err, service.ErrJumpNotAllowed),
		errors.Is(err, service.ErrStepOutOfRange),
		errors.Is(err, service.ErrImportInvalid):
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
}
