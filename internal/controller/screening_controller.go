package controller

import (
	"compliance-screening-be/internal/pkg/serverutils"
	"compliance-screening-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IScreeningController interface {
	RegisterRoutes(r fiber.Router)
	Screen(ctx *fiber.Ctx) error
	Count(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	Complexity(ctx *fiber.Ctx) error
	Aggregate(ctx *fiber.Ctx) error
	Snapshots(ctx *fiber.Ctx) error
}

type screeningController struct {
	screeningService service.IScreeningService
	previewLimit     int
}

func NewScreeningController(screeningService service.IScreeningService, previewLimit int) IScreeningController {
	if previewLimit <= 0 {
		previewLimit = 10
	}
	return &screeningController{
		screeningService: screeningService,
		previewLimit:     previewLimit,
	}
}

func (c *screeningController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/screening/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get(":orgId/screen", c.Screen)
	h.Get(":orgId/count", c.Count)
	h.Get(":orgId/preview", c.Preview)
	h.Get(":orgId/complexity", c.Complexity)
	h.Get(":orgId/aggregate", c.Aggregate)
	h.Get(":orgId/snapshots", c.Snapshots)
}

func orgIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("orgId"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid organization id")
	}
	return id, nil
}

func (c *screeningController) Screen(ctx *fiber.Ctx) error {
	orgId, err := orgIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.screeningService.Screen(ctx.Context(), orgId)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Organization not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success screen organization", res))
}

func (c *screeningController) Count(ctx *fiber.Ctx) error {
	orgId, err := orgIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.screeningService.Count(ctx.Context(), orgId)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Organization not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success count applicable laws", res))
}

func (c *screeningController) Preview(ctx *fiber.Ctx) error {
	orgId, err := orgIdParam(ctx)
	if err != nil {
		return err
	}
	limit := ctx.QueryInt("limit", c.previewLimit)

	res, err := c.screeningService.Preview(ctx.Context(), orgId, limit)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Organization not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success preview applicable laws", res))
}

func (c *screeningController) Complexity(ctx *fiber.Ctx) error {
	orgId, err := orgIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.screeningService.AnalyzeComplexity(ctx.Context(), orgId)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Organization not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success analyze profile complexity", res))
}

func (c *screeningController) Aggregate(ctx *fiber.Ctx) error {
	orgId, err := orgIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.screeningService.Aggregate(ctx.Context(), orgId)
	if err != nil {
		return err
	}
	if res == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Organization not found"))
	}

	return ctx.JSON(serverutils.SuccessResponse("Success aggregate locations", res))
}

func (c *screeningController) Snapshots(ctx *fiber.Ctx) error {
	orgId, err := orgIdParam(ctx)
	if err != nil {
		return err
	}
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.screeningService.ListSnapshots(ctx.Context(), orgId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list screening snapshots", res))
}
