package controller

import (
	"ai-notes-be/internal/dto"
	"ai-notes-be/internal/pkg/serverutils"
	"ai-notes-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAiController interface {
	RegisterRoutes(r fiber.Router)
	Summarize(ctx *fiber.Ctx) error
	Categorize(ctx *fiber.Ctx) error
	GenerateTags(ctx *fiber.Ctx) error
}

type aiController struct {
	aiService service.IAiService
}

func NewAiController(aiService service.IAiService) IAiController {
	return &aiController{
		aiService: aiService,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai")
	h.Use(serverutils.JwtMiddleware)
	h.Post("summarize", c.Summarize)
	h.Post("categorize", c.Categorize)
	h.Post("tags", c.GenerateTags)
}

func (c *aiController) Summarize(ctx *fiber.Ctx) error {
	req, err := parseAiRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.aiService.Summarize(ctx.Context(), currentUserId(ctx), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *aiController) Categorize(ctx *fiber.Ctx) error {
	req, err := parseAiRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.aiService.Categorize(ctx.Context(), currentUserId(ctx), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}

func (c *aiController) GenerateTags(ctx *fiber.Ctx) error {
	req, err := parseAiRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.aiService.GenerateTags(ctx.Context(), currentUserId(ctx), req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse(res))
}

func parseAiRequest(ctx *fiber.Ctx) (*dto.AiContentRequest, error) {
	var req dto.AiContentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, serverutils.NewValidationError([]serverutils.FieldError{
			{Field: "body", Message: "Invalid request body"},
		})
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}

	return &req, nil
}
