package controller

import (
	"errors"

	"luma-chat-be/internal/dto"
	"luma-chat-be/internal/pkg/serverutils"
	"luma-chat-be/internal/service"
	"luma-chat-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
	Reindex(ctx *fiber.Ctx) error
}

type chatController struct {
	chatService      service.IChatService
	publisherService service.IPublisherService
}

func NewChatController(chatService service.IChatService, publisherService service.IPublisherService) IChatController {
	return &chatController{
		chatService:      chatService,
		publisherService: publisherService,
	}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/v1")
	h.Post("/chat", c.Chat)
	h.Post("/kb/reindex", c.Reindex)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "message is required"))
	}

	res, err := c.chatService.Chat(ctx.Context(), &req)
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(serverutils.ErrorResponse(503, "The AI service is currently unavailable. Please try again later."))
		}
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(500, "An unexpected server error occurred."))
	}

	return ctx.JSON(serverutils.SuccessResponse(fiber.StatusOK, "Chat turn completed", res))
}

func (c *chatController) Reindex(ctx *fiber.Ctx) error {
	if err := c.publisherService.PublishReindexRequest(ctx.Context()); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(serverutils.ErrorResponse(500, "Failed to queue reindex request"))
	}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse[any](fiber.StatusAccepted, "Reindex queued", nil))
}
