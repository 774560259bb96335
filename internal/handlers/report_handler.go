package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/fixmycity/fixmycity-backend/internal/dto"
	"github.com/fixmycity/fixmycity-backend/internal/middleware"
	"github.com/fixmycity/fixmycity-backend/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

func (h *ReportHandler) Submit(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized Access Denied")
	}

	var req dto.SubmitReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	report, err := h.reportService.Submit(c.Context(), user, &req)
	if err != nil {
		return Fail(c, err, "Failed To Submit Report")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SubmitReportResponse{
		Report: report,
		Msg:    "Report has been submitted successfully",
	})
}

func (h *ReportHandler) List(c *fiber.Ctx) error {
	page, limit := pagination(c, services.DefaultLimitAll)

	result, err := h.reportService.List(page, limit)
	if err != nil {
		return Fail(c, err, "Failed to Fetch Reports")
	}
	return c.JSON(result)
}

func (h *ReportHandler) Mine(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized Access Denied")
	}

	page, limit := pagination(c, services.DefaultLimitMine)

	result, err := h.reportService.Mine(user.ID, page, limit)
	if err != nil {
		return Fail(c, err, "Failed to Fetch Your Reports")
	}
	return c.JSON(result)
}

func (h *ReportHandler) ForAuthority(c *fiber.Ctx) error {
	authority := c.Params("authority")
	page, limit := pagination(c, services.DefaultLimitAuthority)

	result, err := h.reportService.ForAuthority(authority, page, limit)
	if err != nil {
		return Fail(c, err, "Failed to Fetch Authority Reports")
	}
	return c.JSON(result)
}

func (h *ReportHandler) Update(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized Access Denied")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid report ID")
	}

	var req dto.UpdateReportRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	report, err := h.reportService.Update(id, user, &req)
	if err != nil {
		return Fail(c, err, "Failed to update report")
	}

	return c.JSON(dto.UpdateReportResponse{
		Msg:    "Report updated successfully",
		Report: report,
	})
}

func (h *ReportHandler) Delete(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, fiber.StatusUnauthorized, "Unauthorized Access Denied")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return respondError(c, fiber.StatusBadRequest, "Invalid report ID")
	}

	if err := h.reportService.Delete(c.Context(), id, user.ID); err != nil {
		return Fail(c, err, "Failed to Delete Report")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func pagination(c *fiber.Ctx, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}
