package handlers

import (
	"strconv"

	"hr_payroll/models"
	"hr_payroll/services"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
)

// RequestLeave runs the leave rules for the person in :id. A non-empty kind
// restricts the lookup to that variant.
func RequestLeave(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return invalidID(c)
		}

		var body LeaveRequestBody
		if err := c.BodyParser(&body); err != nil {
			return c.Status(400).JSON(types.APIResponse{
				Success: false,
				Error:   types.ErrInvalidInput,
			})
		}
		if err := utils.ValidateStruct(&body); err != nil {
			return err
		}

		start, _ := models.ParseDate(body.StartDate)
		end, _ := models.ParseDate(body.EndDate)

		request, err := LeaveService.RequestLeave(c.UserContext(), id, kind, start, end, body.LeaveType)
		if err != nil {
			return fail(c, err, "Failed to process leave request")
		}

		return c.Status(201).JSON(types.APIResponse{
			Success: true,
			Message: "Leave request approved",
			Data:    NewLeaveRequestResponse(request),
		})
	}
}

func GetLeaveRequests(c *fiber.Ctx) error {
	filter := services.LeaveFilter{
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}
	if raw := c.Query("person_id"); raw != "" {
		personID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return invalidID(c)
		}
		filter.PersonID = uint(personID)
	}

	return listLeaveRequests(c, filter)
}

func GetPersonLeaveRequests(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}
	if _, err := PersonService.FindByID(c.UserContext(), id, ""); err != nil {
		return fail(c, err, "Failed to fetch person")
	}

	return listLeaveRequests(c, services.LeaveFilter{PersonID: id})
}

func listLeaveRequests(c *fiber.Ctx, filter services.LeaveFilter) error {
	requests, err := LeaveService.List(c.UserContext(), filter)
	if err != nil {
		return fail(c, err, "Failed to fetch leave requests")
	}

	response := make([]LeaveRequestResponse, len(requests))
	for i := range requests {
		response[i] = NewLeaveRequestResponse(&requests[i])
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    response,
	})
}
