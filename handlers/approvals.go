package handlers

import (
	"strconv"

	"hr_payroll/types"

	"github.com/gofiber/fiber/v2"
)

// ProcessApproval records the decision of manager :id on leave request
// :requestId. A rejection answers 403 with the notes as reason.
func ProcessApproval(c *fiber.Ctx) error {
	managerID, ok := parseID(c, "id")
	if !ok {
		return invalidID(c)
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Query parameter 'approved' must be true or false",
		})
	}

	request, err := LeaveService.ProcessApproval(c.UserContext(), managerID, c.Params("requestId"), approved, c.Query("notes"))
	if err != nil {
		return fail(c, err, "Failed to process approval")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Leave request confirmed",
		Data:    NewLeaveRequestResponse(request),
	})
}
