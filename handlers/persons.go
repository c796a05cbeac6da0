package handlers

import (
	"strconv"
	"strings"

	"hr_payroll/models"
	"hr_payroll/types"
	"hr_payroll/utils"

	"github.com/gofiber/fiber/v2"
)

func parsePersonRequest(c *fiber.Ctx) (*PersonRequest, error) {
	var req PersonRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, types.ValidationFailed("%s: %v", types.ErrInvalidInput, err)
	}
	if err := utils.ValidateStruct(&req); err != nil {
		return nil, err
	}
	return &req, nil
}

// resolveKind returns the route's kind, or the one named in the body on
// /api/persons.
func resolveKind(kind models.Kind, req *PersonRequest) (models.Kind, error) {
	if kind != "" {
		return kind, nil
	}
	if req.Kind == "" {
		return "", types.ValidationFailed("kind is required")
	}
	return models.Kind(strings.ToUpper(req.Kind)), nil
}

// ListPersons returns every person of kind, or everyone for an empty kind.
func ListPersons(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			persons []models.Person
			err     error
		)
		if kind == "" {
			persons, err = PersonService.FindAll(c.UserContext())
		} else {
			persons, err = PersonService.FindByKind(c.UserContext(), kind)
		}
		if err != nil {
			return fail(c, err, "Failed to fetch persons")
		}

		return c.JSON(types.APIResponse{
			Success: true,
			Data:    NewPersonResponses(persons, today()),
		})
	}
}

func GetPerson(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return invalidID(c)
		}

		person, err := PersonService.FindByID(c.UserContext(), id, kind)
		if err != nil {
			return fail(c, err, "Failed to fetch person")
		}

		return c.JSON(types.APIResponse{
			Success: true,
			Data:    NewPersonResponse(person, today()),
		})
	}
}

func CreatePerson(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := parsePersonRequest(c)
		if err != nil {
			return err
		}
		resolved, err := resolveKind(kind, req)
		if err != nil {
			return err
		}

		person := req.ToPerson(resolved)
		if err := PersonService.Create(c.UserContext(), person); err != nil {
			return fail(c, err, "Failed to create person")
		}

		return c.Status(201).JSON(types.APIResponse{
			Success: true,
			Message: person.TypeName() + " created successfully",
			Data:    NewPersonResponse(person, today()),
		})
	}
}

func UpdatePerson(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return invalidID(c)
		}

		req, err := parsePersonRequest(c)
		if err != nil {
			return err
		}

		person, err := PersonService.Update(c.UserContext(), id, kind, req.ApplyTo)
		if err != nil {
			return fail(c, err, "Failed to update person")
		}

		return c.JSON(types.APIResponse{
			Success: true,
			Message: person.TypeName() + " updated successfully",
			Data:    NewPersonResponse(person, today()),
		})
	}
}

func DeletePerson(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c, "id")
		if !ok {
			return invalidID(c)
		}

		if err := PersonService.Delete(c.UserContext(), id, kind); err != nil {
			return fail(c, err, "Failed to delete person")
		}

		return c.JSON(types.APIResponse{
			Success: true,
			Message: "Person deleted successfully",
		})
	}
}

func SearchPersons(c *fiber.Ctx) error {
	persons, err := PersonService.SearchByName(c.UserContext(), c.Query("name"))
	if err != nil {
		return fail(c, err, "Failed to search persons")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    NewPersonResponses(persons, today()),
	})
}

func ActiveContracts(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		persons, err := PersonService.FindActiveContracts(c.UserContext(), kind)
		if err != nil {
			return fail(c, err, "Failed to fetch active contracts")
		}

		return c.JSON(types.APIResponse{
			Success: true,
			Data:    NewPersonResponses(persons, today()),
		})
	}
}

func FullTimeByDepartment(c *fiber.Ctx) error {
	department := strings.TrimSpace(c.Query("name"))
	if department == "" {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Query parameter 'name' is required",
		})
	}

	persons, err := PersonService.FindFullTimeByDepartment(c.UserContext(), department)
	if err != nil {
		return fail(c, err, "Failed to fetch department employees")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    NewPersonResponses(persons, today()),
	})
}

func CreateFullTimeBatch(c *fiber.Ctx) error {
	var reqs []PersonRequest
	if err := c.BodyParser(&reqs); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	persons := make([]models.Person, 0, len(reqs))
	for i := range reqs {
		if err := utils.ValidateStruct(&reqs[i]); err != nil {
			return types.Prefix(err, "record %d", i)
		}
		persons = append(persons, *reqs[i].ToPerson(models.KindFullTime))
	}

	if err := PersonService.CreateBatch(c.UserContext(), models.KindFullTime, persons); err != nil {
		return fail(c, err, "Failed to create batch")
	}

	return c.Status(201).JSON(types.APIResponse{
		Success: true,
		Message: strconv.Itoa(len(persons)) + " full-time employees created",
		Data:    NewPersonResponses(persons, today()),
	})
}

func HourlyByHours(c *fiber.Ctx) error {
	hours, err := strconv.Atoi(c.Query("hours", "0"))
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Query parameter 'hours' must be an integer",
		})
	}

	persons, err := PersonService.FindHourlyWithMoreHoursThan(c.UserContext(), hours)
	if err != nil {
		return fail(c, err, "Failed to fetch hourly employees")
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    NewPersonResponses(persons, today()),
	})
}
