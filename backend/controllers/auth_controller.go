package controllers

import (
	"fmt"
	"strconv"

	"finquest/backend/export"
	"finquest/backend/services"
	"finquest/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Students *services.StudentService
}

func NewAuthController(students *services.StudentService) *AuthController {
	return &AuthController{Students: students}
}

// Register godoc
// @Summary Register a new student
// @Description Validates the registration form and returns the generated NIP
// @Tags auth
// @Accept json
// @Produce json
// @Param student body map[string]interface{} true "Registration form"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var form map[string]interface{}
	if err := decodeJSON(c, &form); err != nil || form == nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}

	student, err := ac.Students.Register(c.UserContext(), services.RegistrationInput{
		Name:       formValue(form, "nombre"),
		Surnames:   formValue(form, "apellidos"),
		Age:        formValue(form, "edad"),
		School:     formValue(form, "escuela"),
		Grade:      formValue(form, "grado"),
		BirthDate:  formValue(form, "fechaNacimiento"),
		TutorName:  formValue(form, "nombreTutor"),
		TutorEmail: formValue(form, "emailTutor"),
	})
	if err != nil {
		return utils.Error(c, err)
	}

	return utils.SuccessMessage(c, fiber.Map{
		"student": student,
		"nip":     student.NIP,
	}, "Estudiante registrado exitosamente")
}

// Login godoc
// @Summary Student login
// @Description Opens a game session for an active student
// @Tags auth
// @Produce json
// @Param nip path string true "Student NIP"
// @Success 200 {object} utils.SuccessResponse
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /auth/login/{nip} [get]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	res, err := ac.Students.Login(c.UserContext(), c.Params("nip"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.SuccessMessage(c, res, "Inicio de sesión exitoso")
}

// Logout godoc
// @Summary Close a session
// @Description Stores the session totals and its duration
// @Tags auth
// @Accept json
// @Produce json
// @Param session_id path int true "Session ID"
// @Param totals body services.LogoutInput false "Session totals"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /auth/logout/{session_id} [post]
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	sessionID, ok := idParam(c, "session_id")
	if !ok {
		return utils.NotFound(c, "session not found")
	}

	var in services.LogoutInput
	if err := decodeJSON(c, &in); err != nil {
		return utils.BadRequest(c, "cannot parse JSON")
	}

	session, err := ac.Students.Logout(c.UserContext(), sessionID, in)
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.SuccessMessage(c, session, "Sesión cerrada exitosamente")
}

// GetStudent godoc
// @Summary Student profile
// @Description Returns the student, its progress and session statistics
// @Tags auth
// @Produce json
// @Param nip path string true "Student NIP"
// @Success 200 {object} utils.SuccessResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /auth/student/{nip} [get]
func (ac *AuthController) GetStudent(c *fiber.Ctx) error {
	info, err := ac.Students.GetInfo(c.UserContext(), c.Params("nip"))
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.Success(c, info)
}

// ListStudents godoc
// @Summary Active students
// @Description Lists active students, newest first
// @Tags auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/students [get]
func (ac *AuthController) ListStudents(c *fiber.Ctx) error {
	students, err := ac.Students.ListActive(c.UserContext())
	if err != nil {
		return utils.Error(c, err)
	}
	return utils.SuccessWith(c, students, fiber.Map{"total": len(students)})
}

// ExportStudents godoc
// @Summary Export active students
// @Description Same rows as the students list as an Excel workbook
// @Tags auth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/students/export [get]
func (ac *AuthController) ExportStudents(c *fiber.Ctx) error {
	students, err := ac.Students.ListActive(c.UserContext())
	if err != nil {
		return utils.Error(c, err)
	}
	data, err := export.StudentsXLSX(students)
	if err != nil {
		return utils.Error(c, err)
	}

	c.Set(fiber.HeaderContentType, export.XLSXContentType)
	c.Attachment(export.StudentsFileName)
	return c.Send(data)
}

// formValue reads a form field as text. JSON numbers keep their literal form
// so "edad": 10 and "edad": "10" are the same.
func formValue(form map[string]interface{}, key string) string {
	switch v := form[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if !v {
			return ""
		}
		return "true"
	default:
		return fmt.Sprint(v)
	}
}
