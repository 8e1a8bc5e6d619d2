package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// JobApplicationsHandler exposes job application endpoints. Submitting an
// application is public: applicants do not have accounts yet.
type JobApplicationsHandler struct {
	applications *service.JobApplicationService
}

// NewJobApplicationsHandler constructs handler.
func NewJobApplicationsHandler(applications *service.JobApplicationService) *JobApplicationsHandler {
	return &JobApplicationsHandler{applications: applications}
}

// List handles GET /api/job-applications.
func (h *JobApplicationsHandler) List(c *fiber.Ctx) error {
	applications, err := h.applications.ListApplications(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]fiber.Map, 0, len(applications))
	for i := range applications {
		items = append(items, applicationResponse(&applications[i]))
	}
	return respond(c, http.StatusOK, "Applications retrieved", items)
}

// Get handles GET /api/job-applications/:id.
func (h *JobApplicationsHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid id")
	}
	application, err := h.applications.GetApplication(c.UserContext(), id)
	if err != nil {
		return apperrors.NewNotFound("Application not found")
	}
	return respond(c, http.StatusOK, "Application retrieved", applicationResponse(application))
}

// Create handles POST /api/job-applications.
func (h *JobApplicationsHandler) Create(c *fiber.Ctx) error {
	application, err := parseApplication(c)
	if err != nil {
		return err
	}
	created, err := h.applications.CreateApplication(c.UserContext(), application)
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, "Application submitted successfully", applicationResponse(created))
}

// Update handles PUT /api/job-applications/:id.
func (h *JobApplicationsHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid id")
	}
	application, err := parseApplication(c)
	if err != nil {
		return err
	}
	application.ID = id

	updated, err := h.applications.UpdateApplication(c.UserContext(), application)
	if err != nil {
		return apperrors.NewNotFound("Application not found")
	}
	return respond(c, http.StatusOK, "Application updated successfully", applicationResponse(updated))
}

// Delete handles DELETE /api/job-applications/:id.
func (h *JobApplicationsHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return apperrors.NewValidationError("invalid id")
	}
	if err := h.applications.DeleteApplication(c.UserContext(), id); err != nil {
		return apperrors.NewNotFound("Application not found")
	}
	return respond(c, http.StatusOK, "Application deleted successfully", nil)
}

func parseApplication(c *fiber.Ctx) (*domain.JobApplication, error) {
	var req dto.JobApplicationPayload
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload")
	}
	if err := dto.Validate(req); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	return &domain.JobApplication{
		ApplicantName: req.ApplicantName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		ResumeLink:    req.ResumeLink,
		Status:        domain.ApplicationStatus(req.Status),
	}, nil
}

func applicationResponse(application *domain.JobApplication) fiber.Map {
	return fiber.Map{
		"id":            application.ID,
		"applicantName": application.ApplicantName,
		"email":         application.Email,
		"phoneNumber":   application.PhoneNumber,
		"resumeLink":    application.ResumeLink,
		"appliedDate":   application.AppliedDate.Format("2006-01-02"),
		"status":        string(application.Status),
	}
}
