package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	mw "loanhub-backend/internal/adapter/middleware"
	domain "loanhub-backend/internal/domain/applicant"
	"loanhub-backend/internal/usecase/applicant"
)

type (
	financialOp  func(context.Context, string, applicant.FinancialInput) (*domain.FinancialProfile, error)
	employmentOp func(context.Context, string, applicant.EmploymentInput) (*domain.EmploymentProfile, error)
)

type ApplicantHandler struct{ uc *applicant.Usecase }

func NewApplicantHandler(uc *applicant.Usecase) *ApplicantHandler {
	return &ApplicantHandler{uc: uc}
}

func (h *ApplicantHandler) GetProfile(c echo.Context) error {
	user, err := h.uc.GetProfile(c.Request().Context(), mw.ApplicantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"user": user})
}

func (h *ApplicantHandler) UpdateProfile(c echo.Context) error {
	var req applicant.UpdateProfileInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	user, err := h.uc.UpdateProfile(c.Request().Context(), mw.ApplicantID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Profile updated successfully", "user": user})
}

func (h *ApplicantHandler) GetFinancial(c echo.Context) error {
	fp, err := h.uc.GetFinancial(c.Request().Context(), mw.ApplicantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"financial_details": fp})
}

func (h *ApplicantHandler) CreateFinancial(c echo.Context) error {
	return h.writeFinancial(c, h.uc.CreateFinancial, http.StatusCreated, "Financial details created successfully")
}

func (h *ApplicantHandler) UpdateFinancial(c echo.Context) error {
	return h.writeFinancial(c, h.uc.UpdateFinancial, http.StatusOK, "Financial details updated successfully")
}

func (h *ApplicantHandler) writeFinancial(c echo.Context, op financialOp, status int, msg string) error {
	var req applicant.FinancialInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	fp, err := op(c.Request().Context(), mw.ApplicantID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(status, map[string]any{"message": msg, "financial_details": fp})
}

func (h *ApplicantHandler) GetEmployment(c echo.Context) error {
	ep, err := h.uc.GetEmployment(c.Request().Context(), mw.ApplicantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"employment_details": ep})
}

func (h *ApplicantHandler) CreateEmployment(c echo.Context) error {
	return h.writeEmployment(c, h.uc.CreateEmployment, http.StatusCreated, "Employment details created successfully")
}

func (h *ApplicantHandler) UpdateEmployment(c echo.Context) error {
	return h.writeEmployment(c, h.uc.UpdateEmployment, http.StatusOK, "Employment details updated successfully")
}

func (h *ApplicantHandler) writeEmployment(c echo.Context, op employmentOp, status int, msg string) error {
	var req applicant.EmploymentInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	ep, err := op(c.Request().Context(), mw.ApplicantID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(status, map[string]any{"message": msg, "employment_details": ep})
}

func (h *ApplicantHandler) ListDocuments(c echo.Context) error {
	docs, err := h.uc.ListDocuments(c.Request().Context(), mw.ApplicantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, docs)
}

// UploadDocument takes a multipart form with "file" and "document_type".
func (h *ApplicantHandler) UploadDocument(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, err)
	}
	defer f.Close()

	doc, err := h.uc.UploadDocument(c.Request().Context(), mw.ApplicantID(c), applicant.UploadInput{
		DocumentType: c.FormValue("document_type"),
		FileName:     fh.Filename,
		Content:      f,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "Document uploaded successfully", "document": doc})
}
