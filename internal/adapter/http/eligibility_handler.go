package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "loanhub-backend/internal/adapter/middleware"
	"loanhub-backend/internal/usecase/eligibility"
)

type EligibilityHandler struct{ uc *eligibility.Usecase }

func NewEligibilityHandler(uc *eligibility.Usecase) *EligibilityHandler {
	return &EligibilityHandler{uc: uc}
}

func (h *EligibilityHandler) Check(c echo.Context) error {
	var req eligibility.CheckInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	res, err := h.uc.Check(c.Request().Context(), mw.ApplicantID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// CalculateEMI is public and stateless.
func (h *EligibilityHandler) CalculateEMI(c echo.Context) error {
	var req eligibility.EMIInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	res, err := h.uc.CalculateEMI(req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
