package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	mw "loanhub-backend/internal/adapter/middleware"
	"loanhub-backend/internal/domain/document"
	"loanhub-backend/internal/usecase/admin"
	"loanhub-backend/internal/usecase/catalog"
	"loanhub-backend/internal/usecase/loan"
)

type AdminHandler struct {
	admin   *admin.Usecase
	catalog *catalog.Usecase
}

func NewAdminHandler(a *admin.Usecase, cat *catalog.Usecase) *AdminHandler {
	return &AdminHandler{admin: a, catalog: cat}
}

type (
	loanDecision     func(ctx context.Context, adminID, loanID string, in admin.DecisionInput) (*loan.LoanDTO, error)
	documentDecision func(ctx context.Context, adminID, documentID string, in admin.DecisionInput) (*document.Document, error)
)

func (h *AdminHandler) ListLoans(c echo.Context) error {
	bankID, ok := bankIDQuery(c)
	if !ok {
		return badRequest(c, "invalid bank_id")
	}
	ls, err := h.admin.ListLoans(c.Request().Context(), c.QueryParam("status"), bankID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": ls})
}

func (h *AdminHandler) Approve(c echo.Context) error {
	return h.decideLoan(c, h.admin.Approve, "Loan approved successfully")
}

func (h *AdminHandler) Reject(c echo.Context) error {
	return h.decideLoan(c, h.admin.Reject, "Loan rejected successfully")
}

func (h *AdminHandler) Disburse(c echo.Context) error {
	return h.decideLoan(c, h.admin.Disburse, "Loan disbursed successfully")
}

func (h *AdminHandler) decideLoan(c echo.Context, op loanDecision, msg string) error {
	loanID, ok := publicID(c, "loan_id")
	if !ok {
		return badRequest(c, "invalid loan_id")
	}
	var req admin.DecisionInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	dto, err := op(c.Request().Context(), mw.ApplicantID(c), loanID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": msg, "loan": dto})
}

func (h *AdminHandler) ListBanks(c echo.Context) error {
	banks, err := h.catalog.ListBanks(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"banks": banks})
}

func (h *AdminHandler) CreateBank(c echo.Context) error {
	var req catalog.BankInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	b, err := h.catalog.CreateBank(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "Bank created successfully", "bank": b})
}

func (h *AdminHandler) UpdateBank(c echo.Context) error {
	bankID, ok := uintParam(c, "id")
	if !ok {
		return badRequest(c, "invalid bank id")
	}
	var req catalog.BankInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	b, err := h.catalog.UpdateBank(c.Request().Context(), bankID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Bank updated successfully", "bank": b})
}

func (h *AdminHandler) ListProducts(c echo.Context) error {
	q, bad := productQuery(c)
	if bad != "" {
		return badRequest(c, bad)
	}
	ps, err := h.catalog.ListProducts(c.Request().Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_products": ps})
}

func (h *AdminHandler) CreateProduct(c echo.Context) error {
	var req catalog.ProductInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	p, err := h.catalog.CreateProduct(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "Loan product created successfully", "loan_product": p})
}

func (h *AdminHandler) UpdateProduct(c echo.Context) error {
	productID, ok := uintParam(c, "id")
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var req catalog.ProductInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	p, err := h.catalog.UpdateProduct(c.Request().Context(), productID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Loan product updated successfully", "loan_product": p})
}

func (h *AdminHandler) ListDocuments(c echo.Context) error {
	docs, err := h.admin.ListDocuments(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"documents": docs})
}

func (h *AdminHandler) VerifyDocument(c echo.Context) error {
	return h.reviewDocument(c, h.admin.VerifyDocument, "Document verified")
}

func (h *AdminHandler) RejectDocument(c echo.Context) error {
	return h.reviewDocument(c, h.admin.RejectDocument, "Document rejected")
}

func (h *AdminHandler) reviewDocument(c echo.Context, op documentDecision, msg string) error {
	docID, ok := publicID(c, "document_id")
	if !ok {
		return badRequest(c, "invalid document_id")
	}
	var req admin.DecisionInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	d, err := op(c.Request().Context(), mw.ApplicantID(c), docID, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": msg, "document": d})
}

func (h *AdminHandler) Statistics(c echo.Context) error {
	s, err := h.admin.Statistics(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
