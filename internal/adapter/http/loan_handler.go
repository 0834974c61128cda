package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	mw "loanhub-backend/internal/adapter/middleware"
	"loanhub-backend/internal/usecase/catalog"
	"loanhub-backend/internal/usecase/loan"
)

type LoanHandler struct {
	loans   *loan.Usecase
	catalog *catalog.Usecase
}

func NewLoanHandler(loans *loan.Usecase, cat *catalog.Usecase) *LoanHandler {
	return &LoanHandler{loans: loans, catalog: cat}
}

// bankIDQuery reads the optional bank_id filter; zero means any bank.
func bankIDQuery(c echo.Context) (uint64, bool) {
	v := c.QueryParam("bank_id")
	if v == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(v, 10, 64)
	return n, err == nil
}

// productQuery reads bank_id, min_amount and max_amount; all are optional.
func productQuery(c echo.Context) (catalog.ProductQuery, string) {
	var q catalog.ProductQuery
	bankID, ok := bankIDQuery(c)
	if !ok {
		return q, "invalid bank_id"
	}
	q.BankID = bankID
	for _, f := range []struct {
		name string
		dst  *decimal.Decimal
	}{{"min_amount", &q.MinAmount}, {"max_amount", &q.MaxAmount}} {
		v := c.QueryParam(f.name)
		if v == "" {
			continue
		}
		d, err := decimal.NewFromString(v)
		if err != nil || d.IsNegative() {
			return q, "invalid " + f.name
		}
		*f.dst = d
	}
	return q, ""
}

func (h *LoanHandler) ListProducts(c echo.Context) error {
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

func (h *LoanHandler) GetProduct(c echo.Context) error {
	pid, ok := uintParam(c, "id")
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.catalog.GetProduct(c.Request().Context(), pid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan_product": p})
}

func (h *LoanHandler) Apply(c echo.Context) error {
	var req loan.ApplyInput
	if resp := bind(c, &req); resp != nil {
		return c.JSON(http.StatusBadRequest, resp)
	}
	dto, err := h.loans.Apply(c.Request().Context(), mw.ApplicantID(c), req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "Loan application submitted successfully", "loan": dto})
}

func (h *LoanHandler) ListMine(c echo.Context) error {
	ls, err := h.loans.ListMine(c.Request().Context(), mw.ApplicantID(c), c.QueryParam("status"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loans": ls})
}

func (h *LoanHandler) GetMine(c echo.Context) error {
	loanID, ok := publicID(c, "loan_id")
	if !ok {
		return badRequest(c, "invalid loan_id")
	}
	dto, err := h.loans.GetMine(c.Request().Context(), mw.ApplicantID(c), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"loan": dto})
}

func (h *LoanHandler) PreClose(c echo.Context) error {
	loanID, ok := publicID(c, "loan_id")
	if !ok {
		return badRequest(c, "invalid loan_id")
	}
	dto, err := h.loans.PreClose(c.Request().Context(), mw.ApplicantID(c), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Loan pre-closed successfully", "loan": dto})
}

func (h *LoanHandler) Schedule(c echo.Context) error {
	loanID, ok := publicID(c, "loan_id")
	if !ok {
		return badRequest(c, "invalid loan_id")
	}
	s, err := h.loans.Schedule(c.Request().Context(), mw.ApplicantID(c), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}
