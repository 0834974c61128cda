package http

import (
	"context"
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	mw "loanhub-backend/internal/adapter/middleware"
	"loanhub-backend/internal/infrastructure/security"
	"loanhub-backend/internal/metrics"
	"loanhub-backend/internal/usecase/admin"
	"loanhub-backend/internal/usecase/applicant"
	"loanhub-backend/internal/usecase/auth"
	"loanhub-backend/internal/usecase/catalog"
	"loanhub-backend/internal/usecase/eligibility"
	"loanhub-backend/internal/usecase/loan"
)

// Deps is everything the routes need. Redis and Metrics may be nil.
type Deps struct {
	Auth        *auth.Usecase
	Applicants  *applicant.Usecase
	Catalog     *catalog.Usecase
	Loans       *loan.Usecase
	Eligibility *eligibility.Usecase
	Admin       *admin.Usecase

	Tokens         mw.TokenValidator
	Redis          redis.UniversalClient
	IdempotencyTTL time.Duration
	MaxUploadBytes int64
	Metrics        *metrics.Metrics

	// Probes feed /health. A redis probe is added when Redis is set.
	Probes map[string]Probe
}

// Register mounts every route on e and installs the request validator.
func Register(e *echo.Echo, d Deps) {
	e.Validator = NewValidator()

	probes := make(map[string]Probe, len(d.Probes)+1)
	for name, p := range d.Probes {
		probes[name] = p
	}
	if d.Redis != nil {
		probes["redis"] = func(ctx context.Context) error { return d.Redis.Ping(ctx).Err() }
	}
	h := NewHandler(probes)
	e.GET("/health", h.Health)
	if d.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	api := e.Group("/api")
	api.GET("/health", h.Health)

	authed := mw.JWTAuth(d.Tokens)
	idem := mw.Idempotency(d.Redis, d.IdempotencyTTL)

	ah := NewAuthHandler(d.Auth)
	g := api.Group("/auth")
	g.POST("/register", ah.Register)
	g.POST("/login", ah.Login)
	g.POST("/change-password", ah.ChangePassword, authed)
	g.GET("/verify-token", ah.VerifyToken, authed)

	uh := NewApplicantHandler(d.Applicants)
	g = api.Group("/users", authed, uploadLimit(d.MaxUploadBytes), idem)
	g.GET("/profile", uh.GetProfile)
	g.PUT("/profile", uh.UpdateProfile)
	g.GET("/financial-details", uh.GetFinancial)
	g.POST("/financial-details", uh.CreateFinancial)
	g.PUT("/financial-details", uh.UpdateFinancial)
	g.GET("/employment-details", uh.GetEmployment)
	g.POST("/employment-details", uh.CreateEmployment)
	g.PUT("/employment-details", uh.UpdateEmployment)
	g.GET("/documents", uh.ListDocuments)
	g.POST("/upload-document", uh.UploadDocument)

	lh := NewLoanHandler(d.Loans, d.Catalog)
	g = api.Group("/loans")
	g.GET("/products", lh.ListProducts)
	g.GET("/products/:id", lh.GetProduct)
	g.POST("/apply", lh.Apply, authed, idem)
	g.GET("/my-loans", lh.ListMine, authed)
	g.GET("/my-loans/:loan_id", lh.GetMine, authed)
	g.POST("/my-loans/:loan_id/pre-close", lh.PreClose, authed, idem)
	g.GET("/my-loans/:loan_id/schedule", lh.Schedule, authed)

	eh := NewEligibilityHandler(d.Eligibility)
	g = api.Group("/eligibility")
	g.POST("/check", eh.Check, authed)
	g.POST("/calculate-emi", eh.CalculateEMI)

	adm := NewAdminHandler(d.Admin, d.Catalog)
	g = api.Group("/admin", authed, mw.RequireRole(security.RoleAdmin), idem)
	g.GET("/loans", adm.ListLoans)
	g.POST("/loans/:loan_id/approve", adm.Approve)
	g.POST("/loans/:loan_id/reject", adm.Reject)
	g.POST("/loans/:loan_id/disburse", adm.Disburse)
	g.GET("/banks", adm.ListBanks)
	g.POST("/banks", adm.CreateBank)
	g.PUT("/banks/:id", adm.UpdateBank)
	g.GET("/products", adm.ListProducts)
	g.POST("/products", adm.CreateProduct)
	g.PUT("/products/:id", adm.UpdateProduct)
	g.GET("/documents", adm.ListDocuments)
	g.POST("/documents/:document_id/verify", adm.VerifyDocument)
	g.POST("/documents/:document_id/reject", adm.RejectDocument)
	g.GET("/statistics", adm.Statistics)
}

// uploadLimit caps request bodies a little above the upload file limit.
func uploadLimit(maxFile int64) echo.MiddlewareFunc {
	if maxFile <= 0 {
		maxFile = 5 << 20
	}
	return echomw.BodyLimit(fmt.Sprintf("%dB", maxFile+1<<20))
}
