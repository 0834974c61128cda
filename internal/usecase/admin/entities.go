package admin

import "github.com/shopspring/decimal"

type DecisionInput struct {
	Note string `json:"note" validate:"max=1000"`
}

type Statistics struct {
	TotalUsers           int64           `json:"total_users"`
	TotalLoans           int64           `json:"total_loans"`
	PendingLoans         int64           `json:"pending_loans"`
	ApprovedLoans        int64           `json:"approved_loans"`
	RejectedLoans        int64           `json:"rejected_loans"`
	ActiveLoans          int64           `json:"active_loans"`
	ClosedLoans          int64           `json:"closed_loans"`
	TotalDisbursedAmount decimal.Decimal `json:"total_disbursed_amount"`
	MonthlyApplications  int64           `json:"monthly_applications"`
}
