package dashboard

import "github.com/adamstrass/payroll-dashboard/internal/payroll"

type AddEmployeeRequest struct {
	Name       string  `json:"name" binding:"required"`
	Department string  `json:"department" binding:"required"`
	Salary     float64 `json:"salary" binding:"gte=0"`
}

type SetMonthRequest struct {
	// Empty falls back to the current calendar month.
	Month string `json:"month"`
}

type SetPaidRequest struct {
	Paid *bool `json:"paid" binding:"required"`
}

type SetPaymentDateRequest struct {
	PaymentDate string `json:"payment_date"`
}

// ProofUpload carries one uploaded file through the service layer.
type ProofUpload struct {
	FileName    string
	ContentType string
	Content     []byte
}

type ProofDownload struct {
	FileName string
	Content  []byte
}

type EmployeeResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

type ProofResponse struct {
	ID         string `json:"id"`
	FileName   string `json:"file_name"`
	FileSize   int64  `json:"file_size"`
	UploadedAt string `json:"uploaded_at"`
}

type RecordResponse struct {
	EmployeeID  string          `json:"employee_id"`
	Paid        bool            `json:"paid"`
	PaymentDate string          `json:"payment_date"`
	Proofs      []ProofResponse `json:"proofs"`
}

type ActivityResponse struct {
	EmployeeID   string        `json:"employee_id"`
	EmployeeName string        `json:"employee_name"`
	Proof        ProofResponse `json:"proof"`
}

type SummaryResponse struct {
	TotalEmployees int                `json:"total_employees"`
	PaidCount      int                `json:"paid_count"`
	PendingCount   int                `json:"pending_count"`
	TotalPayroll   float64            `json:"total_payroll"`
	PaidPayroll    float64            `json:"paid_payroll"`
	MissingProofs  int                `json:"missing_proofs"`
	RecentActivity []ActivityResponse `json:"recent_activity"`
}

// StateResponse is the full dashboard payload: roster, the selected
// month's records in roster order and the derived summary.
type StateResponse struct {
	SelectedMonth string             `json:"selected_month"`
	Employees     []EmployeeResponse `json:"employees"`
	Records       []RecordResponse   `json:"records"`
	Summary       SummaryResponse    `json:"summary"`
}

func mapProofResponse(p payroll.ProofRef) ProofResponse {
	return ProofResponse{
		ID:         p.ID,
		FileName:   p.FileName,
		FileSize:   p.FileSize,
		UploadedAt: p.UploadedAt,
	}
}

func mapSummaryResponse(s payroll.Summary) SummaryResponse {
	resp := SummaryResponse{
		TotalEmployees: s.TotalEmployees,
		PaidCount:      s.PaidCount,
		PendingCount:   s.PendingCount,
		TotalPayroll:   s.TotalPayroll,
		PaidPayroll:    s.PaidPayroll,
		MissingProofs:  s.MissingProofs,
		RecentActivity: make([]ActivityResponse, 0, len(s.RecentActivity)),
	}
	for _, a := range s.RecentActivity {
		resp.RecentActivity = append(resp.RecentActivity, ActivityResponse{
			EmployeeID:   a.EmployeeID,
			EmployeeName: a.EmployeeName,
			Proof:        mapProofResponse(a.Proof),
		})
	}
	return resp
}

func mapStateResponse(state payroll.State) StateResponse {
	records := state.Records[state.SelectedMonth]

	resp := StateResponse{
		SelectedMonth: state.SelectedMonth,
		Employees:     make([]EmployeeResponse, 0, len(state.Employees)),
		Records:       make([]RecordResponse, 0, len(state.Employees)),
		Summary:       mapSummaryResponse(payroll.Summarize(state.Employees, records)),
	}

	for _, e := range state.Employees {
		resp.Employees = append(resp.Employees, EmployeeResponse{
			ID:         e.ID,
			Name:       e.Name,
			Department: e.Department,
			Salary:     e.Salary,
		})

		rec := records[e.ID]
		rr := RecordResponse{
			EmployeeID:  e.ID,
			Paid:        rec.Paid,
			PaymentDate: rec.PaymentDate,
			Proofs:      make([]ProofResponse, 0, len(rec.Proofs)),
		}
		for _, p := range rec.Proofs {
			rr.Proofs = append(rr.Proofs, mapProofResponse(p))
		}
		resp.Records = append(resp.Records, rr)
	}

	return resp
}
