package absence

import "io"

type CreateAbsenceRequest struct {
	AbsenceDate string `form:"absence_date" binding:"required,datetime=2006-01-02"`
	Duration    int    `form:"duration" binding:"required,min=1"`
	Type        string `form:"type" binding:"required"`
	Reason      string `form:"reason" binding:"required"`
}

type UpdateAbsenceRequest struct {
	AbsenceDate *string `form:"absence_date" binding:"omitempty,datetime=2006-01-02"`
	Duration    *int    `form:"duration" binding:"omitempty,min=1"`
	Type        *string `form:"type"`
	Reason      *string `form:"reason"`
}

type UpdateAbsenceStatusRequest struct {
	Status          string `json:"status" binding:"required,oneof=approved rejected"`
	RejectionReason string `json:"rejection_reason"`
}

// DocumentUpload carries an optional multipart attachment into the
// service without exposing gin types below the handler.
type DocumentUpload struct {
	Filename string
	Content  io.Reader
}

type AbsenceResponse struct {
	ID              uint    `json:"id"`
	EmployeeID      uint    `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	AbsenceDate     string  `json:"absence_date"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Duration        int     `json:"duration"`
	Type            string  `json:"type"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	DocumentURL     *string `json:"document_url,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	ProcessedBy     *uint   `json:"processed_by,omitempty"`
	ProcessedAt     *string `json:"processed_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}
