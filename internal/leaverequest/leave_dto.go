package leaverequest

type CreateLeaveRequest struct {
	Type      string `json:"type" binding:"required"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Reason    string `json:"reason" binding:"required"`
}

type UpdateLeaveRequest struct {
	Type      *string `json:"type"`
	StartDate *string `json:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Reason    *string `json:"reason"`
}

type UpdateLeaveStatusRequest struct {
	Status          string `json:"status" binding:"required,oneof=approved rejected"`
	RejectionReason string `json:"rejection_reason"`
}

type LeaveRequestResponse struct {
	ID              uint    `json:"id"`
	EmployeeID      uint    `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	Type            string  `json:"type"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Duration        int     `json:"duration"`
	Reason          string  `json:"reason"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	ProcessedBy     *uint   `json:"processed_by,omitempty"`
	ProcessedAt     *string `json:"processed_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}
