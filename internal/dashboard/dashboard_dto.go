package dashboard

type StaffStats struct {
	TotalEmployees    int64 `json:"totalEmployees"`
	ActiveEmployees   int64 `json:"activeEmployees"`
	InactiveEmployees int64 `json:"inactiveEmployees"`
	PendingLeaves     int64 `json:"pendingLeaves"`
	RecentComplaints  int64 `json:"recentComplaints"`
}

type RecentEmployee struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Position string  `json:"position"`
	Grade    *string `json:"grade,omitempty"`
	HireDate string  `json:"hire_date,omitempty"`
	Status   string  `json:"status"`
}

type StaffStatsResponse struct {
	Stats           StaffStats       `json:"stats"`
	RecentEmployees []RecentEmployee `json:"recentEmployees"`
}

type EmployeeSummary struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Position     string `json:"position"`
	Department   string `json:"department"`
	LeaveBalance int    `json:"leaveBalance"`
	Status       string `json:"status"`
}

type EmployeeStats struct {
	PendingLeaves      int64 `json:"pendingLeaves"`
	ApprovedLeaves     int64 `json:"approvedLeaves"`
	RejectedLeaves     int64 `json:"rejectedLeaves"`
	PendingAbsences    int64 `json:"pendingAbsences"`
	ApprovedAbsences   int64 `json:"approvedAbsences"`
	RejectedAbsences   int64 `json:"rejectedAbsences"`
	PendingComplaints  int64 `json:"pendingComplaints"`
	ResolvedComplaints int64 `json:"resolvedComplaints"`
}

type RecentLeaveRequest struct {
	ID        uint   `json:"id"`
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Duration  int    `json:"duration"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

type EmployeeStatsResponse struct {
	Employee            EmployeeSummary      `json:"employee"`
	Stats               EmployeeStats        `json:"stats"`
	RecentLeaveRequests []RecentLeaveRequest `json:"recentLeaveRequests"`
}
