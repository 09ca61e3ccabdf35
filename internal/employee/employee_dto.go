package employee

type CreateEmployeeRequest struct {
	Name         string  `json:"name" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Password     string  `json:"password" binding:"omitempty,min=8"`
	Role         string  `json:"role" binding:"omitempty,oneof=admin rh employee"`
	Position     string  `json:"position" binding:"required"`
	Department   string  `json:"department" binding:"required"`
	EmployeeCode string  `json:"employee_code"`
	HireDate     string  `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
	LeaveBalance *int    `json:"leave_balance" binding:"omitempty,min=0"`
	Status       string  `json:"status" binding:"omitempty,oneof=active inactive"`
	Grade        *string `json:"grade"`
}

type UpdateEmployeeRequest struct {
	Name         *string `json:"name"`
	Email        *string `json:"email" binding:"omitempty,email"`
	Position     *string `json:"position"`
	Department   *string `json:"department"`
	EmployeeCode *string `json:"employee_code"`
	HireDate     *string `json:"hire_date" binding:"omitempty,datetime=2006-01-02"`
	LeaveBalance *int    `json:"leave_balance" binding:"omitempty,min=0"`
	Status       *string `json:"status" binding:"omitempty,oneof=active inactive"`
	Grade        *string `json:"grade"`
}

type EmployeeResponse struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	Position     string  `json:"position"`
	Department   string  `json:"department"`
	EmployeeCode string  `json:"employee_code"`
	HireDate     string  `json:"hire_date"`
	LeaveBalance int     `json:"leave_balance"`
	Status       string  `json:"status"`
	Grade        *string `json:"grade,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
