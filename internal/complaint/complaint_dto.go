package complaint

import "io"

type CreateComplaintRequest struct {
	Subject     string `form:"subject" binding:"required,max=255"`
	Description string `form:"description" binding:"required"`
}

type UpdateComplaintRequest struct {
	Subject     *string `form:"subject" binding:"omitempty,max=255"`
	Description *string `form:"description"`
}

type UpdateComplaintStatusRequest struct {
	Status            string `json:"status" binding:"required,oneof=in_review resolved rejected"`
	ResolutionDetails string `json:"resolution_details"`
}

type AttachmentUpload struct {
	Filename string
	Content  io.Reader
}

type ComplaintResponse struct {
	ID                uint    `json:"id"`
	EmployeeID        uint    `json:"employee_id"`
	EmployeeName      string  `json:"employee_name,omitempty"`
	Subject           string  `json:"subject"`
	Description       string  `json:"description"`
	Status            string  `json:"status"`
	AttachmentURL     *string `json:"attachment_url,omitempty"`
	ResolutionDetails *string `json:"resolution_details,omitempty"`
	HandledBy         *uint   `json:"handled_by,omitempty"`
	ResolvedAt        *string `json:"resolved_at,omitempty"`
	CreatedAt         string  `json:"created_at"`
}
