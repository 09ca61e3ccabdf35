package careerpath

type CreateCareerPathRequest struct {
	EmployeeID      uint    `json:"employee_id" binding:"required"`
	CurrentPosition string  `json:"current_position" binding:"required,max=255"`
	TargetPosition  *string `json:"target_position" binding:"omitempty,max=255"`
	LastPromotion   *string `json:"last_promotion" binding:"omitempty,datetime=2006-01-02"`
	NextReview      *string `json:"next_review" binding:"omitempty,datetime=2006-01-02"`
	SkillsToDevelop *string `json:"skills_to_develop"`
	Achievements    *string `json:"achievements"`
}

type UpdateCareerPathRequest struct {
	CurrentPosition *string `json:"current_position" binding:"omitempty,max=255"`
	TargetPosition  *string `json:"target_position" binding:"omitempty,max=255"`
	LastPromotion   *string `json:"last_promotion" binding:"omitempty,datetime=2006-01-02"`
	NextReview      *string `json:"next_review" binding:"omitempty,datetime=2006-01-02"`
	SkillsToDevelop *string `json:"skills_to_develop"`
	Achievements    *string `json:"achievements"`
}

type CareerPathResponse struct {
	ID              uint    `json:"id"`
	EmployeeID      uint    `json:"employee_id"`
	EmployeeName    string  `json:"employee_name,omitempty"`
	CurrentPosition string  `json:"current_position"`
	TargetPosition  *string `json:"target_position,omitempty"`
	LastPromotion   *string `json:"last_promotion,omitempty"`
	NextReview      *string `json:"next_review,omitempty"`
	SkillsToDevelop *string `json:"skills_to_develop,omitempty"`
	Achievements    *string `json:"achievements,omitempty"`
	CreatedAt       string  `json:"created_at"`
}
