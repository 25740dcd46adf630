package issue

// CreateIssueRequest is the payload for filing a new civic issue.
type CreateIssueRequest struct {
	Title            string  `json:"title" validate:"required,max=255"`
	Description      string  `json:"description" validate:"required"`
	Image            *string `json:"image,omitempty" validate:"omitempty,max=2048"`
	CategoryID       string  `json:"category_id" validate:"required"`
	ImportanceRating int     `json:"importance_rating" validate:"gte=0,lte=5"`
}

// CreateCommentRequest is the payload for commenting on an issue.
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required"`
}

// UpdateStatusRequest is the payload for the admin triage transition.
type UpdateStatusRequest struct {
	Status *int `json:"status" validate:"required,gte=0,lte=3"`
}
