package request

// ClientRequest represents a create or update client request
type ClientRequest struct {
	FirstName       string   `json:"first_name" binding:"required,min=1,max=255"`
	LastName        string   `json:"last_name" binding:"required,min=1,max=255"`
	Phone           string   `json:"phone" binding:"required"`
	Email           *string  `json:"email" binding:"omitempty,email"`
	Address         *string  `json:"address"`
	ContactChannels []string `json:"contact_channels"`
	Source          string   `json:"source"`
	DiscountCardNo  *string  `json:"discount_card_no"`
}

// CreateBranchRequest represents a create branch request
type CreateBranchRequest struct {
	Name    string  `json:"name" binding:"required,min=1,max=255"`
	Address string  `json:"address" binding:"required"`
	Phone   *string `json:"phone"`
}
