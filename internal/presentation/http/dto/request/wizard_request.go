package request

// ClientDraftRequest carries the fields of a client created or edited
// inside the wizard.
type ClientDraftRequest struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Phone           string   `json:"phone"`
	Email           string   `json:"email"`
	Address         string   `json:"address"`
	ContactChannels []string `json:"contact_channels"`
	Source          string   `json:"source"`
	DiscountCardNo  string   `json:"discount_card_no"`
}

// SelectClientRequest records the client choice on the first wizard step.
// ClientID is required for mode "existing", Client for "new" and "edit".
type SelectClientRequest struct {
	Mode     string              `json:"mode" binding:"required"`
	ClientID *string             `json:"client_id"`
	Client   *ClientDraftRequest `json:"client"`
}

// SelectBranchRequest records the branch choice
type SelectBranchRequest struct {
	BranchID string `json:"branch_id" binding:"required,uuid"`
}

// OrderParamsRequest carries the order-level parameters. Money is decimal UAH.
type OrderParamsRequest struct {
	DiscountType          string  `json:"discount_type" binding:"required"`
	CustomDiscountPercent float64 `json:"custom_discount_percent"`
	ExpediteType          string  `json:"expedite_type" binding:"required"`
	PaymentMethod         string  `json:"payment_method" binding:"required"`
	PrepaymentAmount      float64 `json:"prepayment_amount"`
	Comments              string  `json:"comments"`
}

// ConfirmationRequest carries the terms acceptance and the client's
// signature as base64-encoded image data.
type ConfirmationRequest struct {
	TermsAccepted bool   `json:"terms_accepted"`
	Signature     string `json:"signature"`
}

// ItemBasicInfoRequest fills the basic info sub-step of the item wizard
type ItemBasicInfoRequest struct {
	CategoryCode  string  `json:"category_code" binding:"required"`
	CatalogItemID *string `json:"catalog_item_id"`
	Name          string  `json:"name" binding:"required"`
	Quantity      float64 `json:"quantity" binding:"required,gt=0"`
	Unit          string  `json:"unit" binding:"required"`
}

// ItemPropertiesRequest fills the properties sub-step
type ItemPropertiesRequest struct {
	Material        string `json:"material"`
	Color           string `json:"color"`
	Filler          string `json:"filler"`
	FillerCondition string `json:"filler_condition"`
	WearLevel       string `json:"wear_level"`
}

// StainRequest is a single recorded stain
type StainRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

// DefectRequest is a single recorded defect
type DefectRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description"`
}

// ItemDefectsRequest fills the defects and stains sub-step
type ItemDefectsRequest struct {
	Stains            []StainRequest  `json:"stains"`
	Defects           []DefectRequest `json:"defects"`
	NoGuarantee       bool            `json:"no_guarantee"`
	NoGuaranteeReason string          `json:"no_guarantee_reason"`
	Notes             string          `json:"notes"`
}

// ItemPricingRequest fills the pricing sub-step
type ItemPricingRequest struct {
	CatalogItemID string   `json:"catalog_item_id" binding:"required,uuid"`
	ModifierCodes []string `json:"modifier_codes"`
}
