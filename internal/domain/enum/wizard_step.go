package enum

// WizardStep identifies a step of the top-level order wizard.
type WizardStep string

const (
	StepClientSelection   WizardStep = "CLIENT_SELECTION"
	StepBranchSelection   WizardStep = "BRANCH_SELECTION"
	StepItemManager       WizardStep = "ITEM_MANAGER"
	StepOrderParameters   WizardStep = "ORDER_PARAMETERS"
	StepOrderConfirmation WizardStep = "ORDER_CONFIRMATION"
)

// WizardStepOrder is the forward execution order of the wizard.
var WizardStepOrder = []WizardStep{
	StepClientSelection,
	StepBranchSelection,
	StepItemManager,
	StepOrderParameters,
	StepOrderConfirmation,
}

// Index returns the position of the step in the forward order, or -1.
func (s WizardStep) Index() int {
	for i, step := range WizardStepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether the value is a known wizard step.
func (s WizardStep) IsValid() bool {
	return s.Index() >= 0
}

// ItemWizardStep identifies a sub-step of the nested item wizard.
type ItemWizardStep string

const (
	ItemStepBasicInfo    ItemWizardStep = "ITEM_BASIC_INFO"
	ItemStepProperties   ItemWizardStep = "ITEM_PROPERTIES"
	ItemStepDefects      ItemWizardStep = "DEFECTS_STAINS"
	ItemStepPricing      ItemWizardStep = "PRICE_CALCULATOR"
	ItemStepPhotos       ItemWizardStep = "PHOTO_DOCUMENTATION"
)

// ItemWizardStepOrder is the forward execution order of the item sub-wizard.
// The photo step is optional and may be skipped on completion.
var ItemWizardStepOrder = []ItemWizardStep{
	ItemStepBasicInfo,
	ItemStepProperties,
	ItemStepDefects,
	ItemStepPricing,
	ItemStepPhotos,
}

// Index returns the position of the sub-step in the forward order, or -1.
func (s ItemWizardStep) Index() int {
	for i, step := range ItemWizardStepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

// IsValid reports whether the value is a known item wizard sub-step.
func (s ItemWizardStep) IsValid() bool {
	return s.Index() >= 0
}
