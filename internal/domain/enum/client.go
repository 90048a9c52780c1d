package enum

// ClientMode is how the wizard's client step is being filled in.
type ClientMode string

const (
	ClientModeExisting ClientMode = "existing"
	ClientModeNew      ClientMode = "new"
	ClientModeEdit     ClientMode = "edit"
)

// IsValid reports whether the value is a known client selection mode.
func (m ClientMode) IsValid() bool {
	switch m {
	case ClientModeExisting, ClientModeNew, ClientModeEdit:
		return true
	}
	return false
}

// ContactChannel is a communication channel the client agreed to.
type ContactChannel string

const (
	ContactPhone ContactChannel = "PHONE"
	ContactSMS   ContactChannel = "SMS"
	ContactViber ContactChannel = "VIBER"
)

// ClientSource is how the client found out about the business.
type ClientSource string

const (
	SourceInstagram      ClientSource = "INSTAGRAM"
	SourceGoogle         ClientSource = "GOOGLE"
	SourceRecommendation ClientSource = "RECOMMENDATION"
	SourceOther          ClientSource = "OTHER"
)
