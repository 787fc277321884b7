package domain

// Feature keys for entitlement checks.
const (
	FeatureUnlimitedEmails   = "unlimited_emails"
	FeatureUnlimitedWhatsApp = "unlimited_whatsapp"
	FeatureUnlimitedContacts = "unlimited_contacts"
	FeatureGiftCards         = "gift_cards"
	FeatureDiscounts         = "discounts"
	FeatureReferrals         = "referrals"
	FeatureAdChat            = "ad_chat"
	FeatureAIAssistant       = "ai_assistant"
)

// Decision is the resolved entitlement for one feature key. It is
// derived on demand from the identity and never persisted.
type Decision struct {
	Allowed bool `json:"allowed"`
	// Limit is the numeric ceiling for the feature; 0 means no limit.
	Limit     int  `json:"limit,omitempty"`
	IsAdmin   bool `json:"isAdmin"`
	Unlimited bool `json:"unlimited"`
}
