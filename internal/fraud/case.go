// Package fraud implements the fraud-case verification workflow: identifier
// extraction from free speech, case lookup, security-answer verification and
// status updates over a flat-file case collection.
package fraud

// Status is the review state of a flagged transaction case.
type Status string

const (
	StatusPendingReview      Status = "pending_review"
	StatusVerificationFailed Status = "verification_failed"
	StatusConfirmedSafe      Status = "confirmed_safe"
	StatusConfirmedFraud     Status = "confirmed_fraud"
)

// Valid reports whether the status is one of the known review states.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingReview, StatusVerificationFailed, StatusConfirmedSafe, StatusConfirmedFraud:
		return true
	}
	return false
}

// Case is one flagged transaction awaiting caller verification. The
// security answer is stored lowercase-normalized.
type Case struct {
	CaseID            string `json:"case_id"`
	Username          string `json:"username"`
	CustomerName      string `json:"customer_name"`
	SecurityQuestion  string `json:"security_question"`
	SecurityAnswer    string `json:"security_answer"`
	MaskedCard        string `json:"masked_card"`
	TransactionAmount string `json:"transaction_amount"`
	MerchantName      string `json:"merchant_name"`
	Location          string `json:"location"`
	Timestamp         string `json:"timestamp"`
	Status            Status `json:"status"`
	OutcomeNote       string `json:"outcome_note"`
	LastUpdated       string `json:"last_updated,omitempty"`
}
