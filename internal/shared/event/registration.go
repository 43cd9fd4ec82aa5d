package event

import "time"

const RegistrationSubmittedDestination string = "registration_submitted"
const RegistrationRejectedDestination string = "registration_rejected"

type RegistrationSubmittedMessage struct {
	Username     string    `json:"username"`
	EmailAddress string    `json:"email_address"`
	Password     string    `json:"password"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type RegistrationRejectedMessage struct {
	Violations []RegistrationViolation `json:"violations"`
	OccurredAt time.Time               `json:"occurred_at"`
}

type RegistrationViolation struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}
