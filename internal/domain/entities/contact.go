package entities

// ContactInput is a contact-form submission relayed to the support inbox
type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}
