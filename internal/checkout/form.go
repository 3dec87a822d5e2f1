package checkout

// Form carries the shipping and payment fields submitted at checkout. Payment
// fields are validated and truncated, never transmitted to a processor.
type Form struct {
	Name           string `json:"name" validate:"required,min=2"`
	Address        string `json:"address" validate:"required,min=5"`
	City           string `json:"city" validate:"required,min=2"`
	PostalCode     string `json:"postalCode" validate:"required,min=5"`
	Country        string `json:"country" validate:"required,min=2"`
	CardNumber     string `json:"cardNumber" validate:"required,cardnumber"`
	ExpirationDate string `json:"expirationDate" validate:"required,cardexpiry"`
	CVV            string `json:"cvv" validate:"required,cardcvv"`
}
