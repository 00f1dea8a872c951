package customer

// Customer maps to the `customer` table. Optional profile fields are
// pointers so an absent field can be told apart from an empty string when
// the billing flow validates customer data.
type Customer struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	PhoneNumber   string  `json:"phoneNumber"`
	Email         *string `json:"email,omitempty"`
	Dob           *string `json:"dob,omitempty"`
	Dom           *string `json:"dom,omitempty"`
	Address       *string `json:"address,omitempty"`
	MaritalStatus *string `json:"maritalStatus,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
	UpdatedAt     string  `json:"updatedAt,omitempty"`
}
