package model

import "github.com/shopspring/decimal"

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

type CompanyRequest struct {
	Name               string `json:"name"`
	RegistrationNumber string `json:"registrationNumber"`
	Address            string `json:"address,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Email              string `json:"email,omitempty"`
}

type OfficeRequest struct {
	CompanyID int64  `json:"companyId"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	City      string `json:"city,omitempty"`
	Country   string `json:"country,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type EmployeeRequest struct {
	UserID       int64           `json:"userId"`
	CompanyID    int64           `json:"companyId"`
	EmployeeType EmployeeType    `json:"employeeType"`
	OfficeID     *int64          `json:"officeId,omitempty"`
	HireDate     string          `json:"hireDate"`
	Salary       decimal.Decimal `json:"salary"`
}

type CustomerRequest struct {
	UserID  int64  `json:"userId"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// ShipmentRequest carries either DeliveryAddress or DeliveryOfficeID, never both.
type ShipmentRequest struct {
	SenderID         int64           `json:"senderId"`
	RecipientID      int64           `json:"recipientId"`
	OriginOfficeID   *int64          `json:"originOfficeId,omitempty"`
	DeliveryAddress  string          `json:"deliveryAddress,omitempty"`
	DeliveryOfficeID *int64          `json:"deliveryOfficeId,omitempty"`
	Weight           decimal.Decimal `json:"weight"`
}

type StatusUpdateRequest struct {
	Status ShipmentStatus `json:"status"`
}

type PricingConfigRequest struct {
	BasePrice          decimal.Decimal `json:"basePrice"`
	PricePerKg         decimal.Decimal `json:"pricePerKg"`
	AddressDeliveryFee decimal.Decimal `json:"addressDeliveryFee"`
}
