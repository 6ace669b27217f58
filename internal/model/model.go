// Package model holds the JSON records exchanged with the logistics backend.
package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleCustomer Role = "CUSTOMER"
)

type EmployeeType string

const (
	EmployeeTypeCourier     EmployeeType = "COURIER"
	EmployeeTypeOfficeStaff EmployeeType = "OFFICE_STAFF"
)

// ShipmentStatus values the backend is known to emit. Anything else is kept as-is.
type ShipmentStatus string

const (
	StatusRegistered ShipmentStatus = "REGISTERED"
	StatusInTransit  ShipmentStatus = "IN_TRANSIT"
	StatusDelivered  ShipmentStatus = "DELIVERED"
	StatusCancelled  ShipmentStatus = "CANCELLED"
)

// Timestamp decodes the backend's zone-less ISO date-times as well as RFC3339.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	// unparseable values are treated as absent rather than failing the whole payload
	t.Time = time.Time{}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format("2006-01-02T15:04:05") + `"`), nil
}

type AuthResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	UserID    int64  `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
}

// Profile returns the user portion of the auth response.
func (a AuthResponse) Profile() Profile {
	return Profile{UserID: a.UserID, Username: a.Username, Email: a.Email, Role: a.Role}
}

type Profile struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type Company struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registrationNumber"`
	Address            string    `json:"address"`
	Phone              string    `json:"phone"`
	Email              string    `json:"email"`
	CreatedAt          Timestamp `json:"createdAt"`
	UpdatedAt          Timestamp `json:"updatedAt"`
}

type Office struct {
	ID          int64  `json:"id"`
	CompanyID   int64  `json:"companyId"`
	CompanyName string `json:"companyName"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	City        string `json:"city"`
	Country     string `json:"country"`
	Phone       string `json:"phone"`
	FullAddress string `json:"fullAddress"`
}

type Employee struct {
	ID           int64            `json:"id"`
	UserID       int64            `json:"userId"`
	Username     string           `json:"username"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	CompanyID    int64            `json:"companyId"`
	CompanyName  string           `json:"companyName"`
	EmployeeType EmployeeType     `json:"employeeType"`
	OfficeID     *int64           `json:"officeId"`
	OfficeName   string           `json:"officeName"`
	HireDate     string           `json:"hireDate"`
	Salary       *decimal.Decimal `json:"salary"`
}

type Customer struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// DisplayName prefers the full name and falls back to the username.
func (c Customer) DisplayName() string {
	if strings.TrimSpace(c.Name) != "" {
		return c.Name
	}
	return c.Username
}

type Shipment struct {
	ID                    int64            `json:"id"`
	SenderID              int64            `json:"senderId"`
	SenderName            string           `json:"senderName"`
	SenderEmail           string           `json:"senderEmail"`
	RecipientID           int64            `json:"recipientId"`
	RecipientName         string           `json:"recipientName"`
	RecipientEmail        string           `json:"recipientEmail"`
	ReceiverName          string           `json:"receiverName"`
	RegisteredByID        *int64           `json:"registeredById"`
	RegisteredByName      string           `json:"registeredByName"`
	OriginOfficeID        *int64           `json:"originOfficeId"`
	OriginOfficeName      string           `json:"originOfficeName"`
	DeliveryAddress       string           `json:"deliveryAddress"`
	DeliveryOfficeID      *int64           `json:"deliveryOfficeId"`
	DeliveryOfficeName    string           `json:"deliveryOfficeName"`
	DestinationOfficeName string           `json:"destinationOfficeName"`
	DeliveryDestination   string           `json:"deliveryDestination"`
	DeliverToAddress      bool             `json:"deliverToAddress"`
	Weight                decimal.Decimal  `json:"weight"`
	Price                 *decimal.Decimal `json:"price"`
	Status                ShipmentStatus   `json:"status"`
	RegisteredAt          Timestamp        `json:"registeredAt"`
	DeliveredAt           Timestamp        `json:"deliveredAt"`
	UpdatedAt             Timestamp        `json:"updatedAt"`
}

// Receiver returns the receiver's display name whichever field the backend filled.
func (s Shipment) Receiver() string {
	if s.ReceiverName != "" {
		return s.ReceiverName
	}
	return s.RecipientName
}

// Destination is the delivery address for door deliveries, otherwise the office name.
func (s Shipment) Destination() string {
	if s.DeliverToAddress && s.DeliveryAddress != "" {
		return s.DeliveryAddress
	}
	if s.DestinationOfficeName != "" {
		return s.DestinationOfficeName
	}
	if s.DeliveryOfficeName != "" {
		return s.DeliveryOfficeName
	}
	return "N/A"
}

type PricingConfig struct {
	ID                 int64           `json:"id"`
	BasePrice          decimal.Decimal `json:"basePrice"`
	PricePerKg         decimal.Decimal `json:"pricePerKg"`
	AddressDeliveryFee decimal.Decimal `json:"addressDeliveryFee"`
	Active             bool            `json:"active"`
	CreatedAt          Timestamp       `json:"createdAt"`
	UpdatedAt          Timestamp       `json:"updatedAt"`
}

type PricingInfo struct {
	BasePrice          decimal.Decimal `json:"basePrice"`
	PricePerKg         decimal.Decimal `json:"pricePerKg"`
	AddressDeliveryFee decimal.Decimal `json:"addressDeliveryFee"`
}

type DashboardMetrics struct {
	TotalShipments     int64           `json:"totalShipments"`
	PendingShipments   int64           `json:"pendingShipments"`
	DeliveredShipments int64           `json:"deliveredShipments"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
}

type CustomerMetrics struct {
	TotalSent     int64           `json:"totalSent"`
	TotalReceived int64           `json:"totalReceived"`
	InTransit     int64           `json:"inTransit"`
	TotalSpent    decimal.Decimal `json:"totalSpent"`
}

type Revenue struct {
	StartDate               string          `json:"startDate"`
	EndDate                 string          `json:"endDate"`
	TotalRevenue            decimal.Decimal `json:"totalRevenue"`
	DeliveredShipmentsCount int64           `json:"deliveredShipmentsCount"`
}
