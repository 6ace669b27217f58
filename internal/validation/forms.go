package validation

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormResult collects every failing message of a form, in field order.
type FormResult struct {
	Valid  bool
	Errors []string
}

// Message joins the collected errors with single spaces.
func (f FormResult) Message() string {
	return strings.Join(f.Errors, " ")
}

func (f *FormResult) add(r Result) {
	if !r.Valid {
		f.Errors = append(f.Errors, r.Message)
	}
}

func (f *FormResult) addMessage(msg string) {
	f.Errors = append(f.Errors, msg)
}

func (f FormResult) done() FormResult {
	f.Valid = len(f.Errors) == 0
	return f
}

// Form evaluates each result and keeps the failures.
func Form(results ...Result) FormResult {
	var f FormResult
	for _, r := range results {
		f.add(r)
	}
	return f.done()
}

func LoginForm(username, password string) FormResult {
	var f FormResult
	if strings.TrimSpace(username) == "" {
		f.addMessage("Please enter your username.")
	}
	if strings.TrimSpace(password) == "" {
		f.addMessage("Please enter your password.")
	}
	return f.done()
}

func SignupForm(username, email, password string) FormResult {
	return Form(Username(username), Email(email), Password(password))
}

// CustomerRegistration applies the same account rules as signup.
func CustomerRegistration(username, email, password, phone string) FormResult {
	return Form(Username(username), Email(email), Password(password), Phone(phone))
}

type ShipmentInput struct {
	SenderID         string
	RecipientID      string
	Weight           string
	DeliverToAddress bool
	DeliveryAddress  string
	DeliveryOfficeID string
}

var (
	minWeight = decimal.RequireFromString("0.01")
	maxWeight = decimal.NewFromInt(10000)
)

func ShipmentForm(in ShipmentInput) FormResult {
	var f FormResult
	sender := strings.TrimSpace(in.SenderID)
	recipient := strings.TrimSpace(in.RecipientID)

	if sender == "" {
		f.addMessage("Please select a sender.")
	}
	if recipient == "" {
		f.addMessage("Please select a receiver.")
	}
	if sender != "" && recipient != "" {
		f.add(Different(sender, recipient, "Sender and receiver must be different."))
	}

	weight, err := decimal.NewFromString(strings.TrimSpace(in.Weight))
	switch {
	case err != nil || !weight.IsPositive():
		f.addMessage("Weight must be greater than 0.")
	case weight.LessThan(minWeight):
		f.addMessage("Weight must be at least 0.01 kg.")
	case weight.GreaterThan(maxWeight):
		f.addMessage("Weight cannot exceed 10000 kg.")
	}

	if in.DeliverToAddress && strings.TrimSpace(in.DeliveryAddress) == "" {
		f.addMessage("Please enter a delivery address.")
	}
	if !in.DeliverToAddress && strings.TrimSpace(in.DeliveryOfficeID) == "" {
		f.addMessage("Please select a destination office.")
	}
	return f.done()
}

type CompanyInput struct {
	Name               string
	RegistrationNumber string
	Email              string
	Phone              string
}

func CompanyForm(in CompanyInput) FormResult {
	var f FormResult
	f.add(MinLength(in.Name, 2, "Company name"))
	if strings.TrimSpace(in.RegistrationNumber) == "" {
		f.addMessage("Registration number is required.")
	}
	if strings.TrimSpace(in.Email) != "" {
		f.add(Email(in.Email))
	}
	f.add(Phone(in.Phone))
	return f.done()
}

type OfficeInput struct {
	CompanyID string
	Name      string
	Address   string
	Phone     string
}

func OfficeForm(in OfficeInput) FormResult {
	return Form(
		Selection(in.CompanyID, "company"),
		Required(in.Name, "Office name"),
		Required(in.Address, "Address"),
		Phone(in.Phone),
	)
}

type EmployeeInput struct {
	CompanyID    string
	EmployeeType string
	HireDate     string
	Salary       string
}

func EmployeeForm(in EmployeeInput) FormResult {
	return Form(
		Selection(in.CompanyID, "company"),
		Selection(in.EmployeeType, "employee type"),
		Required(in.HireDate, "Hire date"),
		PositiveNumber(in.Salary, "Salary"),
	)
}

// PricingForm accepts zero for every amount, matching what the backend stores.
func PricingForm(basePrice, pricePerKg, addressFee string) FormResult {
	return Form(
		ZeroOrMore(basePrice, "Base price"),
		ZeroOrMore(pricePerKg, "Price per kg"),
		ZeroOrMore(addressFee, "Address delivery fee"),
	)
}
