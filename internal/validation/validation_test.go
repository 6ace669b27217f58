package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		in      string
		valid   bool
		message string
	}{
		{in: "", valid: true},
		{in: "   ", valid: true},
		{in: "+359 88 123 4567", valid: true},
		{in: "(02) 981-1234", valid: true},
		{in: "abc-1234", message: "Phone number cannot contain letters."},
		{in: "12345", message: "Phone must contain only numbers and valid characters (+, -, spaces, parentheses)."},
		{in: "123#4567", message: "Phone must contain only numbers and valid characters (+, -, spaces, parentheses)."},
	}
	for _, tt := range tests {
		got := Phone(tt.in)
		assert.Equal(t, tt.valid, got.Valid, tt.in)
		assert.Equal(t, tt.message, got.Message, tt.in)
	}
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("ana@example.com").Valid)
	assert.True(t, Email("  ana@example.com ").Valid)
	assert.False(t, Email("not-an-email").Valid)
	assert.False(t, Email("a b@c.d").Valid)
	assert.Equal(t, "Please enter a valid email address.", Email("x@y").Message)
}

func TestLengthChecksTrim(t *testing.T) {
	assert.Equal(t, "Username must be at least 3 characters.", MinLength("  ab  ", 3, "Username").Message)
	assert.True(t, MinLength("жук", 3, "Username").Valid)
	assert.Equal(t, "Name must be at most 4 characters.", MaxLength("abcde", 4, "Name").Message)
}

func TestUsernameAndPasswordStopAtFirstFailure(t *testing.T) {
	assert.Equal(t, "Username is required.", Username(" ").Message)
	assert.Equal(t, "Password is required.", Password("").Message)
	assert.Equal(t, "Password must be at least 6 characters.", Password("12345").Message)
	assert.True(t, Password("123456").Valid)
}

func TestSelectionDifferentPositive(t *testing.T) {
	assert.Equal(t, "Please select a sender.", Selection("", "sender").Message)
	assert.Equal(t, "Values must be different.", Different("1", "1", "").Message)
	assert.True(t, Different("1", "2", "").Valid)
	assert.Equal(t, "Weight must be a positive number.", PositiveNumber("0", "Weight").Message)
	assert.Equal(t, "Weight must be a positive number.", PositiveNumber("heavy", "Weight").Message)
	assert.True(t, PositiveNumber("0.5", "Weight").Valid)
}

func TestLoginForm(t *testing.T) {
	got := LoginForm(" ", "")
	assert.False(t, got.Valid)
	assert.Equal(t, "Please enter your username. Please enter your password.", got.Message())
	assert.True(t, LoginForm("ana", "x").Valid)
}

func TestSignupFormConcatenatesAllFailures(t *testing.T) {
	got := SignupForm("ab", "not-an-email", "123")
	assert.False(t, got.Valid)
	assert.Equal(t, []string{
		"Username must be at least 3 characters.",
		"Please enter a valid email address.",
		"Password must be at least 6 characters.",
	}, got.Errors)
	assert.Equal(t,
		"Username must be at least 3 characters. Please enter a valid email address. Password must be at least 6 characters.",
		got.Message())
}

func TestShipmentForm(t *testing.T) {
	valid := ShipmentInput{SenderID: "1", RecipientID: "2", Weight: "2.5", DeliveryOfficeID: "4"}
	assert.True(t, ShipmentForm(valid).Valid)

	same := valid
	same.RecipientID = "1"
	assert.Equal(t, []string{"Sender and receiver must be different."}, ShipmentForm(same).Errors)

	empty := ShipmentForm(ShipmentInput{DeliverToAddress: true})
	assert.Equal(t, []string{
		"Please select a sender.",
		"Please select a receiver.",
		"Weight must be greater than 0.",
		"Please enter a delivery address.",
	}, empty.Errors)

	tiny := valid
	tiny.Weight = "0.001"
	assert.Equal(t, []string{"Weight must be at least 0.01 kg."}, ShipmentForm(tiny).Errors)

	heavy := valid
	heavy.Weight = "10000.5"
	assert.Equal(t, []string{"Weight cannot exceed 10000 kg."}, ShipmentForm(heavy).Errors)

	noOffice := valid
	noOffice.DeliveryOfficeID = ""
	assert.Equal(t, []string{"Please select a destination office."}, ShipmentForm(noOffice).Errors)
}

func TestCompanyForm(t *testing.T) {
	got := CompanyForm(CompanyInput{Name: "A", Email: "bad", Phone: "call me"})
	assert.Equal(t, []string{
		"Company name must be at least 2 characters.",
		"Registration number is required.",
		"Please enter a valid email address.",
		"Phone number cannot contain letters.",
	}, got.Errors)
	assert.True(t, CompanyForm(CompanyInput{Name: "Speedy", RegistrationNumber: "BG123"}).Valid)
}

func TestPricingForm(t *testing.T) {
	assert.True(t, PricingForm("5", "2", "0").Valid)
	assert.True(t, PricingForm("0", "0", "0").Valid)
	assert.True(t, PricingForm(" 0.00 ", "1.5", "10").Valid)

	got := PricingForm("-1", "x", "-0.5")
	assert.Len(t, got.Errors, 3)
	assert.Equal(t, "Base price must be zero or more.", got.Errors[0])
	assert.Equal(t, "Address delivery fee must be zero or more.", got.Errors[2])

	assert.False(t, PricingForm("", "2", "0").Valid)
}
