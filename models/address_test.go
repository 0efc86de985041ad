package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validAddress() ShippingAddress {
	return ShippingAddress{
		FullName:     "Asha Nair",
		Phone:        "9876543210",
		AddressLine1: "12 Canal Road",
		City:         "Kochi",
		PostalCode:   "682001",
		Country:      "India",
	}
}

func TestMissingFields(t *testing.T) {
	addr := validAddress()
	addr.Phone = ""
	addr.City = ""

	assert.Equal(t, []string{"phone", "city"}, addr.MissingFields())
}

func TestMissingFields_Complete(t *testing.T) {
	addr := validAddress()
	assert.Empty(t, addr.MissingFields())
}

func TestNormalize_DefaultsCountry(t *testing.T) {
	addr := validAddress()
	addr.Country = "  "
	addr.FullName = "  Asha Nair  "

	addr.Normalize()

	assert.Equal(t, DefaultCountry, addr.Country)
	assert.Equal(t, "Asha Nair", addr.FullName)
}

func TestPhoneValid(t *testing.T) {
	addr := validAddress()
	assert.True(t, addr.PhoneValid())

	addr.Phone = "12345"
	assert.False(t, addr.PhoneValid())

	// Separators are ignored when counting digits.
	addr.Phone = "+91 98765-43210"
	assert.True(t, addr.PhoneValid())
}
