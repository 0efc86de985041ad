package models

import (
	"strings"
	"unicode"
)

const DefaultCountry = "India"

const minPhoneDigits = 10

type ShippingAddress struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	City         string `json:"city"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

// Normalize trims every field and defaults the country.
func (a *ShippingAddress) Normalize() {
	a.FullName = strings.TrimSpace(a.FullName)
	a.Phone = strings.TrimSpace(a.Phone)
	a.AddressLine1 = strings.TrimSpace(a.AddressLine1)
	a.City = strings.TrimSpace(a.City)
	a.PostalCode = strings.TrimSpace(a.PostalCode)
	a.Country = strings.TrimSpace(a.Country)
	if a.Country == "" {
		a.Country = DefaultCountry
	}
}

// MissingFields returns the names of required fields that are empty.
// Country is not required; it is defaulted by Normalize.
func (a ShippingAddress) MissingFields() []string {
	var missing []string
	if a.FullName == "" {
		missing = append(missing, "fullName")
	}
	if a.Phone == "" {
		missing = append(missing, "phone")
	}
	if a.AddressLine1 == "" {
		missing = append(missing, "addressLine1")
	}
	if a.City == "" {
		missing = append(missing, "city")
	}
	if a.PostalCode == "" {
		missing = append(missing, "postalCode")
	}
	return missing
}

// PhoneValid requires at least ten digits, ignoring separators.
func (a ShippingAddress) PhoneValid() bool {
	digits := 0
	for _, r := range a.Phone {
		if unicode.IsDigit(r) {
			digits++
		}
	}
	return digits >= minPhoneDigits
}
