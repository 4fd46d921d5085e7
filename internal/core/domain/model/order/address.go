package order

import (
	"errors"

	"orders/internal/pkg/errs"
	"orders/internal/pkg/guard"
)

// ErrAddressIsNotConstructed is returned when an Address was not created
// through the NewAddress factory function.
var ErrAddressIsNotConstructed = errors.New("Address must be created via NewAddress constructor")

// Address is the shipping destination captured at order creation.
// It is an immutable value object; once an order is created its shipping
// address never changes. The second address line is optional, every other
// field is required.
type Address struct {
	fullName     string
	addressLine1 string
	addressLine2 string
	city         string
	state        string
	postalCode   string
	country      string

	guard guard.ConstructorGuard
}

// NewAddress creates a validated shipping address.
// Only addressLine2 may be empty.
func NewAddress(fullName, addressLine1, addressLine2, city, state, postalCode, country string) (Address, error) {
	required := map[string]string{
		"fullName":     fullName,
		"addressLine1": addressLine1,
		"city":         city,
		"state":        state,
		"postalCode":   postalCode,
		"country":      country,
	}
	for param, value := range required {
		if value == "" {
			return Address{}, errs.NewValueIsRequiredError(param)
		}
	}

	return Address{
		fullName:     fullName,
		addressLine1: addressLine1,
		addressLine2: addressLine2,
		city:         city,
		state:        state,
		postalCode:   postalCode,
		country:      country,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the address was created through NewAddress.
func (a Address) Validate() error {
	return a.guard.Validate(ErrAddressIsNotConstructed)
}

// FullName returns the recipient's full name.
func (a Address) FullName() string {
	return a.fullName
}

// AddressLine1 returns the first street address line.
func (a Address) AddressLine1() string {
	return a.addressLine1
}

// AddressLine2 returns the optional second street address line.
func (a Address) AddressLine2() string {
	return a.addressLine2
}

// City returns the destination city.
func (a Address) City() string {
	return a.city
}

// State returns the destination state or region.
func (a Address) State() string {
	return a.state
}

// PostalCode returns the destination postal code.
func (a Address) PostalCode() string {
	return a.postalCode
}

// Country returns the destination country.
func (a Address) Country() string {
	return a.country
}
