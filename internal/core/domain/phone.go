package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const whatsAppPrefix = "whatsapp:"

// FormatPhoneNumber normalizes a local or international number to E.164,
// e.g. "0412 345 678" with "+61" becomes "+61412345678". Numbers without a
// leading "+" are read in the region of countryCode; numbers with one keep
// their own country code. A "whatsapp:" prefix is dropped.
func FormatPhoneNumber(phone, countryCode string) (string, error) {
	phone = strings.TrimPrefix(strings.TrimSpace(phone), whatsAppPrefix)

	num, err := phonenumbers.Parse(phone, regionFor(countryCode))
	if err != nil || !phonenumbers.IsPossibleNumber(num) {
		return "", fmt.Errorf("%w: phone number %q", ErrInvalidInput, phone)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// regionFor maps a calling code such as "+61" to its main region, "AU".
func regionFor(countryCode string) string {
	code, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(countryCode), "+"))
	if err != nil {
		return phonenumbers.UNKNOWN_REGION
	}
	return phonenumbers.GetRegionCodeForCountryCode(code)
}

// WhatsAppAddress returns the provider address for an E.164 number.
func WhatsAppAddress(phone string) string {
	if strings.HasPrefix(phone, whatsAppPrefix) {
		return phone
	}
	return whatsAppPrefix + phone
}
