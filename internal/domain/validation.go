package domain

import (
	"regexp"
	"strings"
)

// Validation constants
const (
	MaxNarrationLength = 140
)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"NGN": true, "KES": true, "GHS": true, "ZAR": true,
	"INR": true, "BRL": true, "MXN": true, "SGD": true,
}

var (
	accountNumberRegex = regexp.MustCompile(`^[0-9]{10}$`)
	routingCodeRegex   = regexp.MustCompile(`^[0-9]{3,9}$`)
	ibanRegex          = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{11,30}$`)
	swiftRegex         = regexp.MustCompile(`^[A-Z]{6}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
)

// ValidateIntent checks the shape and domain rules of an intent against the
// channel policy. It returns a ValidationError naming the offending field and
// has no side effects.
func ValidateIntent(intent TransferIntent, policy ChannelPolicy) error {
	if !intent.Channel.Dispatchable() {
		return &ValidationError{Field: "channel", Reason: "unknown or non-dispatchable channel"}
	}

	if intent.SourceAccountID == "" {
		return &ValidationError{Field: "source_account_id", Reason: "required"}
	}

	if intent.Amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "must be positive"}
	}

	if intent.Amount < policy.MinAmount {
		return &ValidationError{Field: "amount", Reason: "below channel minimum"}
	}

	if intent.Amount > policy.MaxAmount {
		return &ValidationError{Field: "amount", Reason: "above channel maximum"}
	}

	if err := ValidateCurrency(intent.Currency); err != nil {
		return err
	}

	if intent.DestCurrency != "" {
		if err := ValidateCurrency(intent.DestCurrency); err != nil {
			return &ValidationError{Field: "dest_currency", Reason: "invalid currency code"}
		}
	}

	if len(intent.Narration) > MaxNarrationLength {
		return &ValidationError{Field: "narration", Reason: "too long"}
	}

	return ValidateDestination(intent.Channel, intent.Destination)
}

// ValidateCurrency validates an ISO 4217 currency code.
func ValidateCurrency(currency string) error {
	if !validCurrencies[strings.ToUpper(strings.TrimSpace(currency))] {
		return &ValidationError{Field: "currency", Reason: "invalid currency code"}
	}

	return nil
}

// ValidateDestination enforces the destination fields required per channel.
func ValidateDestination(channel Channel, dest Destination) error {
	switch channel {
	case ChannelInternal:
		if dest.AccountID == "" {
			return &ValidationError{Field: "destination.account_id", Reason: "required"}
		}
	case ChannelInterbank:
		if !accountNumberRegex.MatchString(dest.AccountNumber) {
			return &ValidationError{Field: "destination.account_number", Reason: "must be 10 digits"}
		}
		if !routingCodeRegex.MatchString(dest.RoutingCode) {
			return &ValidationError{Field: "destination.routing_code", Reason: "invalid routing code"}
		}
	case ChannelCrossBorder:
		if !ibanRegex.MatchString(strings.ToUpper(dest.IBAN)) {
			return &ValidationError{Field: "destination.iban", Reason: "invalid IBAN"}
		}
		if !swiftRegex.MatchString(strings.ToUpper(dest.SWIFTCode)) {
			return &ValidationError{Field: "destination.swift_code", Reason: "invalid SWIFT/BIC"}
		}
		if dest.Country == "" {
			return &ValidationError{Field: "destination.country", Reason: "required"}
		}
	case ChannelBiller:
		if dest.BillerID == "" {
			return &ValidationError{Field: "destination.biller_id", Reason: "required"}
		}
		if dest.CustomerRef == "" {
			return &ValidationError{Field: "destination.customer_ref", Reason: "required"}
		}
	default:
		return &ValidationError{Field: "channel", Reason: "unknown channel"}
	}

	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 200
	const defaultPageSize = 20

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
