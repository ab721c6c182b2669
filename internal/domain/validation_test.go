package domain

import (
	"errors"
	"strings"
	"testing"
)

func validInterbankIntent() TransferIntent {
	return TransferIntent{
		Channel:         ChannelInterbank,
		SourceAccountID: "acc-1",
		Amount:          10_000,
		Currency:        "USD",
		Destination: Destination{
			AccountNumber: "0123456789",
			RoutingCode:   "044",
		},
	}
}

func TestValidateIntent(t *testing.T) {
	policy := ChannelPolicy{MinAmount: 100, MaxAmount: 1_000_000}

	tests := []struct {
		name      string
		mutate    func(*TransferIntent)
		wantField string
	}{
		{
			name:   "valid intent",
			mutate: func(i *TransferIntent) {},
		},
		{
			name:      "non-dispatchable channel",
			mutate:    func(i *TransferIntent) { i.Channel = ChannelScheduled },
			wantField: "channel",
		},
		{
			name:      "missing source account",
			mutate:    func(i *TransferIntent) { i.SourceAccountID = "" },
			wantField: "source_account_id",
		},
		{
			name:      "zero amount",
			mutate:    func(i *TransferIntent) { i.Amount = 0 },
			wantField: "amount",
		},
		{
			name:      "negative amount",
			mutate:    func(i *TransferIntent) { i.Amount = -500 },
			wantField: "amount",
		},
		{
			name:      "below channel minimum",
			mutate:    func(i *TransferIntent) { i.Amount = 50 },
			wantField: "amount",
		},
		{
			name:      "above channel maximum",
			mutate:    func(i *TransferIntent) { i.Amount = 2_000_000 },
			wantField: "amount",
		},
		{
			name:      "unknown currency",
			mutate:    func(i *TransferIntent) { i.Currency = "XYZ" },
			wantField: "currency",
		},
		{
			name:      "unknown destination currency",
			mutate:    func(i *TransferIntent) { i.DestCurrency = "XYZ" },
			wantField: "dest_currency",
		},
		{
			name:      "narration too long",
			mutate:    func(i *TransferIntent) { i.Narration = strings.Repeat("x", MaxNarrationLength+1) },
			wantField: "narration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := validInterbankIntent()
			tt.mutate(&intent)

			err := ValidateIntent(intent, policy)

			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}

			if verr.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tt.wantField)
			}
		})
	}
}

func TestValidateDestination(t *testing.T) {
	tests := []struct {
		name    string
		channel Channel
		dest    Destination
		wantErr bool
	}{
		{
			name:    "internal valid",
			channel: ChannelInternal,
			dest:    Destination{AccountID: "acc-2"},
		},
		{
			name:    "internal missing account",
			channel: ChannelInternal,
			dest:    Destination{},
			wantErr: true,
		},
		{
			name:    "interbank valid",
			channel: ChannelInterbank,
			dest:    Destination{AccountNumber: "0123456789", RoutingCode: "044"},
		},
		{
			name:    "interbank short account number",
			channel: ChannelInterbank,
			dest:    Destination{AccountNumber: "12345", RoutingCode: "044"},
			wantErr: true,
		},
		{
			name:    "interbank non-numeric routing",
			channel: ChannelInterbank,
			dest:    Destination{AccountNumber: "0123456789", RoutingCode: "AB1"},
			wantErr: true,
		},
		{
			name:    "cross-border valid",
			channel: ChannelCrossBorder,
			dest:    Destination{IBAN: "DE89370400440532013000", SWIFTCode: "COBADEFF", Country: "DE"},
		},
		{
			name:    "cross-border valid 11-char swift",
			channel: ChannelCrossBorder,
			dest:    Destination{IBAN: "GB29NWBK60161331926819", SWIFTCode: "NWBKGB2LXXX", Country: "GB"},
		},
		{
			name:    "cross-border bad iban",
			channel: ChannelCrossBorder,
			dest:    Destination{IBAN: "NOT-AN-IBAN", SWIFTCode: "COBADEFF", Country: "DE"},
			wantErr: true,
		},
		{
			name:    "cross-border bad swift",
			channel: ChannelCrossBorder,
			dest:    Destination{IBAN: "DE89370400440532013000", SWIFTCode: "BAD", Country: "DE"},
			wantErr: true,
		},
		{
			name:    "cross-border missing country",
			channel: ChannelCrossBorder,
			dest:    Destination{IBAN: "DE89370400440532013000", SWIFTCode: "COBADEFF"},
			wantErr: true,
		},
		{
			name:    "biller valid",
			channel: ChannelBiller,
			dest:    Destination{BillerID: "electric-co", CustomerRef: "meter-42"},
		},
		{
			name:    "biller missing customer ref",
			channel: ChannelBiller,
			dest:    Destination{BillerID: "electric-co"},
			wantErr: true,
		},
		{
			name:    "unknown channel",
			channel: Channel("fax"),
			dest:    Destination{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDestination(tt.channel, tt.dest)

			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateCurrency_CaseInsensitive(t *testing.T) {
	if err := ValidateCurrency("usd"); err != nil {
		t.Errorf("lowercase code should validate: %v", err)
	}

	if err := ValidateCurrency(" EUR "); err != nil {
		t.Errorf("padded code should validate: %v", err)
	}
}

func TestValidatePagination(t *testing.T) {
	tests := []struct {
		name                  string
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{"defaults applied", 0, 0, 20, 0},
		{"negative clamped", -5, -10, 20, 0},
		{"within bounds kept", 50, 100, 50, 100},
		{"oversized limit clamped", 5000, 0, 200, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := ValidatePagination(tt.limit, tt.offset)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("got (%d, %d), want (%d, %d)", limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
