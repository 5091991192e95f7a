package idgen

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDocNo(t *testing.T) {
	at := time.Date(2025, 8, 31, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		prefix string
		suffix int
		want   string
	}{
		{PrefixJobOrder, 42, "JO2508310042"},
		{PrefixManifest, 0, "MF2508310000"},
		{PrefixDeliveryOrder, 9999, "DO2508319999"},
		{PrefixInvoice, 7, "INV2508310007"},
	}

	for _, tt := range tests {
		got := FormatDocNo(tt.prefix, at, tt.suffix)
		if got != tt.want {
			t.Errorf("FormatDocNo(%s, %d) = %s, want %s", tt.prefix, tt.suffix, got, tt.want)
		}
	}
}

func TestFormatDocNoSuffixWraps(t *testing.T) {
	at := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	got := FormatDocNo(PrefixJobOrder, at, 10042)
	if !strings.HasSuffix(got, "0042") {
		t.Errorf("suffix should wrap modulo 10000, got %s", got)
	}
	if len(got) != len("JO2501020042") {
		t.Errorf("unexpected length for %s", got)
	}
}
