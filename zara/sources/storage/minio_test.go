package storage

import (
	"testing"
	"time"
)

func TestObjectKeys(t *testing.T) {
	if got := registrationKey("abc"); got != "registrations/abc.json" {
		t.Errorf("registrationKey = %q", got)
	}
	at := time.Date(2026, 3, 9, 23, 30, 0, 0, time.FixedZone("UTC-2", -2*3600))
	if got := exchangeKey(at, "xyz"); got != "exchanges/2026-03-10/xyz.json" {
		t.Errorf("exchangeKey = %q", got)
	}
}
