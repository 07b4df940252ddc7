package domain_test

import (
	"testing"

	"tempo/internal/modules/notes/domain"
)

func TestKeyRoundTrip(t *testing.T) {
	t.Parallel()
	key := domain.Key("o1", "s1", "2026-03-14")
	if key != "o1/s1/2026-03-14" {
		t.Fatalf("unexpected key: %s", key)
	}
	oID, sID, date, ok := domain.ParseKey(key)
	if !ok || oID != "o1" || sID != "s1" || date != "2026-03-14" {
		t.Fatalf("parse mismatch: %s %s %s %v", oID, sID, date, ok)
	}
	if _, _, _, ok := domain.ParseKey("just-one-part"); ok {
		t.Fatalf("malformed key should not parse")
	}
}

func TestValidDate(t *testing.T) {
	t.Parallel()
	if !domain.ValidDate("2026-03-14") {
		t.Fatalf("ISO date should be valid")
	}
	for _, bad := range []string{"", "14-03-2026", "2026/03/14", "2026-13-40"} {
		if domain.ValidDate(bad) {
			t.Fatalf("%q should be invalid", bad)
		}
	}
}
