package migrate

import (
	"strings"
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"0001_create_ts_entries.sql", 1, false},
		{"0042_x.sql", 42, false},
		{"create.sql", 0, true},
		{"_x.sql", 0, true},
		{"abc_x.sql", 0, true},
	}
	for _, tt := range tests {
		got, err := parseVersion(tt.name)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("parseVersion(%q) = (%d, %v), want %d", tt.name, got, err, tt.want)
		}
	}
}

func TestLoadRendersPrefix(t *testing.T) {
	ms, err := Load("oc_")
	if err != nil {
		t.Fatal(err)
	}
	if len(ms) < 3 {
		t.Fatalf("got %d migrations", len(ms))
	}
	for i, m := range ms {
		if i > 0 && ms[i-1].Version >= m.Version {
			t.Errorf("migrations out of order at %s", m.Name)
		}
		if strings.Contains(m.SQL, prefixPlaceholder) {
			t.Errorf("%s still contains the placeholder", m.Name)
		}
	}
	if !strings.Contains(ms[0].SQL, "`oc_ts_entries`") {
		t.Errorf("first migration does not create oc_ts_entries:\n%s", ms[0].SQL)
	}
}

func TestLoadRejectsBadPrefix(t *testing.T) {
	if _, err := Load("oc`; DROP TABLE x; --"); err == nil {
		t.Fatal("expected error for unsafe prefix")
	}
}
