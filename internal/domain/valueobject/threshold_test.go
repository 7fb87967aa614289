package valueobject

import "testing"

func TestNewThreshold(t *testing.T) {
	tests := []struct {
		name    string
		warn    int
		alert   int
		wantErr bool
	}{
		{"valid pair", 60, 80, false},
		{"boundary values are allowed", 0, 100, false},
		{"warn equals alert", 80, 80, true},
		{"warn above alert", 85, 80, true},
		{"negative warn", -1, 80, true},
		{"alert above 100", 60, 101, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewThreshold(tt.warn, tt.alert)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewThreshold(%d, %d) error = %v, wantErr %v", tt.warn, tt.alert, err, tt.wantErr)
			}
		})
	}
}

func TestDeriveThreshold(t *testing.T) {
	// Дефолтный alert=80 дает исторический warn=60
	pair, err := DeriveThreshold(80)
	if err != nil {
		t.Fatalf("DeriveThreshold(80) error = %v", err)
	}
	if pair.Warn != 60 {
		t.Errorf("derived warn = %d, want 60", pair.Warn)
	}
	if pair.Alert != 80 {
		t.Errorf("derived alert = %d, want 80", pair.Alert)
	}
}

func TestThresholdsFor(t *testing.T) {
	cpu, _ := NewThreshold(50, 70)
	mem, _ := NewThreshold(60, 80)
	disk, _ := NewThreshold(70, 90)

	ts, err := NewThresholds(cpu, mem, disk)
	if err != nil {
		t.Fatalf("NewThresholds() error = %v", err)
	}

	got, err := ts.For(Memory)
	if err != nil {
		t.Fatalf("For(Memory) error = %v", err)
	}
	if got != mem {
		t.Errorf("For(Memory) = %+v, want %+v", got, mem)
	}

	if _, err := ts.For(Load); err == nil {
		t.Error("For(Load) expected error: load has no percent thresholds")
	}
}

func TestNewThresholdsRejectsInvalidPair(t *testing.T) {
	valid, _ := NewThreshold(60, 80)
	invalid := Threshold{Warn: 90, Alert: 80}

	if _, err := NewThresholds(valid, invalid, valid); err == nil {
		t.Error("NewThresholds() expected error for misordered memory pair")
	}
}
