package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "swedish mobile", input: "070-123 45 67", want: "+46701234567"},
		{name: "already e164", input: "+46701234567", want: "+46701234567"},
		{name: "surrounding spaces", input: "  0701234567 ", want: "+46701234567"},
		{name: "garbage kept", input: "ring mig", want: "ring mig"},
		{name: "empty", input: "   ", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeE164(tt.input); got != tt.want {
				t.Fatalf("NormalizeE164(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeReportsValidity(t *testing.T) {
	if _, ok := Normalize("070-123 45 67"); !ok {
		t.Fatal("expected valid mobile number")
	}
	if got, ok := Normalize("12"); ok || got != "12" {
		t.Fatalf("expected invalid short number kept as is, got %q %v", got, ok)
	}
}
