package models

import (
	"testing"
)

func TestPropertyNormalize(t *testing.T) {
	tests := []struct {
		name      string
		input     Property
		wantBHK   int
		wantBaths int
		wantSqft  int
	}{
		{"all absent", Property{}, 1, 1, 1000},
		{"valid values untouched", Property{BHK: 3, Baths: 2, Sqft: 1800}, 3, 2, 1800},
		{"negative bhk clamped", Property{BHK: -2, Baths: 2, Sqft: 900}, 1, 2, 900},
		{"zero baths clamped", Property{BHK: 2, Baths: 0, Sqft: 900}, 2, 1, 900},
		{"undersized sqft raised", Property{BHK: 1, Baths: 1, Sqft: 200}, 1, 1, 500},
		{"boundary sqft kept", Property{BHK: 1, Baths: 1, Sqft: 500}, 1, 1, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.input
			p.Normalize()
			if p.BHK != tt.wantBHK {
				t.Errorf("Expected bhk %d, got %d", tt.wantBHK, p.BHK)
			}
			if p.Baths != tt.wantBaths {
				t.Errorf("Expected baths %d, got %d", tt.wantBaths, p.Baths)
			}
			if p.Sqft != tt.wantSqft {
				t.Errorf("Expected sqft %d, got %d", tt.wantSqft, p.Sqft)
			}
		})
	}
}

func TestPropertyImages(t *testing.T) {
	img1 := "data:image/png;base64,abc"
	img3 := "https://picsum.photos/seed/villa/800/600"
	empty := ""

	p := Property{Image1: &img1, Image2: &empty, Image3: &img3}
	images := p.Images()
	if len(images) != 2 {
		t.Fatalf("Expected 2 images, got %d", len(images))
	}
	if images[0] != img1 || images[1] != img3 {
		t.Errorf("Expected slot order preserved, got %v", images)
	}

	p = Property{}
	if len(p.Images()) != 0 {
		t.Error("Expected no images for empty slots")
	}
}

func TestConsultationSplitName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{"two part name", "Jane Doe", "Jane", "Doe"},
		{"single name", "Jane", "Jane", ""},
		{"three part name", "Jane van Doe", "Jane", "van Doe"},
		{"extra whitespace", "  Jane   Doe  ", "Jane", "Doe"},
		{"empty name", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Consultation{Name: tt.input}
			c.SplitName()
			if c.FirstName != tt.wantFirst {
				t.Errorf("Expected first name %q, got %q", tt.wantFirst, c.FirstName)
			}
			if c.LastName != tt.wantLast {
				t.Errorf("Expected last name %q, got %q", tt.wantLast, c.LastName)
			}
		})
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{ConsultationPending, ConsultationConfirmed, true},
		{ConsultationConfirmed, ConsultationCompleted, true},
		{ConsultationPending, ConsultationCompleted, false},
		{ConsultationConfirmed, ConsultationPending, false},
		{ConsultationCompleted, ConsultationConfirmed, false},
		{ConsultationCompleted, ConsultationCompleted, false},
		{"unknown", ConsultationConfirmed, false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []string{ConsultationPending, ConsultationConfirmed, ConsultationCompleted} {
		if !ValidStatus(s) {
			t.Errorf("Expected %q to be a valid status", s)
		}
	}
	if ValidStatus("archived") {
		t.Error("Expected unknown status to be invalid")
	}
}
