package rules

import (
	"math"
	"testing"
)

func TestLerpf(t *testing.T) {
	got := lerpf(0.0, 1.0, 0.5)
	if got != 0.5 {
		t.Errorf("lerpf(0, 1, 0.5) = %f, want 0.5", got)
	}
	got = lerpf(10.0, 20.0, 0.3)
	if got != 13.0 {
		t.Errorf("lerpf(10, 20, 0.3) = %f, want 13.0", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-0.5, 0, 1, 0.0},
		{1.5, 0, 1, 1.0},
		{0.0, 0, 1, 0.0},
		{1.0, 0, 1, 1.0},
	}
	for _, tc := range tests {
		got := clamp(tc.v, tc.min, tc.max)
		if got != tc.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tc.v, tc.min, tc.max, got, tc.want)
		}
	}
}

func TestLeaderDoctrineRatios(t *testing.T) {
	tests := []struct {
		personality string
		want        float64
	}{
		{"pacifist", 0.8},
		{"Erratic", 1.0},
		{"honorable", 1.25},
		{"xenophobic", 1.25},
		{"ruthless", 1.5},
		{"aggressive", 2.0},
		{"unknown", 1.0},
	}
	for _, tc := range tests {
		d := LeaderDoctrine(tc.personality)
		if got := d.Ratio(); math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("LeaderDoctrine(%q).Ratio() = %v, want %v", tc.personality, got, tc.want)
		}
	}
}

func TestDoctrineValidate(t *testing.T) {
	d := Doctrine{Aggression: 4}
	d.Validate()
	if d.Aggression != 1 {
		t.Errorf("Aggression = %v, want clamped to 1", d.Aggression)
	}
	if d.RetreatRatio != boldRatio {
		t.Errorf("RetreatRatio = %v, want %v", d.RetreatRatio, boldRatio)
	}

	d = Doctrine{RetreatRatio: 50}
	d.Validate()
	if d.RetreatRatio != maxRetreatRatio {
		t.Errorf("RetreatRatio = %v, want clamped to %v", d.RetreatRatio, maxRetreatRatio)
	}

	d = Doctrine{RetreatRatio: 0.01}
	d.Validate()
	if d.RetreatRatio != minRetreatRatio {
		t.Errorf("RetreatRatio = %v, want clamped to %v", d.RetreatRatio, minRetreatRatio)
	}
}

func TestDefaultDoctrine(t *testing.T) {
	d := DefaultDoctrine()
	if d.Name != "Balanced" {
		t.Errorf("DefaultDoctrine().Name = %q, want %q", d.Name, "Balanced")
	}
	if r := d.Ratio(); math.Abs(r-1.0) > 1e-9 {
		t.Errorf("DefaultDoctrine().Ratio() = %v, want 1.0", r)
	}
}
