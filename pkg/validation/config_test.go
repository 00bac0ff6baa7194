package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfigValidator_Required(t *testing.T) {
	cv := NewConfigValidator("Server")
	cv.Required("Addr", "")
	if !cv.HasErrors() {
		t.Error("Expected error for empty required field")
	}

	cv2 := NewConfigValidator("Server")
	cv2.Required("Addr", ":8080")
	if cv2.HasErrors() {
		t.Error("Expected no error for non-empty required field")
	}
}

func TestConfigValidator_Ranges(t *testing.T) {
	tests := []struct {
		name    string
		check   func(*ConfigValidator)
		wantErr bool
	}{
		{"RangeInt inside", func(cv *ConfigValidator) { cv.RangeInt("Steps", 300, 1, 2000) }, false},
		{"RangeInt below", func(cv *ConfigValidator) { cv.RangeInt("Steps", 0, 1, 2000) }, true},
		{"RangeFloat inside", func(cv *ConfigValidator) { cv.RangeFloat("VelocityDecay", 0.4, 0, 1) }, false},
		{"RangeFloat above", func(cv *ConfigValidator) { cv.RangeFloat("VelocityDecay", 1.5, 0, 1) }, true},
		{"Positive", func(cv *ConfigValidator) { cv.Positive("Burst", 0) }, true},
		{"PositiveFloat", func(cv *ConfigValidator) { cv.PositiveFloat("Width", 800) }, false},
		{"NegativeFloat ok", func(cv *ConfigValidator) { cv.NegativeFloat("Charge", -300) }, false},
		{"NegativeFloat zero", func(cv *ConfigValidator) { cv.NegativeFloat("Charge", 0) }, true},
		{"MinDuration", func(cv *ConfigValidator) { cv.MinDuration("Timeout", 0, time.Second) }, true},
		{"OneOf ok", func(cv *ConfigValidator) { cv.OneOf("Level", "INFO", []string{"DEBUG", "INFO"}) }, false},
		{"OneOf bad", func(cv *ConfigValidator) { cv.OneOf("Level", "LOUD", []string{"DEBUG", "INFO"}) }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("Test")
			tt.check(cv)
			if cv.HasErrors() != tt.wantErr {
				t.Errorf("HasErrors() = %v, want %v (%v)", cv.HasErrors(), tt.wantErr, cv.Errors())
			}
		})
	}
}

func TestConfigValidator_CustomAndWhen(t *testing.T) {
	sentinel := errors.New("bad url")
	cv := NewConfigValidator("Upstream").
		Custom("SearchURL", func() error { return sentinel }).
		When(false, func(cv *ConfigValidator) { cv.Required("Skipped", "") })

	if len(cv.Errors()) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(cv.Errors()))
	}
	if !errors.Is(cv.Validate(), sentinel) {
		t.Errorf("Validate() should wrap the custom error, got %v", cv.Validate())
	}
}

func TestConfigValidator_ValidateJoinsErrors(t *testing.T) {
	err := NewConfigValidator("Layout").
		PositiveFloat("Width", 0).
		PositiveFloat("Height", -1).
		Validate()
	if err == nil {
		t.Fatal("Expected error from Validate()")
	}
	msg := err.Error()
	if !strings.Contains(msg, "Layout.Width") || !strings.Contains(msg, "Layout.Height") {
		t.Errorf("Expected both fields in %q", msg)
	}

	if err := NewConfigValidator("Layout").PositiveFloat("Width", 1).Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}

func TestDefaults(t *testing.T) {
	if DefaultOr("", "x") != "x" || DefaultOr("y", "x") != "y" {
		t.Error("DefaultOr mismatch")
	}
	if DefaultOr(0.0, 0.4) != 0.4 {
		t.Error("DefaultOr float mismatch")
	}
	if DefaultOrDuration(0, time.Second) != time.Second || DefaultOrDuration(-time.Second, time.Second) != time.Second {
		t.Error("DefaultOrDuration mismatch")
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 1, 3) != 3 || Clamp(-1, 1, 3) != 1 || Clamp(2, 1, 3) != 2 {
		t.Error("Clamp int mismatch")
	}
	if Clamp(0.05, 0.1, 4) != 0.1 || Clamp(8.0, 0.1, 4) != 4 {
		t.Error("Clamp float mismatch")
	}
}

type sectionConfig struct{ Name string }

func (c *sectionConfig) Validate() error {
	return NewConfigValidator("Section").Required("Name", c.Name).Validate()
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(&sectionConfig{Name: "ok"}); err != nil {
		t.Errorf("unexpected error %v", err)
	}
	if err := ValidateConfig(&sectionConfig{}); err == nil {
		t.Error("expected error")
	}
	if err := ValidateConfig(nil); err == nil {
		t.Error("expected error for nil config")
	}
}
