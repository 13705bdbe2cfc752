package handlers

import (
	"strings"
	"testing"
)

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		body    string
		wantErr bool
	}{
		{"valid", "A Title", "some body", false},
		{"empty title", "", "body", true},
		{"whitespace title", "   ", "body", true},
		{"title too long", strings.Repeat("x", 301), "body", true},
		{"title at limit", strings.Repeat("x", 300), "body", false},
		{"body too long", "Title", strings.Repeat("x", 500_001), true},
		{"empty body ok", "Title", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateContent(tt.title, tt.body)
			if (msg != "") != tt.wantErr {
				t.Errorf("validateContent(%q, ...) = %q, wantErr %v", tt.title, msg, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if msg := validateName(""); msg == "" {
		t.Error("empty name should fail")
	}
	if msg := validateName(strings.Repeat("x", 201)); msg == "" {
		t.Error("overlong name should fail")
	}
	if msg := validateName("News"); msg != "" {
		t.Errorf("valid name rejected: %s", msg)
	}
}

func TestValidateMessage(t *testing.T) {
	if msg := validateMessage(strings.Repeat("x", 2_001)); msg == "" {
		t.Error("overlong message should fail")
	}
	if msg := validateMessage(""); msg != "" {
		t.Error("empty message is allowed")
	}
}

func TestValidateLanguage(t *testing.T) {
	tests := []struct {
		code    string
		name    string
		wantErr bool
	}{
		{"en", "English", false},
		{"", "English", true},
		{"toolongcode", "English", true},
		{"en", "", true},
	}

	for _, tt := range tests {
		msg := validateLanguage(tt.code, tt.name)
		if (msg != "") != tt.wantErr {
			t.Errorf("validateLanguage(%q, %q) = %q, wantErr %v", tt.code, tt.name, msg, tt.wantErr)
		}
	}
}
