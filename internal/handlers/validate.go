// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for content and taxonomy fields.
const (
	maxTitleLen    = 300
	maxBodyLen     = 500_000
	maxNameLen     = 200
	maxMessageLen  = 2_000
	maxLangCodeLen = 10
)

// validateContent checks content inputs and returns the first error found.
func validateContent(title, body string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(body) > maxBodyLen {
		return "Body is too long (max 500,000 characters)."
	}
	return ""
}

// validateName checks a category or display name.
func validateName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	return ""
}

// validateMessage checks a reviewer message.
func validateMessage(msg string) string {
	if utf8.RuneCountInString(msg) > maxMessageLen {
		return "Message is too long (max 2,000 characters)."
	}
	return ""
}

// validateLanguage checks language inputs.
func validateLanguage(code, name string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return "Language code is required."
	}
	if utf8.RuneCountInString(code) > maxLangCodeLen {
		return "Language code is too long (max 10 characters)."
	}
	return validateName(name)
}
