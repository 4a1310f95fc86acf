package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MinNameLength は name の最小文字数です。
	MinNameLength = 2
	// MaxNameLength は name の最大文字数です。
	MaxNameLength = 30
	// MinFullnameLength は fullname の最小文字数（前後の空白を除く）です。
	MinFullnameLength = 2
	// MaxFullnameLength は fullname の最大文字数です。
	MaxFullnameLength = 50
	// MaxEmailLength は email_address の最大文字数です。
	MaxEmailLength = 100
)

// NormalizeName は name が英数字のみで構成され、2文字以上であることを検証し、小文字化した値を返します。
// 最大文字数はフィールドレベル（binding タグ）で検証します。
func NormalizeName(name string) (string, error) {
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return "", &ValidationError{Field: "name", Reason: "must contain only letters and digits"}
		}
	}
	if utf8.RuneCountInString(name) < MinNameLength {
		return "", &ValidationError{Field: "name", Reason: "must be at least 2 characters"}
	}
	return strings.ToLower(name), nil
}

// NormalizeFullname は fullname が指定されている場合、空白を除いて2文字以上であることを検証します。
// nil はそのまま返します。
func NormalizeFullname(fullname *string) (*string, error) {
	if fullname == nil {
		return nil, nil
	}
	if utf8.RuneCountInString(strings.TrimSpace(*fullname)) < MinFullnameLength {
		return nil, &ValidationError{Field: "fullname", Reason: "must be at least 2 characters"}
	}
	v := *fullname
	return &v, nil
}

// NormalizeEmail は email_address の形式を検証し、小文字化した値を返します。
func NormalizeEmail(email string) (string, error) {
	invalid := &ValidationError{Field: "email_address", Reason: "invalid email format"}

	local, host, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.ContainsAny(host, "@ ") {
		return "", invalid
	}
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return "", invalid
	}
	for _, l := range labels {
		if l == "" {
			return "", invalid
		}
	}
	return strings.ToLower(email), nil
}
