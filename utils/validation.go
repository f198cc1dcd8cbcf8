package utils

import "strings"

// NormalizePhone bỏ khoảng trắng và dấu gạch trong số điện thoại
func NormalizePhone(phone string) string {
	phone = strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	return strings.ReplaceAll(phone, "-", "")
}

// NormalizeEmail cắt khoảng trắng và đưa về chữ thường
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidValueOfConstant(value string, constantValues []string) bool {
	for _, r := range constantValues {
		if r == value {
			return true
		}
	}
	return false
}
