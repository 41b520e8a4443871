package kijijifetcher

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// parseFloat извлекает число из текста вида "$1,250.50".
// Возвращает nil, если разобрать не удалось.
func parseFloat(value string) *float64 {
	if value == "" {
		return nil
	}
	cleaned := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(value, ",", ""), "$", ""))
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &f
}

// parseInt извлекает целое из текста, отбрасывая все нецифровые символы.
func parseInt(value string) *int {
	if value == "" {
		return nil
	}
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return nil
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return nil
	}
	return &n
}

// normalizeAnswer стандартизирует значения-ответы ("yes", "NO" -> "Yes", "No").
func normalizeAnswer(s string) string {
	if s == "" {
		return ""
	}
	lowerTrimmed := strings.ToLower(strings.TrimSpace(s))

	runes := []rune(lowerTrimmed)
	caser := cases.Upper(language.English)
	firstRuneUpper := []rune(caser.String(string(runes[0])))
	runes[0] = firstRuneUpper[0]

	return string(runes)
}

// attributeValueToString приводит первое значение атрибута к строке.
// Kijiji отдает values как массив строк, но числа встречаются тоже.
func attributeValueToString(values []any) string {
	if len(values) == 0 || values[0] == nil {
		return ""
	}
	switch v := values[0].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
