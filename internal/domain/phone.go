package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPhone возвращается, когда номер не содержит 10 цифр (с необязательным кодом страны 1)
var ErrInvalidPhone = errors.New("domain: phone number must have 10 digits")

// NormalizePhone brings a North American number to the stored form ###-###-####.
// Separators are ignored and a leading country code 1 is dropped.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}

	return digits[:3] + "-" + digits[3:6] + "-" + digits[6:], nil
}

// FormatPhoneDisplay renders a stored number as +1 (###) ###-####.
// Values not in stored form are returned unchanged.
func FormatPhoneDisplay(stored string) string {
	normalized, err := NormalizePhone(stored)
	if err != nil {
		return stored
	}
	return fmt.Sprintf("+1 (%s) %s-%s", normalized[:3], normalized[4:7], normalized[8:])
}
