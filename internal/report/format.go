package report

import (
	"fmt"
	"math"
	"strings"
)

// FormatCompact: Sayaç değerlerinin gösterim biçimi. 1.000.000 ve üzeri "x.xM",
// 1.000 ve üzeri "x.xK", altı binlik ayraçlı ham sayı. Sadece sunum kuralıdır;
// CSV dışa aktarımı ham sayı kullanır.
func FormatCompact(v int64) string {
	neg := ""
	if v < 0 {
		neg = "-"
		v = -v
	}
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%s%.1fM", neg, float64(v)/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%s%.1fK", neg, float64(v)/1_000)
	default:
		return neg + FormatThousands(v)
	}
}

// FormatThousands: Türkçe binlik ayracı (nokta) ile gruplama. 1234567 -> "1.234.567"
func FormatThousands(v int64) string {
	s := fmt.Sprintf("%d", v)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ".")
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPercent: "3.00%" biçimi (etkileşim oranı kutusu)
func FormatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

// FormatChange: Değişim rozetleri için işaretli yüzde. Pozitifte + öneki.
func FormatChange(v float64) string {
	if v > 0 {
		return fmt.Sprintf("+%.1f%%", v)
	}
	return fmt.Sprintf("%.1f%%", v)
}

// FormatMoney: Hizmet bedeli kutusu. "12.500,00 TRY" biçimi.
func FormatMoney(amount float64, currency string) string {
	if currency == "" {
		currency = "TRY"
	}
	cents := int64(math.Round(amount * 100))
	neg := ""
	if cents < 0 {
		neg = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%s,%02d %s", neg, FormatThousands(cents/100), cents%100, currency)
}
