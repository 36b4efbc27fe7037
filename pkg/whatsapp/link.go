// Package whatsapp builds wa.me deep links carrying pre-filled order
// messages. The link format must stay byte-exact: digits-only phone number,
// percent-encoded text with %20 for spaces.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

const baseURL = "https://wa.me/"

// OrderLine is one product entry in a message.
type OrderLine struct {
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Subtotal returns UnitPrice * Quantity.
func (l OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// NormalizeNumber strips everything but digits from a phone number, so
// "+237 659 27 02 05" becomes "237659270205".
func NormalizeNumber(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatFCFA renders an amount as grouped thousands with no decimals,
// suffixed with the currency: 10000 -> "10 000 FCFA".
func FormatFCFA(amount decimal.Decimal) string {
	digits := amount.Round(0).String()
	neg := strings.HasPrefix(digits, "-")
	if neg {
		digits = digits[1:]
	}

	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := strings.Join(groups, " ")
	if neg {
		out = "-" + out
	}
	return out + " FCFA"
}

// BuildOrderMessage renders the single-product order message.
func BuildOrderMessage(line OrderLine, customerName, cityName string) string {
	var b strings.Builder
	b.WriteString("Bonjour, je souhaite passer une commande :\n\n")
	b.WriteString(fmt.Sprintf("Produit : %s\n", line.ProductName))
	b.WriteString(fmt.Sprintf("Prix unitaire : %s\n", FormatFCFA(line.UnitPrice)))
	b.WriteString(fmt.Sprintf("Quantité : %d\n", line.Quantity))
	b.WriteString(fmt.Sprintf("Total : %s\n\n", FormatFCFA(line.Subtotal())))
	b.WriteString(fmt.Sprintf("Client : %s\n", customerName))
	b.WriteString(fmt.Sprintf("Ville : %s", cityName))
	return b.String()
}

// BuildCartMessage renders a combined message for several products.
func BuildCartMessage(lines []OrderLine, customerName, cityName string) string {
	total := decimal.Zero
	var b strings.Builder
	b.WriteString("Bonjour, je souhaite passer une commande :\n\n")
	for _, line := range lines {
		sub := line.Subtotal()
		total = total.Add(sub)
		b.WriteString(fmt.Sprintf("- %dx %s (%s) = %s\n",
			line.Quantity, line.ProductName, FormatFCFA(line.UnitPrice), FormatFCFA(sub)))
	}
	b.WriteString(fmt.Sprintf("\nTotal : %s\n\n", FormatFCFA(total)))
	b.WriteString(fmt.Sprintf("Client : %s\n", customerName))
	b.WriteString(fmt.Sprintf("Ville : %s", cityName))
	return b.String()
}

// Link assembles the deep link. The message is percent-encoded; QueryEscape
// uses + for spaces, which WhatsApp renders literally, so spaces become %20.
func Link(number, message string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return baseURL + NormalizeNumber(number) + "?text=" + encoded
}
