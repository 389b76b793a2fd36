package booking

import "strings"

const PaymentMethodMpesa = "mpesa"

// confirmationMarkers are the reference prefixes the dev-mode payment
// verifier accepts. Real STK-push callbacks carry MPESA receipt codes;
// TEST covers sandbox references.
var confirmationMarkers = []string{"MPESA", "MP-", "TEST"}

// IsInstantConfirm reports whether a booking is born completed: a
// verified channel with a reference in hand needs no manual confirmation.
func IsInstantConfirm(paymentMethod, paymentReference string) bool {
	return strings.EqualFold(paymentMethod, PaymentMethodMpesa) && paymentReference != ""
}

// MatchesConfirmationMarker applies the allow-list prefix rule,
// case-insensitively.
func MatchesConfirmationMarker(reference string) bool {
	ref := strings.ToUpper(strings.TrimSpace(reference))
	if ref == "" {
		return false
	}
	for _, marker := range confirmationMarkers {
		if strings.HasPrefix(ref, marker) {
			return true
		}
	}
	return false
}
