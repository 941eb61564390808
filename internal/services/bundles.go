package services

// CreditBundle is a fixed (price, credit-count) offering.
type CreditBundle struct {
	AmountMinor int64
	Credits     int64
}

const BundleCurrency = "USD"

var creditBundles = map[string]CreditBundle{
	"bundle_10": {AmountMinor: 1000, Credits: 100},
	"bundle_25": {AmountMinor: 2500, Credits: 300},
	"bundle_50": {AmountMinor: 5000, Credits: 750},
}

func BundleByID(id string) (CreditBundle, bool) {
	bundle, ok := creditBundles[id]
	return bundle, ok
}

// CreditsForAmount matches a payment amount against the bundle table. Used as
// a fallback when a payment carries no bundle id in its metadata.
func CreditsForAmount(amountMinor int64) (int64, bool) {
	for _, bundle := range creditBundles {
		if bundle.AmountMinor == amountMinor {
			return bundle.Credits, true
		}
	}
	return 0, false
}
