package analyzer

// Profile holds the qualitative thresholds for one asset class. Crypto
// tolerates far larger deviations before a reading counts as overheated or
// as a buying opportunity.
type Profile struct {
	Key         string
	DisplayName string

	// BiasAlert is the overheat line: bias above it earns a risk warning.
	BiasAlert float64

	// Drawdowns are negative fractions; Deep < Moderate < 0.
	ModerateDrawdown float64
	DeepDrawdown     float64
}

var profiles = map[string]Profile{
	"sp500": {
		Key: "sp500", DisplayName: "标普500 (S&P 500)",
		BiasAlert: 0.15, ModerateDrawdown: -0.10, DeepDrawdown: -0.20,
	},
	"nasdaq": {
		Key: "nasdaq", DisplayName: "纳斯达克100 (Nasdaq-100)",
		BiasAlert: 0.20, ModerateDrawdown: -0.15, DeepDrawdown: -0.30,
	},
	"btc": {
		Key: "btc", DisplayName: "比特币 (BTC)",
		BiasAlert: 0.60, ModerateDrawdown: -0.50 / 1.5, DeepDrawdown: -0.50,
	},
	"eth": {
		Key: "eth", DisplayName: "以太坊 (ETH)",
		BiasAlert: 0.80, ModerateDrawdown: -0.60 / 1.5, DeepDrawdown: -0.60,
	},
}

// DefaultProfile uses the broad-index thresholds.
var DefaultProfile = profiles["sp500"]

// ProfileFor returns the profile registered under key, or DefaultProfile
// when the key is unknown or empty.
func ProfileFor(key string) Profile {
	if p, ok := profiles[key]; ok {
		return p
	}
	return DefaultProfile
}

// KnownProfile reports whether key names a registered profile.
func KnownProfile(key string) bool {
	_, ok := profiles[key]
	return ok
}
