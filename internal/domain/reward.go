package domain

// RewardToken is a collectible unit drawn from a closed alphabet
type RewardToken string

// Reward token alphabet - one per musical note
const (
	TokenA RewardToken = "A"
	TokenB RewardToken = "B"
	TokenC RewardToken = "C"
	TokenD RewardToken = "D"
	TokenE RewardToken = "E"
	TokenF RewardToken = "F"
)

// RewardTokens lists the alphabet in canonical order
var RewardTokens = []RewardToken{TokenA, TokenB, TokenC, TokenD, TokenE, TokenF}

// Valid reports whether the token belongs to the alphabet
func (t RewardToken) Valid() bool {
	for _, known := range RewardTokens {
		if t == known {
			return true
		}
	}
	return false
}

// ParseRewardToken converts a raw string to a token
func ParseRewardToken(raw string) (RewardToken, bool) {
	t := RewardToken(raw)
	return t, t.Valid()
}

// LedgerPolicy decides whether a token can be collected more than once
type LedgerPolicy string

const (
	// LedgerPolicyUnique suppresses duplicate tokens
	LedgerPolicyUnique LedgerPolicy = "unique"
	// LedgerPolicyAppend records every grant
	LedgerPolicyAppend LedgerPolicy = "append"
)

// Valid reports whether the policy is known
func (p LedgerPolicy) Valid() bool {
	return p == LedgerPolicyUnique || p == LedgerPolicyAppend
}
