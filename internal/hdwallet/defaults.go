package hdwallet

const (
	// DesiredMargin is the number of trailing unused addresses every chain keeps derived.
	DesiredMargin = 32
	// MaxUnusedGap is the part of the margin that must stay untouched between top-ups.
	MaxUnusedGap = 8

	// ReceiveBranch is the account child index of the receive chain.
	ReceiveBranch uint32 = 0
	// ChangeBranch is the account child index of the change chain.
	ChangeBranch uint32 = 1

	receiveChainName = "Receive"
	changeChainName  = "Change"
)

// MaxSafeExtend returns how many addresses may be handed out at once before a margin
// top-up is required.
func MaxSafeExtend() int {
	return DesiredMargin - MaxUnusedGap
}
