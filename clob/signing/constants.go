package signing

const (
	// AuthDomainName is the EIP-712 domain for wallet-ownership proofs.
	AuthDomainName    = "ClobAuthDomain"
	AuthDomainVersion = "1"

	// OrderDomainName is the EIP-712 domain for order proofs; it is bound
	// to the exchange contract via the verifyingContract field.
	OrderDomainName    = "Polymarket CTF Exchange"
	OrderDomainVersion = "1"

	// AttestationMsg is the fixed message bound into every auth proof.
	AttestationMsg = "This message attests that I control the given wallet"
)
