package hdwallet

// AddressLocation ties an address to the chain and account it was found in.
// It is built at query time and does not own anything.
type AddressLocation struct {
	Account *Account
	Chain   *Chain
	Address *Address
}
