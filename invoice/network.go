package invoice

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
)

// Network is a bitcoin network an invoice is valid on.
type Network int

const (
	Mainnet Network = iota + 1
	Testnet
)

// Networks lists the supported networks.
var Networks = []Network{Mainnet, Testnet}

// Params returns the chain parameters of the network, or nil if the network is
// not known.
func (n Network) Params() *chaincfg.Params {
	switch n {
	case Mainnet:
		return &chaincfg.MainNetParams
	case Testnet:
		return &chaincfg.TestNet3Params
	}

	return nil
}

// String returns the SLIP-0173 code of the network, e.g. "bc".
func (n Network) String() string {
	if p := n.Params(); p != nil {
		return p.Bech32HRPSegwit
	}

	return fmt.Sprintf("Network(%d)", int(n))
}

// UnknownNetworkError is returned for a network code that is not supported.
type UnknownNetworkError struct {
	Code string
}

func (e *UnknownNetworkError) Error() string {
	return fmt.Sprintf("%s is unknown and cannot be parsed", e.Code)
}

// ParseNetwork returns the network with the given SLIP-0173 code.
func ParseNetwork(code string) (Network, error) {
	for _, n := range Networks {
		if n.String() == code {
			return n, nil
		}
	}

	return 0, &UnknownNetworkError{Code: code}
}
