package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Contract fragments the service interacts with. Only the pieces the
// pipeline touches are declared: the burn event on the token contract
// and the mint surface of the prize contract.

const burnTokenABIJSON = `[
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "internalType": "address", "name": "payer", "type": "address"},
			{"indexed": false, "internalType": "uint256", "name": "amount", "type": "uint256"},
			{"indexed": false, "internalType": "uint256", "name": "timestamp", "type": "uint256"}
		],
		"name": "TokensBurned",
		"type": "event"
	}
]`

const prizeContractABIJSON = `[
	{
		"inputs": [
			{"internalType": "address", "name": "to", "type": "address"},
			{"internalType": "string", "name": "uri", "type": "string"}
		],
		"name": "mintTo",
		"outputs": [{"internalType": "uint256", "name": "tokenId", "type": "uint256"}],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"anonymous": false,
		"inputs": [
			{"indexed": true, "internalType": "address", "name": "from", "type": "address"},
			{"indexed": true, "internalType": "address", "name": "to", "type": "address"},
			{"indexed": true, "internalType": "uint256", "name": "tokenId", "type": "uint256"}
		],
		"name": "Transfer",
		"type": "event"
	}
]`

var (
	burnTokenABI     = mustParseABI(burnTokenABIJSON)
	prizeContractABI = mustParseABI(prizeContractABIJSON)

	// Event selectors, precomputed once.
	tokensBurnedID = burnTokenABI.Events["TokensBurned"].ID
	transferID     = prizeContractABI.Events["Transfer"].ID
)

func mustParseABI(s string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(s))
	if err != nil {
		panic("invalid contract ABI: " + err.Error())
	}
	return parsed
}

// packMintCall encodes the mintTo call for a collectible settlement.
func packMintCall(to common.Address, uri string) ([]byte, error) {
	return prizeContractABI.Pack("mintTo", to, uri)
}
