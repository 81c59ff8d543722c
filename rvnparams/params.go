// Package rvnparams defines the Ravencoin network parameters needed for
// address handling. The parameters are registered with btcd's chaincfg at
// init time so that btcutil address decoding recognizes Ravencoin version
// bytes.
package rvnparams

import (
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/wire"
)

// MainNetParams holds the address encoding parameters of the Ravencoin main
// network. Only the fields relevant to address handling are meaningful;
// consensus fields keep their zero values since this library never validates
// blocks.
var MainNetParams = chaincfg.Params{
	Name: "rvn-mainnet",

	// Message start "RAVN".
	Net: wire.BitcoinNet(0x4e564152),

	// Address encoding magics. P2PKH addresses start with 'R'.
	PubKeyHashAddrID: 0x3c,
	ScriptHashAddrID: 0x7a,
	PrivateKeyID:     0x80,

	// BIP32 extended key magics, shared with Bitcoin (xprv/xpub).
	HDPrivateKeyID: [4]byte{0x04, 0x88, 0xad, 0xe4},
	HDPublicKeyID:  [4]byte{0x04, 0x88, 0xb2, 0x1e},

	// BIP44 coin type.
	HDCoinType: 175,

	// Ravencoin never activated segwit; the prefix is set only to keep
	// the registry entry unique.
	Bech32HRPSegwit: "rvn",
}

// TestNetParams holds the address encoding parameters of the Ravencoin test
// network.
var TestNetParams = chaincfg.Params{
	Name: "rvn-testnet",

	// Message start "RVNT".
	Net: wire.BitcoinNet(0x544e5652),

	// Address encoding magics. P2PKH addresses start with 'm' or 'n'.
	PubKeyHashAddrID: 0x6f,
	ScriptHashAddrID: 0xc4,
	PrivateKeyID:     0xef,

	// BIP32 extended key magics, shared with Bitcoin testnet (tprv/tpub).
	HDPrivateKeyID: [4]byte{0x04, 0x35, 0x83, 0x94},
	HDPublicKeyID:  [4]byte{0x04, 0x35, 0x87, 0xcf},

	HDCoinType: 1,

	Bech32HRPSegwit: "trvn",
}

func init() {
	if err := chaincfg.Register(&MainNetParams); err != nil {
		panic(err)
	}
	if err := chaincfg.Register(&TestNetParams); err != nil {
		panic(err)
	}
}
