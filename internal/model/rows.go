package model

import "time"

// BlockRow is a confirmed block record persisted to ClickHouse.
type BlockRow struct {
	Network    Network
	Height     uint64
	Hash       string
	PrevHash   string
	Timestamp  time.Time
	Version    uint32
	MerkleRoot string
	Bits       uint32
	Nonce      uint32
	Size       uint32
	TXCount    uint32
}

// TransactionRow is a confirmed transaction record persisted to ClickHouse.
type TransactionRow struct {
	Network     Network
	TXID        string
	BlockHash   string
	BlockHeight uint64
	Index       uint32
	InputCount  uint32
	OutputCount uint32
	OutputValue uint64
	Coinbase    bool
}

// AddressRow links an address to an output it received in a confirmed block.
type AddressRow struct {
	Network     Network
	Address     string
	TXID        string
	Vout        uint32
	Value       uint64
	BlockHash   string
	BlockHeight uint64
}
