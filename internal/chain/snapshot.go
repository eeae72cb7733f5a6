package chain

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// SnapshotBlock is the serializable form of one connected block's metadata.
type SnapshotBlock struct {
	Hash      string `json:"hash"`
	PrevHash  string `json:"prevHash"`
	Height    uint64 `json:"height"`
	CumWork   string `json:"cumWork"`
	Canonical bool   `json:"canonical"`
}

// Snapshot is the serializable form of a BlockChain, persisted through the
// block service at shutdown and restored at startup.
type Snapshot struct {
	Tip    string          `json:"tip"`
	Blocks []SnapshotBlock `json:"blocks"`
}

// Snapshot captures the current chain state. Blocks are ordered by height,
// then hash, so the output is deterministic.
func (c *BlockChain) Snapshot() *Snapshot {
	s := &Snapshot{Blocks: make([]SnapshotBlock, 0, len(c.heights))}
	if c.empty() {
		return s
	}

	s.Tip = c.tip.String()
	for hash, height := range c.heights {
		s.Blocks = append(s.Blocks, SnapshotBlock{
			Hash:      hash.String(),
			PrevHash:  c.parents[hash].String(),
			Height:    height,
			CumWork:   c.work[hash].String(),
			Canonical: c.hashByHeight[height] == hash,
		})
	}
	sort.Slice(s.Blocks, func(i, j int) bool {
		if s.Blocks[i].Height != s.Blocks[j].Height {
			return s.Blocks[i].Height < s.Blocks[j].Height
		}
		return s.Blocks[i].Hash < s.Blocks[j].Hash
	})
	return s
}

// FromSnapshot rebuilds a BlockChain from its serialized form.
func FromSnapshot(s *Snapshot) (*BlockChain, error) {
	c := New()
	if s == nil || len(s.Blocks) == 0 {
		return c, nil
	}

	for _, sb := range s.Blocks {
		hash, err := chainhash.NewHashFromStr(sb.Hash)
		if err != nil {
			return nil, fmt.Errorf("parse block hash %q: %w", sb.Hash, err)
		}
		prev, err := chainhash.NewHashFromStr(sb.PrevHash)
		if err != nil {
			return nil, fmt.Errorf("parse prev hash %q: %w", sb.PrevHash, err)
		}
		work, ok := new(big.Int).SetString(sb.CumWork, 10)
		if !ok {
			return nil, fmt.Errorf("parse cumulative work %q", sb.CumWork)
		}

		c.heights[*hash] = sb.Height
		c.work[*hash] = work
		c.parents[*hash] = *prev
		if sb.Canonical {
			c.hashByHeight[sb.Height] = *hash
		}
	}

	tip, err := chainhash.NewHashFromStr(s.Tip)
	if err != nil {
		return nil, fmt.Errorf("parse tip %q: %w", s.Tip, err)
	}
	if !c.HasData(*tip) {
		return nil, fmt.Errorf("snapshot tip %s is not among its blocks", s.Tip)
	}
	c.tip = *tip
	return c, nil
}
