package chain

import "github.com/btcsuite/btcd/chaincfg/chainhash"

const recentLocatorEntries = 10

// BlockLocator returns a sparse sequence of canonical block hashes from the
// tip backward: the most recent entries one step apart, then exponentially
// sparser ones, always ending with genesis. Peers use it to answer "what do
// you have after any of these".
func (c *BlockChain) BlockLocator() []chainhash.Hash {
	if c.empty() {
		return nil
	}

	locator := make([]chainhash.Hash, 0, recentLocatorEntries+1)
	step := uint64(1)
	height := c.heights[c.tip]
	for {
		locator = append(locator, c.hashByHeight[height])
		if height == 0 {
			return locator
		}
		if len(locator) >= recentLocatorEntries {
			step *= 2
		}
		if height < step {
			height = 0
		} else {
			height -= step
		}
	}
}
