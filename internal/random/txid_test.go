package random

import "testing"

func TestTransactionIDDistribution(t *testing.T) {
	seen := make(map[uint16]bool)
	const iterations = 10000

	for i := 0; i < iterations; i++ {
		seen[TransactionID()] = true
	}

	if len(seen) < iterations*9/10 {
		t.Errorf("too many collisions: got %d unique IDs from %d iterations", len(seen), iterations)
	}
}
