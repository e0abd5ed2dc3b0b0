package ports

import (
	"context"
	"math/rand"
)

// RNGPort provides random number generation for assignment draws.
// Injecting the source keeps weighted selection verifiable in tests.
type RNGPort interface {
	// Stream creates an RNG stream scoped to one assessment, so repeated
	// draws for the same assessment reproduce the same assignment
	Stream(ctx context.Context, assessmentID, operation string, baseSeed int64) (*rand.Rand, error)
}
