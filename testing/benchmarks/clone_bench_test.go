package benchmarks

import (
	"context"
	"testing"

	"github.com/zoobzio/replica"
	replicatest "github.com/zoobzio/replica/testing"
)

func BenchmarkClone_NestedObject(b *testing.B) {
	src := replicatest.NestedObject()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = replica.Clone(src)
	}
}

func BenchmarkClone_NestedMap(b *testing.B) {
	src := replicatest.NestedMap()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = replica.Clone(src)
	}
}

func BenchmarkClone_Struct(b *testing.B) {
	src := replicatest.NewLedger()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = replica.Clone(src)
	}
}

func BenchmarkClone_WideSequence(b *testing.B) {
	elems := make([]any, 1000)
	for i := range elems {
		elems[i] = i
	}
	src := replica.NewSequence(elems...)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = replica.Clone(src)
	}
}

func BenchmarkClone_CycleDetection(b *testing.B) {
	c := replica.NewCloner(replica.WithCycleDetection())
	src := replicatest.NestedObject()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Clone(ctx, src)
	}
}

func BenchmarkFingerprint(b *testing.B) {
	src := replicatest.NestedObject()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = replica.Fingerprint(src)
	}
}
