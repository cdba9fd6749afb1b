package filter

import (
	"context"
	"testing"
)

func BenchmarkCompileFilter(b *testing.B) {
	expressions := []struct {
		name string
		expr string
	}{
		{"simple", `hasPosition("C")`},
		{"complex", `hasPosition("C") and PercentOwned > 50 and stat("1") >= 20`},
	}

	compiler := NewExprCompiler()
	for _, tc := range expressions {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := compiler.Compile(tc.expr); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkCompileFilterWithCache(b *testing.B) {
	compiler := NewExprCompiler(WithCache(100))
	expression := `hasPosition("C") and PercentOwned > 50`

	b.ReportAllocs()
	for b.Loop() {
		if _, err := compiler.Compile(expression); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvaluateConcurrent(b *testing.B) {
	players := generateTestPlayers(10000)
	filter, err := NewExprCompiler().Compile(`hasPosition("C") and stat("1") > 20`)
	if err != nil {
		b.Fatal(err)
	}
	ctx := context.Background()

	evaluators := []struct {
		name      string
		evaluator *ConcurrentEvaluator
	}{
		{"workers-1", NewConcurrentEvaluator(WithWorkers(1))},
		{"workers-4", NewConcurrentEvaluator(WithWorkers(4))},
		{"workers-default", NewConcurrentEvaluator()},
	}

	for _, tc := range evaluators {
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				if _, err := tc.evaluator.Evaluate(ctx, filter, players); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkHasPosition(b *testing.B) {
	hasPosition := createHasPositionFunc([]string{"C", "LW", "Util"})
	b.ReportAllocs()
	for b.Loop() {
		_ = hasPosition("util")
	}
}
