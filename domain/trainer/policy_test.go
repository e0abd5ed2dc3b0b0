package trainer

import (
	"math"
	"math/rand"
	"testing"

	"fitcoach/domain/quiz"
)

func TestPoolConstruction(t *testing.T) {
	policy := NewAssignmentPolicy(rand.New(rand.NewSource(1)))

	t.Run("lose_weight weights Weight Loss specialists 5x", func(t *testing.T) {
		pool := policy.Pool(quiz.GoalLoseWeight)
		// Athul (5) + Saieel (5) + Athithiya (1)
		if len(pool) != 11 {
			t.Fatalf("pool size = %d, want 11", len(pool))
		}
		counts := map[string]int{}
		for _, tr := range pool {
			counts[tr.Name]++
		}
		if counts["Athul"] != 5 || counts["Saieel"] != 5 || counts["Athithiya"] != 1 {
			t.Errorf("pool counts = %v, want Athul:5 Saieel:5 Athithiya:1", counts)
		}
	})

	t.Run("get_shredded favors Lean Body", func(t *testing.T) {
		pool := policy.Pool(quiz.GoalGetShredded)
		counts := map[string]int{}
		for _, tr := range pool {
			counts[tr.Name]++
		}
		if counts["Saieel"] != 5 || counts["Athul"] != 1 || counts["Athithiya"] != 1 {
			t.Errorf("pool counts = %v, want Saieel:5 Athul:1 Athithiya:1", counts)
		}
	})

	t.Run("unknown goal is uniform", func(t *testing.T) {
		pool := policy.Pool(quiz.Goal("handstand_mastery"))
		if len(pool) != 3 {
			t.Fatalf("pool size = %d, want 3", len(pool))
		}
	})
}

// TestAssignFrequency draws 10k times for lose_weight: under the 5:5:1 pool
// the specialists land near 10/11 combined, the non-specialist near 1/11.
func TestAssignFrequency(t *testing.T) {
	policy := NewAssignmentPolicy(rand.New(rand.NewSource(42)))

	const draws = 10000
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		counts[policy.Assign(quiz.GoalLoseWeight).Name]++
	}

	athithiya := float64(counts["Athithiya"]) / draws
	specialists := float64(counts["Athul"]+counts["Saieel"]) / draws

	// Expected 1/11 and 10/11 under the 5:5:1 pool; 2% absolute tolerance.
	if math.Abs(athithiya-1.0/11.0) > 0.02 {
		t.Errorf("Athithiya frequency = %.4f, want ~%.4f", athithiya, 1.0/11.0)
	}
	if math.Abs(specialists-10.0/11.0) > 0.02 {
		t.Errorf("specialist frequency = %.4f, want ~%.4f", specialists, 10.0/11.0)
	}
}

// TestAssignAlwaysRosterMember verifies the draw never escapes the fixed set.
func TestAssignAlwaysRosterMember(t *testing.T) {
	policy := NewAssignmentPolicy(rand.New(rand.NewSource(7)))
	names := map[string]bool{}
	for _, tr := range Roster {
		names[tr.Name] = true
	}

	goals := []quiz.Goal{
		quiz.GoalLoseWeight, quiz.GoalGainMuscle, quiz.GoalGetShredded, "",
	}
	for _, g := range goals {
		for i := 0; i < 100; i++ {
			tr := policy.Assign(g)
			if tr.Name == "" || !names[tr.Name] {
				t.Fatalf("Assign(%q) returned non-roster trainer %q", g, tr.Name)
			}
		}
	}
}

// TestAssignDeterministicWithSeed verifies identical seeds reproduce
// identical draw sequences.
func TestAssignDeterministicWithSeed(t *testing.T) {
	a := NewAssignmentPolicy(rand.New(rand.NewSource(99)))
	b := NewAssignmentPolicy(rand.New(rand.NewSource(99)))

	for i := 0; i < 50; i++ {
		if got, want := a.Assign(quiz.GoalLoseWeight).Name, b.Assign(quiz.GoalLoseWeight).Name; got != want {
			t.Fatalf("draw %d diverged: %s vs %s", i, got, want)
		}
	}
}
