package logging

import "testing"

func TestNewProgressSamplerDefaultsBucket(t *testing.T) {
	for _, size := range []float64{0, -3} {
		if s := NewProgressSampler(size); s.bucketSize != 5 {
			t.Fatalf("NewProgressSampler(%v).bucketSize = %v, want 5", size, s.bucketSize)
		}
	}
	if s := NewProgressSampler(10); s.bucketSize != 10 || s.lastBucket != -1 {
		t.Fatalf("unexpected sampler %+v", s)
	}
}

func TestProgressSamplerNil(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "extract") {
		t.Fatal("nil sampler should always emit")
	}
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	steps := []struct {
		percent float64
		want    bool
	}{
		{0, true},
		{3, false},
		{9, false},
		{10, true},
		{15, false},
		{42, true},
		{41, false},
		{100, true},
		{100, false},
		{150, false},
	}
	for _, step := range steps {
		if got := s.ShouldLog(step.percent, "extract"); got != step.want {
			t.Fatalf("ShouldLog(%v) = %v, want %v", step.percent, got, step.want)
		}
	}
}

func TestProgressSamplerPhaseChangeResetsBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	s.ShouldLog(80, "extract")
	if !s.ShouldLog(-1, "verify") {
		t.Fatal("phase change should emit")
	}
	if !s.ShouldLog(5, "verify") {
		t.Fatal("bucket state should reset on phase change")
	}
	if s.ShouldLog(-1, "verify") {
		t.Fatal("unknown percent in the same phase should not emit")
	}
}
