package carousel

import "testing"

func TestDescribeBuckets(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		name string
		d, n int
		want Visual
	}{
		{
			name: "focused",
			d:    0, n: 5,
			want: Visual{Distance: 0, TranslateX: 0, Scale: 1, Opacity: 1, RotateY: 0, Blur: 0, ZIndex: 40, Interactable: true, Transition: TransitionSlide},
		},
		{
			name: "right neighbor",
			d:    1, n: 5,
			want: Visual{Distance: 1, TranslateX: 280, Scale: 0.85, Opacity: 0.6, RotateY: -12, Blur: 1, ZIndex: 30, Transition: TransitionSlide},
		},
		{
			name: "left neighbor",
			d:    -1, n: 5,
			want: Visual{Distance: -1, TranslateX: -280, Scale: 0.85, Opacity: 0.6, RotateY: 12, Blur: 1, ZIndex: 30, Transition: TransitionSlide},
		},
		{
			name: "second right",
			d:    2, n: 5,
			want: Visual{Distance: 2, TranslateX: 560, Scale: 0.7, Opacity: 0.2, RotateY: -20, Blur: 4, ZIndex: 20, Transition: TransitionSlide},
		},
		{
			name: "second left",
			d:    -2, n: 7,
			want: Visual{Distance: -2, TranslateX: -560, Scale: 0.7, Opacity: 0.2, RotateY: 20, Blur: 4, ZIndex: 20, Transition: TransitionSlide},
		},
		{
			name: "far",
			d:    -3, n: 9,
			want: Visual{Distance: -3, TranslateX: -840, Scale: 0.5, Opacity: 0, RotateY: 0, Blur: 0, ZIndex: 10, Transition: TransitionSlide},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Describe(tt.d, tt.n); got != tt.want {
				t.Errorf("Describe(%d, %d) =\n  %+v\nwant\n  %+v", tt.d, tt.n, got, tt.want)
			}
		})
	}
}

func TestDescribeOnlyFocusInteractable(t *testing.T) {
	p := DefaultPolicy()
	for n := 1; n <= 8; n++ {
		for focus := 0; focus < n; focus++ {
			for i, v := range p.DescribeAll(focus, n) {
				if v.Interactable != (i == focus) {
					t.Errorf("n=%d focus=%d card=%d: Interactable = %v", n, focus, i, v.Interactable)
				}
			}
		}
	}
}

func TestCrossing(t *testing.T) {
	tests := []struct {
		off, n int
		want   bool
	}{
		{3, 6, true},
		{2, 6, false},
		{4, 6, false},
		{1, 2, true},
		{2, 5, false},
		{3, 5, false},
		{0, 1, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		if got := Crossing(tt.off, tt.n); got != tt.want {
			t.Errorf("Crossing(%d, %d) = %v, want %v", tt.off, tt.n, got, tt.want)
		}
	}
}

func TestCrossingSuppressionFades(t *testing.T) {
	p := DefaultPolicy()

	// A card at +3 before a transition and -3 after, on a ring of six.
	before := p.Describe(3, 6)
	after := p.Describe(-3, 6)
	for _, v := range []Visual{before, after} {
		if v.Transition != TransitionFade {
			t.Errorf("Describe(%d, 6).Transition = %q, want fade", v.Distance, v.Transition)
		}
		if v.Opacity != 0 {
			t.Errorf("Describe(%d, 6).Opacity = %v, want 0", v.Distance, v.Opacity)
		}
	}
}

func TestCrossingCardFlipsSidesAsFade(t *testing.T) {
	p := DefaultPolicy()
	const n = 6

	// Card 4 is at -2 with focus 0. After advancing to focus 1 it is the
	// opposite card and must fade rather than slide across the ring.
	if got := p.DescribeCard(4, 0, n); got.Transition != TransitionSlide || got.Distance != -2 {
		t.Fatalf("before: %+v", got)
	}
	got := p.DescribeCard(4, 1, n)
	if got.Distance != 3 || got.Transition != TransitionFade {
		t.Errorf("after: distance %d transition %q, want 3 fade", got.Distance, got.Transition)
	}
}

func TestOddRingsNeverCross(t *testing.T) {
	p := DefaultPolicy()
	for _, n := range []int{1, 3, 5, 7, 9} {
		for i, v := range p.DescribeAll(0, n) {
			if v.Transition == TransitionFade {
				t.Errorf("n=%d card=%d: unexpected fade", n, i)
			}
		}
	}
}

func TestDescribeEmptyRing(t *testing.T) {
	p := DefaultPolicy()
	got := p.Describe(2, 0)
	if got.Distance != 0 || got.TranslateX != 0 || !got.Interactable {
		t.Errorf("Describe(2, 0) = %+v, want neutral visual", got)
	}
	if all := p.DescribeAll(0, 0); all != nil {
		t.Errorf("DescribeAll(0, 0) = %v, want nil", all)
	}
}

func TestZeroPolicyUsesDefaults(t *testing.T) {
	var zero Policy
	def := DefaultPolicy()
	for d := -3; d <= 3; d++ {
		if got, want := zero.Describe(d, 7), def.Describe(d, 7); got != want {
			t.Errorf("zero.Describe(%d) = %+v, want %+v", d, got, want)
		}
	}
}

func TestCustomPolicy(t *testing.T) {
	p := Policy{
		Spacing: 100,
		Buckets: []Bucket{
			{Scale: 1, Opacity: 1, ZIndex: 2},
			{Scale: 0.5, Opacity: 0.5, Rotate: 5, ZIndex: 1},
		},
	}
	v := p.Describe(-3, 9)
	if v.TranslateX != -300 || v.Scale != 0.5 || v.RotateY != 5 || v.ZIndex != 1 {
		t.Errorf("Describe(-3, 9) = %+v", v)
	}
}

func TestDefaultBucketsIsCopy(t *testing.T) {
	b := DefaultBuckets()
	b[0].Scale = 42
	if DefaultPolicy().Describe(0, 3).Scale != 1 {
		t.Error("mutating DefaultBuckets() leaked into the default table")
	}
}

func TestDescribeIsPure(t *testing.T) {
	p := DefaultPolicy()
	first := p.DescribeAll(2, 5)
	_ = p.DescribeAll(0, 5)
	again := p.DescribeAll(2, 5)
	for i := range first {
		if first[i] != again[i] {
			t.Errorf("card %d: %+v then %+v", i, first[i], again[i])
		}
	}
}
