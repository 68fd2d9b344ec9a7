package carousel

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		delta     float64
		threshold float64
		want      Intent
	}{
		{"leftward past threshold", -60, 50, IntentAdvance},
		{"short rightward", 20, 50, IntentNone},
		{"rightward past threshold", 55, 50, IntentRetreat},
		{"exactly threshold", 50, 50, IntentNone},
		{"exactly negative threshold", -50, 50, IntentNone},
		{"no movement", 0, 50, IntentNone},
		{"default threshold", -51, 0, IntentAdvance},
		{"custom threshold", 15, 10, IntentRetreat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.delta, tt.threshold); got != tt.want {
				t.Errorf("Classify(%v, %v) = %v, want %v", tt.delta, tt.threshold, got, tt.want)
			}
		})
	}
}

func TestRecognizerSession(t *testing.T) {
	r := NewRecognizer(0)
	if r.Threshold() != DefaultThreshold {
		t.Fatalf("Threshold() = %v, want %v", r.Threshold(), DefaultThreshold)
	}
	if r.Active() {
		t.Fatal("new recognizer should be inactive")
	}

	r.Start(SourcePointer, 300)
	if s := r.Session(); !s.Active || s.OriginX != 300 || s.Source != SourcePointer {
		t.Fatalf("Session() = %+v after Start", s)
	}

	r.Move(250)
	r.Move(10)
	if got := r.End(240); got != IntentAdvance {
		t.Errorf("End(240) = %v, want advance", got)
	}
	if r.Active() {
		t.Error("session should be closed after End")
	}
}

func TestRecognizerEndWithoutStart(t *testing.T) {
	r := NewRecognizer(50)
	if got := r.End(500); got != IntentNone {
		t.Errorf("End without Start = %v, want none", got)
	}
}

func TestRecognizerCancel(t *testing.T) {
	r := NewRecognizer(50)
	r.Start(SourcePointer, 0)
	r.Cancel()
	if r.Active() {
		t.Fatal("session should be closed after Cancel")
	}
	if got := r.End(200); got != IntentNone {
		t.Errorf("End after Cancel = %v, want none", got)
	}

	// Cancel with nothing open is harmless.
	r.Cancel()
}

func TestRecognizerSourcesAgree(t *testing.T) {
	for _, src := range []InputSource{SourcePointer, SourceTouch} {
		r := NewRecognizer(50)
		if got := r.Recognize(src, 100, 40); got != IntentAdvance {
			t.Errorf("%v: Recognize(100, 40) = %v, want advance", src, got)
		}
		if got := r.Recognize(src, 100, 120); got != IntentNone {
			t.Errorf("%v: Recognize(100, 120) = %v, want none", src, got)
		}
		if got := r.Recognize(src, 100, 155); got != IntentRetreat {
			t.Errorf("%v: Recognize(100, 155) = %v, want retreat", src, got)
		}
	}
}

func TestRecognizerRestartReplacesSession(t *testing.T) {
	r := NewRecognizer(50)
	r.Start(SourceTouch, 0)
	r.Start(SourcePointer, 100)
	if got := r.End(90); got != IntentNone {
		t.Errorf("End(90) = %v, want none (origin should be 100)", got)
	}
}

func TestZeroRecognizer(t *testing.T) {
	var r Recognizer
	r.Start(SourcePointer, 0)
	if got := r.End(-51); got != IntentAdvance {
		t.Errorf("zero Recognizer End(-51) = %v, want advance", got)
	}
}

func TestParseInputSource(t *testing.T) {
	tests := []struct {
		in      string
		want    InputSource
		wantErr bool
	}{
		{"", SourcePointer, false},
		{"pointer", SourcePointer, false},
		{"mouse", SourcePointer, false},
		{"touch", SourceTouch, false},
		{"pen", SourcePointer, true},
	}
	for _, tt := range tests {
		got, err := ParseInputSource(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseInputSource(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseInputSource(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIntentString(t *testing.T) {
	for in, want := range map[Intent]string{IntentNone: "none", IntentAdvance: "advance", IntentRetreat: "retreat"} {
		if got := in.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", in, got, want)
		}
	}
}
