package calc

import (
	"errors"
	"testing"
)

func testDef(id string) Definition {
	return Definition{
		ID:    id,
		Label: "Test Calculator",
		Inputs: []Field{
			{Key: "weight_kg", Required: true, Unit: "kg"},
		},
		Run: func(in Inputs) *Result {
			w, ok := in.Number("weight_kg")
			if !ok {
				return nil
			}
			return &Result{ID: id, Value: Ptr(w)}
		},
	}
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(testDef("demo")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	def, err := r.Lookup("demo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if def.ID != "demo" {
		t.Errorf("expected id 'demo', got %q", def.ID)
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 registered calculator, got %d", r.Len())
	}
}

func TestRegistry_DuplicateID(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(testDef("demo")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := r.Register(testDef("demo"))
	if err == nil {
		t.Fatal("expected error for duplicate registration")
	}
	if !errors.Is(err, ErrDuplicateRegistration) {
		t.Errorf("expected ErrDuplicateRegistration, got %v", err)
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Lookup("nope")
	if err == nil {
		t.Fatal("expected error for unknown calculator")
	}
	if !errors.Is(err, ErrUnknownCalculator) {
		t.Errorf("expected ErrUnknownCalculator, got %v", err)
	}
}

func TestRegistry_RejectsInvalidDefinitions(t *testing.T) {
	r := NewRegistry()

	if err := r.Register(Definition{Label: "no id", Run: func(Inputs) *Result { return nil }}); err == nil {
		t.Error("expected error for missing id")
	}
	if err := r.Register(Definition{ID: "norun", Label: "no run"}); err == nil {
		t.Error("expected error for missing run function")
	}
}

func TestRegistry_IDsSorted(t *testing.T) {
	r := NewRegistry()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(testDef(id)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	ids := r.IDs()
	want := []string{"alpha", "mid", "zeta"}
	if len(ids) != len(want) {
		t.Fatalf("expected %d ids, got %d", len(want), len(ids))
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestInputs_Number(t *testing.T) {
	in := Inputs{
		"f":    42.5,
		"i":    7,
		"b":    true,
		"s":    " 3.14 ",
		"bad":  "not a number",
		"inf":  "inf",
	}

	if v, ok := in.Number("f"); !ok || v != 42.5 {
		t.Errorf("Number(f) = %v, %v", v, ok)
	}
	if v, ok := in.Number("i"); !ok || v != 7 {
		t.Errorf("Number(i) = %v, %v", v, ok)
	}
	if v, ok := in.Number("b"); !ok || v != 1 {
		t.Errorf("Number(b) = %v, %v", v, ok)
	}
	if v, ok := in.Number("s"); !ok || v != 3.14 {
		t.Errorf("Number(s) = %v, %v", v, ok)
	}
	if _, ok := in.Number("bad"); ok {
		t.Error("expected Number(bad) to fail")
	}
	if _, ok := in.Number("absent"); ok {
		t.Error("expected Number(absent) to fail")
	}
}

func TestInputs_Bool(t *testing.T) {
	in := Inputs{
		"t":   true,
		"f":   false,
		"n":   1.0,
		"z":   0.0,
		"yes": "yes",
		"pos": "Positive",
		"no":  "no",
	}

	for _, key := range []string{"t", "n", "yes", "pos"} {
		if !in.Bool(key) {
			t.Errorf("expected Bool(%q) true", key)
		}
	}
	for _, key := range []string{"f", "z", "no", "absent"} {
		if in.Bool(key) {
			t.Errorf("expected Bool(%q) false", key)
		}
	}
}

func TestInputs_String(t *testing.T) {
	in := Inputs{"sex": " Male ", "n": 4.0}

	if s, ok := in.String("sex"); !ok || s != "male" {
		t.Errorf("String(sex) = %q, %v", s, ok)
	}
	if _, ok := in.String("n"); ok {
		t.Error("expected String(n) to fail for numeric value")
	}
	if _, ok := in.String("absent"); ok {
		t.Error("expected String(absent) to fail")
	}
}

func TestResult_Rounded(t *testing.T) {
	r := &Result{Value: Ptr(3.14159), Precision: 2}
	if got := r.Rounded(); got != 3.14 {
		t.Errorf("Rounded() = %v, want 3.14", got)
	}

	var nilResult *Result
	if got := nilResult.Rounded(); got == got { // NaN != NaN
		t.Errorf("expected NaN for nil result, got %v", got)
	}
}
