package diffengine

import "testing"

func opString(ops []Op) string {
	out := ""
	for _, op := range ops {
		switch op.Kind {
		case Equal:
			out += "="
		case Insert:
			out += "+"
		case Delete:
			out += "-"
		}
	}
	return out
}

func TestMyersDiffBasic(t *testing.T) {
	a := []string{"a", "b", "c"}
	b := []string{"a", "x", "c"}
	ops := myersDiff(a, b)
	if opString(ops) != "=-+=" && opString(ops) != "=+-=" {
		t.Fatalf("unexpected ops: %v (%s)", ops, opString(ops))
	}
}

func TestMyersDiffIdentical(t *testing.T) {
	a := []string{"a", "b"}
	ops := myersDiff(a, a)
	for _, op := range ops {
		if op.Kind != Equal {
			t.Fatalf("expected all-equal ops, got %v", ops)
		}
	}
}

func TestMyersDiffEmptyToNonEmpty(t *testing.T) {
	ops := myersDiff(nil, []string{"a", "b"})
	if len(ops) != 2 || ops[0].Kind != Insert || ops[1].Kind != Insert {
		t.Fatalf("unexpected ops: %v", ops)
	}
}

func TestMyersDiffNonEmptyToEmpty(t *testing.T) {
	ops := myersDiff([]string{"a", "b"}, nil)
	if len(ops) != 2 || ops[0].Kind != Delete || ops[1].Kind != Delete {
		t.Fatalf("unexpected ops: %v", ops)
	}
}

func TestMyersDiffBothEmpty(t *testing.T) {
	if ops := myersDiff(nil, nil); ops != nil {
		t.Fatalf("expected nil ops, got %v", ops)
	}
}
