package main

import "testing"

func TestParseCompactBasic(t *testing.T) {
	c := ParseCompact("201;")

	if len(c.Gates) != 1 {
		t.Fatalf("expected 1 gate, got %d", len(c.Gates))
	}
	g := c.Gates[0]
	if g.Kind != KindECA57 || g.Target != 2 || g.Controls[0] != 0 || g.Controls[1] != 1 {
		t.Errorf("gate = %+v, want ECA57 target=2 ctrl1=0 ctrl2=1", g)
	}
	if c.Width != 3 {
		t.Errorf("width = %d, want 3", c.Width)
	}
}

func TestParseCompactSkipsShortTokens(t *testing.T) {
	// Short tokens are skipped silently and do not consume a step index.
	c := ParseCompact("01;;201;x;102;")

	if len(c.Gates) != 2 {
		t.Fatalf("expected 2 gates, got %d", len(c.Gates))
	}
	if c.Gates[0].Step != 0 || c.Gates[1].Step != 1 {
		t.Errorf("steps = %d, %d, want 0, 1", c.Gates[0].Step, c.Gates[1].Step)
	}
	if c.Gates[1].Target != 1 {
		t.Errorf("gate 1 target = %d, want 1", c.Gates[1].Target)
	}
}

func TestParseCompactEmpty(t *testing.T) {
	for _, text := range []string{"", ";", ";;;", "ab"} {
		c := ParseCompact(text)
		if len(c.Gates) != 0 || c.Width != 0 {
			t.Errorf("ParseCompact(%q): got %d gates width %d, want empty", text, len(c.Gates), c.Width)
		}
	}
}

func TestParseCompactLongTokenUsesFirstThree(t *testing.T) {
	c := ParseCompact("201extra;")
	if len(c.Gates) != 1 {
		t.Fatalf("expected 1 gate, got %d", len(c.Gates))
	}
	if g := c.Gates[0]; g.Target != 2 || g.Controls[0] != 0 || g.Controls[1] != 1 {
		t.Errorf("gate = %+v, want target=2 ctrl1=0 ctrl2=1", g)
	}
}

func TestParseCompactUnknownCharDecodesAsZero(t *testing.T) {
	c := ParseCompact("2~1;")
	if len(c.Gates) != 1 {
		t.Fatalf("expected 1 gate, got %d", len(c.Gates))
	}
	if c.Gates[0].Controls[0] != 0 {
		t.Errorf("ctrl1 = %d, want 0 (lenient decode)", c.Gates[0].Controls[0])
	}
}

func TestToCompact(t *testing.T) {
	c := &Circuit{}
	c.AddGate(KindECA57, 1, 1, 0, 2)
	c.AddGate(KindECA57, 2, 0, 0, 1)

	// Sorted by step, ';' after every gate including the last.
	if got := c.ToCompact(); got != "201;102;" {
		t.Errorf("ToCompact() = %q, want %q", got, "201;102;")
	}
}

func TestCompactRoundTrip(t *testing.T) {
	c := &Circuit{}
	c.AddGate(KindECA57, 2, 0, 0, 1)
	c.AddGate(KindECA57, 0, 1, 1, 2)
	c.AddGate(KindECA57, 40, 2, 62, 82) // uppercase + punctuation range

	c2 := ParseCompact(c.ToCompact())
	if len(c2.Gates) != len(c.Gates) {
		t.Fatalf("round-trip: expected %d gates, got %d", len(c.Gates), len(c2.Gates))
	}
	for i, g := range c.Gates {
		g2 := c2.Gates[i]
		if g2.Target != g.Target || g2.Controls[0] != g.Controls[0] || g2.Controls[1] != g.Controls[1] {
			t.Errorf("gate %d: got %+v, want %+v", i, g2, g)
		}
		if g2.Step != i {
			t.Errorf("gate %d: step = %d, want %d", i, g2.Step, i)
		}
	}
}

func TestToCompactOmitsNonECA57(t *testing.T) {
	c := &Circuit{}
	c.AddGate(KindX, 0, 0)
	c.AddGate(KindECA57, 2, 1, 0, 1)

	if got := c.ToCompact(); got != "201;" {
		t.Errorf("ToCompact() = %q, want %q", got, "201;")
	}
}

func TestParseCompactStrict(t *testing.T) {
	c, err := ParseCompactStrict("201;102;")
	if err != nil {
		t.Fatalf("ParseCompactStrict: %v", err)
	}
	if len(c.Gates) != 2 || c.Width != 3 {
		t.Errorf("got %d gates width %d, want 2 gates width 3", len(c.Gates), c.Width)
	}

	if _, err := ParseCompactStrict("20;"); err == nil {
		t.Error("short token: expected error")
	}
	if _, err := ParseCompactStrict("2011;"); err == nil {
		t.Error("long token: expected error")
	}
	if _, err := ParseCompactStrict("2~1;"); err == nil {
		t.Error("out-of-alphabet character: expected error")
	}
}

func TestParseCompactDetectedWidth(t *testing.T) {
	// Width is 1 + the highest wire referenced anywhere, target or control.
	c := ParseCompact("05a;")
	if c.Width != 11 {
		t.Errorf("width = %d, want 11", c.Width)
	}
}
