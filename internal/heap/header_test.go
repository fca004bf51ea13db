package heap

import "testing"

func TestHeaderColorRoundTrip(t *testing.T) {
	var h Header
	h.initDiscriminator(5)

	for _, c := range []Color{White, Gray, Black, Dead} {
		h.SetColor(c)

		if got := h.Color(); got != c {
			t.Errorf("Color() = %v, want %v", got, c)
		}

		if got := h.TypeID(); got != 5 {
			t.Errorf("TypeID() = %v, want 5 (color change must not disturb it)", got)
		}
	}
}

func TestHeaderLiveness(t *testing.T) {
	var h Header
	if h.IsLive() {
		t.Error("zero-value header should not be live")
	}

	h.initDiscriminator(1)
	if !h.IsLive() {
		t.Error("header with a nonzero discriminator should be live")
	}

	h.Zap()
	if h.IsLive() {
		t.Error("zapped header should not be live")
	}

	if h.TypeID() != 0 {
		t.Error("zapped header's TypeID should be 0")
	}
}

func TestColorString(t *testing.T) {
	cases := map[Color]string{
		White: "White",
		Gray:  "Gray",
		Black: "Black",
		Dead:  "Dead",
	}
	for c, want := range cases {
		if got := c.String(); got != want {
			t.Errorf("Color(%d).String() = %q, want %q", c, got, want)
		}
	}
}
