package spritepack

import "testing"

func TestAdjustBrightnessTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		colour     RGB
		brightness uint8
		want       RGB
	}{
		{name: "neutral-is-identity", colour: RGB{R: 100, G: 50, B: 200}, brightness: 128, want: RGB{R: 100, G: 50, B: 200}},
		{name: "half", colour: RGB{R: 100, G: 50, B: 200}, brightness: 64, want: RGB{R: 50, G: 25, B: 100}},
		{name: "zero-darkens-to-black", colour: RGB{R: 100, G: 50, B: 200}, brightness: 0, want: RGB{}},
		{name: "max-within-range", colour: RGB{R: 10, G: 20, B: 30}, brightness: 255, want: RGB{R: 19, G: 39, B: 59}},
		{name: "overbright-spills-to-other-channels", colour: RGB{R: 200, G: 100, B: 0}, brightness: 255, want: RGB{R: 255, G: 214, B: 70}},
		{name: "white-stays-white", colour: RGB{R: 255, G: 255, B: 255}, brightness: 255, want: RGB{R: 255, G: 255, B: 255}},
		{name: "black-stays-black", colour: RGB{}, brightness: 255, want: RGB{}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := adjustBrightness(tc.colour, tc.brightness)
			if got != tc.want {
				t.Fatalf("adjustBrightness(%v, %d) = %v, want %v", tc.colour, tc.brightness, got, tc.want)
			}
		})
	}
}

func TestAdjustBrightnessNeverExceedsRange(t *testing.T) {
	t.Parallel()

	// Exhaust one channel against every brightness; the redistribution
	// arithmetic must stay clamped.
	for bri := 0; bri < 256; bri++ {
		got := adjustBrightness(RGB{R: 255, G: 128, B: 1}, uint8(bri)) // #nosec G115 -- loop bound.
		if bri >= 128 && got.R != 255 {
			t.Fatalf("brightness %d: saturated channel fell to %d", bri, got.R)
		}
	}
}

func TestRGBMax(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{name: "blue", r: 1, g: 2, b: 3, want: 3},
		{name: "red", r: 9, g: 5, b: 1, want: 9},
		{name: "green", r: 5, g: 9, b: 7, want: 9},
		{name: "black", r: 0, g: 0, b: 0, want: 0},
		{name: "tie", r: 9, g: 9, b: 9, want: 9},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := rgbMax(tc.r, tc.g, tc.b); got != tc.want {
				t.Fatalf("rgbMax(%d,%d,%d) = %d, want %d", tc.r, tc.g, tc.b, got, tc.want)
			}
		})
	}
}
