package spritepack

import (
	"errors"
	"testing"
)

func TestSpriteValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		sprite  Sprite
		wantErr error
	}{
		{name: "ok", sprite: makeSprite(3, 2, opaquePixel)},
		{name: "zero-area", sprite: Sprite{}},
		{name: "degenerate-width", sprite: Sprite{Width: 0, Height: 5}},
		{name: "negative-width", sprite: Sprite{Width: -2, Height: 2}},
		{name: "negative-height", sprite: Sprite{Width: 2, Height: -2}},
		{name: "oversized-buffer", sprite: Sprite{Width: 1, Height: 1, Pixels: make([]Pixel, 9)}},
		{name: "short-buffer", sprite: Sprite{Width: 2, Height: 2, Pixels: make([]Pixel, 3)}, wantErr: ErrShortPixelData},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if err := tc.sprite.validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCollectionRoot(t *testing.T) {
	t.Parallel()

	var c Collection
	c[ZoomMin] = makeSprite(4, 2, opaquePixel)

	root := c.Root()
	if root != &c[ZoomMin] {
		t.Fatalf("Root() is not the minimum zoom entry")
	}
	if root.Width != 4 || root.Height != 2 {
		t.Fatalf("root geometry %dx%d, want 4x2", root.Width, root.Height)
	}
}
