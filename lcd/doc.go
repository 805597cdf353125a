// Package lcd is the pixel compositing core for the radio's color LCD.
//
// Everything draws onto a Surface: a fixed-size, exclusively owned grid of
// RGB565 samples. A Canvas binds a Surface to the rendering Resources (color
// table and glyph atlases) and carries the drawing operations:
//
//	Compositor  → Surface.BlendPixel (opacity 0..OpacityMax)
//	Rasterizer  → DrawHLine, DrawVLine, DrawFilledRect, InvertRect
//	Sector mask → EvalSlopes, DrawPie, DrawBitmapPie, DrawBitmapPatternPie
//	Text        → DrawSizedText over a control-coded byte string
//
// Drawing never fails: off-surface coordinates are clipped and degenerate
// geometry is a no-op, because the same surface is redrawn every refresh.
//
// Rendering is single-threaded. A Surface must not be drawn from more than
// one goroutine at a time.
package lcd
