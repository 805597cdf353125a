package lcd

// blend composites c over *p at the given opacity level. Channels are
// interpolated with integer truncation:
//
//	(bg*(OpacityMax-opacity) + fg*opacity) / OpacityMax
func blend(p *Color, opacity uint8, c Color) {
	switch {
	case opacity >= OpacityMax:
		*p = c
	case opacity == 0:
	default:
		bgWeight := int(OpacityMax - opacity)
		fgWeight := int(opacity)
		r, g, b := Split(c)
		bgR, bgG, bgB := Split(*p)
		*p = Join(
			(bgR*bgWeight+r*fgWeight)/OpacityMax,
			(bgG*bgWeight+g*fgWeight)/OpacityMax,
			(bgB*bgWeight+b*fgWeight)/OpacityMax,
		)
	}
}

// BlendPixel composites c over the pixel at (x, y). Off-surface coordinates
// are ignored.
func (s *Surface) BlendPixel(x, y int, opacity uint8, c Color) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return
	}
	blend(&s.pix[y*s.width+x], opacity, c)
}
