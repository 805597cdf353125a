package lcd

// Canvas binds a Surface to the Resources its attributes resolve against.
// It is cheap to create; keep one per surface per frame.
type Canvas struct {
	s     *Surface
	res   *Resources
	nextX int
}

// NewCanvas returns a canvas drawing onto s. A nil res behaves like
// NewResources().
func NewCanvas(s *Surface, res *Resources) *Canvas {
	if res == nil {
		res = NewResources()
	}
	return &Canvas{s: s, res: res}
}

func (c *Canvas) Surface() *Surface     { return c.s }
func (c *Canvas) Resources() *Resources { return c.res }

// NextX returns the x coordinate following the last glyph or text run drawn,
// so callers can chain runs.
func (c *Canvas) NextX() int { return c.nextX }

func (c *Canvas) color(flags Flags) Color { return c.res.Color(flags.ColorIndex()) }
