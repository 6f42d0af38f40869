package pipeline

// Composite chains two stages into one stage of the same protocol: it
// accepts A's input type and emits B's output type. Composites nest
// freely, since a Composite is itself a Stage, so an arbitrary chain of
// stages reduces to a single stage via repeated Connect/ConnectWithCost.
type Composite[In, Mid, Out any] struct {
	a Stage[In, Mid]
	b Stage[Mid, Out]

	cost CostFunc

	held         *Mid
	heldCooldown int64
}

// Connect chains a then b with no per-item cost: a transferred item
// becomes visible to b on the same tick it leaves a (subject to the usual
// downstream-first tick ordering).
func Connect[In, Mid, Out any](a Stage[In, Mid], b Stage[Mid, Out]) *Composite[In, Mid, Out] {
	return ConnectWithCost(a, b, nil)
}

// ConnectWithCost chains a then b, consulting cost at the moment an item
// is ready to transfer (with a's queued-output info and b's queued-input
// info) and holding the item inside the composite for that many
// additional ticks before it becomes visible to b. This reproduces "B
// reports !CanAcceptInput and produces no output until the counter
// decrements to zero" without requiring b itself to carry a countdown: the
// gate lives in the composite, which is the only place that knows the
// cost function exists.
func ConnectWithCost[In, Mid, Out any](a Stage[In, Mid], b Stage[Mid, Out], cost CostFunc) *Composite[In, Mid, Out] {
	return &Composite[In, Mid, Out]{a: a, b: b, cost: cost}
}

func (c *Composite[In, Mid, Out]) CanAcceptInput() bool { return c.a.CanAcceptInput() }

func (c *Composite[In, Mid, Out]) HasOutput() bool { return c.b.HasOutput() }

func (c *Composite[In, Mid, Out]) PushInput(in In) { c.a.PushInput(in) }

func (c *Composite[In, Mid, Out]) PopOutput() Out { return c.b.PopOutput() }

func (c *Composite[In, Mid, Out]) PeekInputInfo() any { return c.a.PeekInputInfo() }

func (c *Composite[In, Mid, Out]) PeekOutputInfo() any { return c.b.PeekOutputInfo() }

// Tick enforces downstream-first back-pressure within one simulated
// cycle: b ticks, then a held or freshly-available item is transferred
// into b if b can accept it, then a ticks. Each hop adds its own
// hand-off cycle on top of the stages' intrinsic latency.
func (c *Composite[In, Mid, Out]) Tick() {
	c.b.Tick()

	if c.heldCooldown > 0 {
		c.heldCooldown--
	}
	if c.heldCooldown == 0 && c.held != nil && c.b.CanAcceptInput() {
		c.b.PushInput(*c.held)
		c.held = nil
	}

	if c.held == nil && c.b.CanAcceptInput() && c.a.HasOutput() {
		upstreamInfo := c.a.PeekOutputInfo()
		downstreamInfo := c.b.PeekInputInfo()
		item := c.a.PopOutput()
		var cycles int64
		if c.cost != nil {
			cycles = c.cost(upstreamInfo, downstreamInfo)
		}
		if cycles > 0 {
			c.held = &item
			c.heldCooldown = cycles
		} else {
			c.b.PushInput(item)
		}
	}

	c.a.Tick()
}
