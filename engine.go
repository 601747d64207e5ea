package driftwood

// inputFrame is one tick's worth of raw input deltas, handed from the
// Scroller to its engine.
type inputFrame struct {
	wheelY float64
	touchY float64
	dt     float64
}

// scrollEngine is the capability boundary between the Scroller and its
// position strategy. The smooth engine owns a virtual offset driven by input
// deltas; the native engine mirrors a host-owned offset. Both feed the same
// Sample pipeline, so consumers cannot distinguish modes.
type scrollEngine interface {
	// step advances one tick from raw input.
	step(frame inputFrame)
	// write forces the offset, clamped; used by ScrollTo and settlement.
	write(offset float64)
	// pos returns the current offset.
	pos() float64
	// setLimit updates the maximum offset, clamping the position into range.
	setLimit(limit float64)
}

// newScrollEngine selects the engine implementation. Smooth requires a ready
// input source; anything else degrades to the native fallback with a
// warning, per the graceful-degradation contract.
func newScrollEngine(opts Options, limit float64) (scrollEngine, bool) {
	if opts.Input != nil {
		if err := opts.Input.Ready(); err != nil {
			warnf("input source unavailable (%v); using native scroll fallback", err)
		} else {
			return &smoothEngine{
				limit:    limit,
				lerp:     opts.Lerp,
				wheelMul: opts.WheelMultiplier,
				touchMul: opts.TouchMultiplier,
			}, true
		}
	}
	eng := &nativeEngine{binding: opts.Fallback, limit: limit}
	if eng.binding.Position != nil {
		eng.position = clamp(eng.binding.Position(), 0, limit)
	}
	return eng, false
}

// scrollSettleEpsilon is the remaining distance below which the smooth
// engine snaps onto its target, so velocity reaches an exact zero instead of
// decaying forever.
const scrollSettleEpsilon = 0.001

// smoothEngine integrates wheel and touch deltas into a clamped target and
// eases the virtual position toward it each tick.
type smoothEngine struct {
	position float64
	target   float64
	limit    float64
	lerp     float64
	wheelMul float64
	touchMul float64
}

func (e *smoothEngine) step(frame inputFrame) {
	// Wheel up and finger down both move content down, i.e. shrink the
	// offset; hence both deltas subtract.
	e.target = clamp(e.target-frame.wheelY*e.wheelMul-frame.touchY*e.touchMul, 0, e.limit)

	alpha := clamp(e.lerp*frame.dt, 0, 1)
	e.position += (e.target - e.position) * alpha
	if diff := e.target - e.position; diff > -scrollSettleEpsilon && diff < scrollSettleEpsilon {
		e.position = e.target
	}
}

func (e *smoothEngine) write(offset float64) {
	e.position = clamp(offset, 0, e.limit)
	e.target = e.position
}

func (e *smoothEngine) pos() float64 {
	return e.position
}

func (e *smoothEngine) setLimit(limit float64) {
	e.limit = limit
	e.position = clamp(e.position, 0, limit)
	e.target = clamp(e.target, 0, limit)
}

// nativeEngine mirrors a host-owned scroll offset instead of integrating
// input. write seeks the host when a Seek binding exists; without one, a
// written offset lasts until the next step reads the host again.
type nativeEngine struct {
	binding  NativeBinding
	position float64
	limit    float64
}

func (e *nativeEngine) step(frame inputFrame) {
	if e.binding.Position != nil {
		e.position = clamp(e.binding.Position(), 0, e.limit)
	}
}

func (e *nativeEngine) write(offset float64) {
	e.position = clamp(offset, 0, e.limit)
	if e.binding.Seek != nil {
		e.binding.Seek(e.position)
	}
}

func (e *nativeEngine) pos() float64 {
	return e.position
}

func (e *nativeEngine) setLimit(limit float64) {
	e.limit = limit
	e.position = clamp(e.position, 0, limit)
}
