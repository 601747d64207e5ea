package driftwood

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tanema/gween/ease"
)

// Sheet is a set of trigger definitions loaded from JSON, so scroll behavior
// can live in data files next to the content it drives. A definition carries
// everything except the moving parts: bind each named channel to a concrete
// field with Bind, set an Element on the materialized config, then register
// it with NewTrigger.
//
//	sheet, err := driftwood.LoadSheet(data)
//	if err != nil { ... }
//	sheet.Bind("heroAlpha", &hero.Alpha).Bind("heroY", &hero.Y)
//	cfg, err := sheet.Trigger("hero")
//	if err != nil { ... }
//	driftwood.NewTrigger(scroller, hero, cfg)
//
// The JSON shape:
//
//	{
//	  "triggers": [
//	    {
//	      "id": "hero",
//	      "start": "top bottom",
//	      "end": "center center",
//	      "actions": "play none none reverse",
//	      "scrub": 0.4,
//	      "pin": true,
//	      "channels": [
//	        {"name": "heroAlpha", "from": 0, "to": 1},
//	        {"name": "heroY", "from": 40, "to": 0}
//	      ]
//	    }
//	  ]
//	}
//
// "start" and "end" accept either a number (absolute offset in pixels) or an
// anchor pair string understood by ParseBound. "scrub" accepts true or a
// smoothing time in seconds.
type Sheet struct {
	defs  []sheetTrigger
	binds map[string]*float64
}

// LoadSheet parses sheet JSON. Malformed definitions fail here; unbound
// channels are only reported when a definition is materialized.
func LoadSheet(data []byte) (*Sheet, error) {
	var doc jsonSheet
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("driftwood: failed to parse sheet JSON: %w", err)
	}
	if len(doc.Triggers) == 0 {
		return nil, fmt.Errorf("driftwood: sheet JSON has no triggers")
	}

	sh := &Sheet{binds: make(map[string]*float64)}
	seen := make(map[string]bool, len(doc.Triggers))
	for i, jt := range doc.Triggers {
		if jt.ID == "" {
			return nil, fmt.Errorf("driftwood: sheet trigger %d: missing id", i)
		}
		if seen[jt.ID] {
			return nil, fmt.Errorf("driftwood: sheet trigger %q: duplicate id", jt.ID)
		}
		seen[jt.ID] = true

		def, err := parseSheetTrigger(jt)
		if err != nil {
			return nil, err
		}
		sh.defs = append(sh.defs, def)
	}
	return sh, nil
}

// Bind wires a channel name to the field its values are written through.
// Binding the same name again replaces the previous target. Returns the
// sheet so bindings chain.
func (sh *Sheet) Bind(name string, target *float64) *Sheet {
	sh.binds[name] = target
	return sh
}

// IDs returns the declared trigger ids in definition order.
func (sh *Sheet) IDs() []string {
	ids := make([]string, len(sh.defs))
	for i := range sh.defs {
		ids[i] = sh.defs[i].id
	}
	return ids
}

// Trigger materializes the named definition. The returned config has no
// Element; set one before passing it to NewTrigger. Channels referencing a
// name with no binding are an error.
func (sh *Sheet) Trigger(id string) (TriggerConfig, error) {
	for i := range sh.defs {
		if sh.defs[i].id == id {
			return sh.materialize(&sh.defs[i])
		}
	}
	return TriggerConfig{}, fmt.Errorf("driftwood: sheet has no trigger %q", id)
}

// Triggers materializes every definition in declaration order.
func (sh *Sheet) Triggers() ([]TriggerConfig, error) {
	cfgs := make([]TriggerConfig, 0, len(sh.defs))
	for i := range sh.defs {
		cfg, err := sh.materialize(&sh.defs[i])
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}

func (sh *Sheet) materialize(def *sheetTrigger) (TriggerConfig, error) {
	cfg := TriggerConfig{
		ID:          def.id,
		Start:       def.start,
		End:         def.end,
		Actions:     def.actions,
		Scrub:       def.scrub,
		ScrubSmooth: def.smooth,
		Pin:         def.pin,
		Once:        def.once,
		Timeline:    append([]Keyframe(nil), def.timeline...),
	}
	for _, ch := range def.channels {
		target, ok := sh.binds[ch.name]
		if !ok {
			return TriggerConfig{}, fmt.Errorf("driftwood: sheet trigger %q: channel %q is not bound", def.id, ch.name)
		}
		cfg.Channels = append(cfg.Channels, Channel{Name: ch.name, Target: target, From: ch.from, To: ch.to})
	}
	if def.snap != nil {
		snap := SnapConfig{
			Points:   append([]float64(nil), def.snap.points...),
			Stride:   def.snap.stride,
			Duration: float32(def.snap.duration),
			Ease:     def.snap.ease,
		}
		if def.snap.target != "" {
			target, ok := sh.binds[def.snap.target]
			if !ok {
				return TriggerConfig{}, fmt.Errorf("driftwood: sheet trigger %q: snap target %q is not bound", def.id, def.snap.target)
			}
			snap.Target = target
		}
		cfg.Snap = &snap
	}
	return cfg, nil
}

// sheetTrigger is a fully validated definition awaiting channel bindings.
type sheetTrigger struct {
	id       string
	start    Bound
	end      Bound
	actions  ActionSet
	scrub    bool
	smooth   float64
	pin      bool
	once     bool
	channels []sheetChannel
	timeline []Keyframe
	snap     *sheetSnap
}

type sheetChannel struct {
	name     string
	from, to float64
}

type sheetSnap struct {
	points   []float64
	stride   float64
	duration float64
	ease     ease.TweenFunc
	target   string
}

func parseSheetTrigger(jt jsonTrigger) (sheetTrigger, error) {
	def := sheetTrigger{id: jt.ID, pin: jt.Pin, once: jt.Once}

	var err error
	if def.start, err = parseSheetBound(jt.Start, "start", jt.ID); err != nil {
		return def, err
	}
	if def.end, err = parseSheetBound(jt.End, "end", jt.ID); err != nil {
		return def, err
	}
	if def.actions, err = parseSheetActions(jt.Actions, jt.ID); err != nil {
		return def, err
	}
	if def.scrub, def.smooth, err = parseSheetScrub(jt.Scrub, jt.ID); err != nil {
		return def, err
	}

	for _, jc := range jt.Channels {
		if jc.Name == "" {
			return def, fmt.Errorf("driftwood: sheet trigger %q: channel with no name", jt.ID)
		}
		def.channels = append(def.channels, sheetChannel{name: jc.Name, from: jc.From, to: jc.To})
	}

	if len(jt.Timeline) > 0 && len(def.channels) == 0 {
		return def, fmt.Errorf("driftwood: sheet trigger %q: timeline without channels", jt.ID)
	}
	for _, jk := range jt.Timeline {
		if len(jk.Values) != len(def.channels) {
			return def, fmt.Errorf("driftwood: sheet trigger %q: keyframe at %g has %d values for %d channels",
				jt.ID, jk.At, len(jk.Values), len(def.channels))
		}
		def.timeline = append(def.timeline, Keyframe{At: jk.At, Values: append([]float64(nil), jk.Values...)})
	}

	if jt.Snap != nil {
		if len(jt.Snap.Points) == 0 {
			return def, fmt.Errorf("driftwood: sheet trigger %q: snap without points", jt.ID)
		}
		easeFn, err := parseSheetEase(jt.Snap.Ease, jt.ID)
		if err != nil {
			return def, err
		}
		def.snap = &sheetSnap{
			points:   jt.Snap.Points,
			stride:   jt.Snap.Stride,
			duration: jt.Snap.Duration,
			ease:     easeFn,
			target:   jt.Snap.Target,
		}
	}
	return def, nil
}

// parseSheetBound accepts a JSON number (absolute offset) or an anchor pair
// string. An absent field keeps the zero Bound so the resolver defaults
// apply.
func parseSheetBound(raw json.RawMessage, field, id string) (Bound, error) {
	if len(raw) == 0 {
		return Bound{}, nil
	}
	var offset float64
	if json.Unmarshal(raw, &offset) == nil {
		return At(offset), nil
	}
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return Bound{}, fmt.Errorf("driftwood: sheet trigger %q: %s must be a number or an anchor pair string", id, field)
	}
	return ParseBound(s)
}

// parseSheetActions parses the four transition actions from a single
// space-separated string, onEnter onLeave onEnterBack onLeaveBack in order.
func parseSheetActions(s, id string) (ActionSet, error) {
	if s == "" {
		return ActionSet{}, nil
	}
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return ActionSet{}, fmt.Errorf("driftwood: sheet trigger %q: actions needs 4 entries (onEnter onLeave onEnterBack onLeaveBack), got %d",
			id, len(fields))
	}
	var set ActionSet
	slots := [4]*ToggleAction{&set.OnEnter, &set.OnLeave, &set.OnEnterBack, &set.OnLeaveBack}
	for i, f := range fields {
		action, ok := ParseToggleAction(f)
		if !ok {
			return ActionSet{}, fmt.Errorf("driftwood: sheet trigger %q: unknown toggle action %q", id, f)
		}
		*slots[i] = action
	}
	return set, nil
}

func parseSheetScrub(raw json.RawMessage, id string) (scrub bool, smooth float64, err error) {
	if len(raw) == 0 {
		return false, 0, nil
	}
	var on bool
	if json.Unmarshal(raw, &on) == nil {
		return on, 0, nil
	}
	var seconds float64
	if json.Unmarshal(raw, &seconds) == nil {
		return true, seconds, nil
	}
	return false, 0, fmt.Errorf("driftwood: sheet trigger %q: scrub must be true or a smoothing time in seconds", id)
}

func parseSheetEase(name, id string) (ease.TweenFunc, error) {
	if name == "" {
		return nil, nil
	}
	fn, ok := sheetEases[name]
	if !ok {
		return nil, fmt.Errorf("driftwood: sheet trigger %q: unknown ease %q", id, name)
	}
	return fn, nil
}

var sheetEases = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// --- JSON structure types ---

type jsonSheet struct {
	Triggers []jsonTrigger `json:"triggers"`
}

type jsonTrigger struct {
	ID       string          `json:"id"`
	Start    json.RawMessage `json:"start"`
	End      json.RawMessage `json:"end"`
	Actions  string          `json:"actions"`
	Scrub    json.RawMessage `json:"scrub"`
	Pin      bool            `json:"pin"`
	Once     bool            `json:"once"`
	Channels []jsonChannel   `json:"channels"`
	Timeline []jsonKeyframe  `json:"timeline"`
	Snap     *jsonSnap       `json:"snap"`
}

type jsonChannel struct {
	Name string  `json:"name"`
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

type jsonKeyframe struct {
	At     float64   `json:"at"`
	Values []float64 `json:"values"`
}

type jsonSnap struct {
	Points   []float64 `json:"points"`
	Stride   float64   `json:"stride"`
	Duration float64   `json:"duration"`
	Ease     string    `json:"ease"`
	Target   string    `json:"target"`
}
