// Package input turns raw pointer samples into stroke events.
package input

import (
	"SketchBoard/internal/state"
)

// Kind identifies a stroke event.
type Kind int

const (
	StrokeStart Kind = iota + 1
	StrokeExtend
	StrokeEnd
)

func (k Kind) String() string {
	switch k {
	case StrokeStart:
		return "start"
	case StrokeExtend:
		return "extend"
	case StrokeEnd:
		return "end"
	}
	return "unknown"
}

// Event is emitted by the Reducer.
//
// For StrokeStart, From and To equal Start. For StrokeExtend, From is the
// previous point and To the new one. For StrokeEnd, To is the last point of
// the stroke (the release point) and From the point before it; they are
// equal when the pointer did not move on release.
type Event struct {
	Kind  Kind
	Start state.Point
	From  state.Point
	To    state.Point
	Tool  state.Tool
	Style state.Style
}

// stroke is the transient state between a press and its release. Tool and
// style are snapshots so later changes never reach an active stroke.
type stroke struct {
	start state.Point
	last  state.Point
	tool  state.Tool
	style state.Style
}

// Reducer is the Idle/Stroking state machine. It is driven synchronously,
// one sample at a time, and never blocks.
type Reducer struct {
	active  *stroke
	lastSeq uint64
}

// NewReducer returns a reducer in the Idle state.
func NewReducer() *Reducer {
	return &Reducer{}
}

// Stroking reports whether a stroke is in progress.
func (r *Reducer) Stroking() bool {
	return r.active != nil
}

// Tool returns the tool captured at the start of the active stroke.
func (r *Reducer) Tool() (state.Tool, bool) {
	if r.active == nil {
		return 0, false
	}
	return r.active.tool, true
}

// Submit feeds one sample. tool and style are only read when the sample
// starts a stroke. It returns the emitted event, if any.
//
// Samples with a non-zero Seq not greater than the last seen one arrived
// out of order and are dropped, as are samples with non-finite coordinates.
func (r *Reducer) Submit(s state.PointerSample, tool state.Tool, style state.Style) (Event, bool) {
	if s.Seq != 0 {
		if s.Seq <= r.lastSeq {
			return Event{}, false
		}
		r.lastSeq = s.Seq
	}
	p := s.Point()
	if !p.Finite() {
		return Event{}, false
	}

	if r.active == nil {
		if !s.ButtonDown {
			return Event{}, false
		}
		r.active = &stroke{start: p, last: p, tool: tool, style: style.Normalize()}
		return r.event(StrokeStart, p, p), true
	}

	if s.ButtonDown {
		if p == r.active.last {
			return Event{}, false
		}
		from := r.active.last
		r.active.last = p
		return r.event(StrokeExtend, from, p), true
	}

	from := r.active.last
	r.active.last = p
	ev := r.event(StrokeEnd, from, p)
	r.active = nil
	return ev, true
}

// Cancel drops the active stroke without emitting anything. It reports
// whether a stroke was active.
func (r *Reducer) Cancel() bool {
	active := r.active != nil
	r.active = nil
	return active
}

func (r *Reducer) event(kind Kind, from, to state.Point) Event {
	return Event{
		Kind:  kind,
		Start: r.active.start,
		From:  from,
		To:    to,
		Tool:  r.active.tool,
		Style: r.active.style,
	}
}
