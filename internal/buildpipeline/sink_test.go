package buildpipeline

import (
	"errors"
	"testing"
	"time"
)

func TestSinks(t *testing.T) {
	ch := make(chan Event, 4)
	var seen []Event
	sink := MultiSink{ChannelSink{Ch: ch}, FuncSink(func(e Event) { seen = append(seen, e) }), nil}

	EmitStage(sink, "A.cs", StageParse, StatusWorking, nil, 0)
	EmitStage(sink, "A.cs", StageParse, StatusError, errors.New("boom"), time.Millisecond)
	Emit(nil, Event{}) // nil sink is ignored
	close(ch)

	var got []Event
	for e := range ch {
		got = append(got, e)
	}
	if len(got) != 2 || len(seen) != 2 {
		t.Fatalf("channel=%d func=%d, want 2/2", len(got), len(seen))
	}
	if got[1].Status != StatusError || got[1].Err == nil || got[1].Elapsed != time.Millisecond {
		t.Fatalf("event = %+v", got[1])
	}
	ChannelSink{}.OnEvent(Event{}) // nil channel must not block
}

func TestTimings(t *testing.T) {
	var tm Timings
	if tm.Has(StageParse) || tm.Duration(StageParse) != 0 {
		t.Fatalf("zero Timings must be empty")
	}
	tm.Add(StageParse, 2*time.Millisecond)
	tm.Add(StageParse, 3*time.Millisecond)
	tm.Add(StageRender, time.Millisecond)
	if tm.Duration(StageParse) != 5*time.Millisecond {
		t.Fatalf("parse = %v", tm.Duration(StageParse))
	}
	if tm.Sum(StageParse, StageRender, StageWrite) != 6*time.Millisecond {
		t.Fatalf("sum = %v", tm.Sum(StageParse, StageRender))
	}
}
