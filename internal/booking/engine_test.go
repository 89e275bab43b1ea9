package booking

import (
	"testing"
	"time"
)

// fixedEngine returns an Engine whose clock is pinned and which never
// touches storage; only the pure validation paths are exercised here.
func fixedEngine(now time.Time) *Engine {
	return &Engine{
		grace: time.Hour,
		now:   func() time.Time { return now },
	}
}

var testNow = time.Date(2025, 6, 10, 9, 30, 0, 0, time.UTC)

func TestValidateRequest_EmptyCart(t *testing.T) {
	e := fixedEngine(testNow)
	out := e.validateRequest(Request{Day: testNow})
	if out == nil {
		t.Fatalf("expected rejection")
	}
	if out.Code != CodeInvalidRequest {
		t.Fatalf("expected %s, got %s", CodeInvalidRequest, out.Code)
	}
}

func TestValidateRequest_ZeroResourceID(t *testing.T) {
	e := fixedEngine(testNow)
	out := e.validateRequest(Request{
		Day:   testNow,
		Lines: []Line{{ResourceID: 0, PartySize: 1}},
	})
	if out == nil || out.Code != CodeInvalidRequest {
		t.Fatalf("expected INVALID_REQUEST, got %+v", out)
	}
}

func TestValidateRequest_PartySizeBelowOne(t *testing.T) {
	e := fixedEngine(testNow)
	out := e.validateRequest(Request{
		Day:   testNow,
		Lines: []Line{{ResourceID: 7, PartySize: 0}},
	})
	if out == nil || out.Code != CodeInvalidRequest {
		t.Fatalf("expected INVALID_REQUEST, got %+v", out)
	}
}

func TestValidateRequest_PastDay(t *testing.T) {
	e := fixedEngine(testNow)
	out := e.validateRequest(Request{
		Day:   testNow.AddDate(0, 0, -1),
		Lines: []Line{{ResourceID: 7, PartySize: 1}},
	})
	if out == nil || out.Code != CodeInvalidRequest {
		t.Fatalf("expected INVALID_REQUEST, got %+v", out)
	}
}

func TestValidateRequest_SameDayAllowed(t *testing.T) {
	// Booking for today is valid even late in the day; only strictly
	// earlier days are rejected.
	e := fixedEngine(testNow)
	out := e.validateRequest(Request{
		Day:   time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		Lines: []Line{{ResourceID: 7, PartySize: 2}},
	})
	if out != nil {
		t.Fatalf("expected valid, got code=%s message=%q", out.Code, out.Message)
	}
}

func TestWithinGraceWindow_Boundaries(t *testing.T) {
	created := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	grace := time.Hour

	if !withinGraceWindow(created, created.Add(59*time.Minute), grace) {
		t.Fatalf("expected cancellable at T+59m")
	}
	if !withinGraceWindow(created, created.Add(60*time.Minute), grace) {
		t.Fatalf("expected cancellable at exactly T+60m")
	}
	if withinGraceWindow(created, created.Add(61*time.Minute), grace) {
		t.Fatalf("expected not cancellable at T+61m")
	}
}

func TestDistinctResourceIDs(t *testing.T) {
	ids := distinctResourceIDs([]Line{
		{ResourceID: 5, PartySize: 3},
		{ResourceID: 2, PartySize: 1},
		{ResourceID: 5, PartySize: 2},
	})
	if len(ids) != 2 || ids[0] != 5 || ids[1] != 2 {
		t.Fatalf("expected [5 2] in first-seen order, got %v", ids)
	}
}

func TestDayOf_TruncatesToUTCDate(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	d := dayOf(time.Date(2025, 6, 10, 0, 30, 0, 0, loc)) // 23:30 UTC on June 9
	want := time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)
	if !d.Equal(want) {
		t.Fatalf("got %v, want %v", d, want)
	}
}
