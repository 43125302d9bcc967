package internal

import "testing"

func float(v float64) *float64 { return &v }

func TestProgressTracker_InitialState(t *testing.T) {
	p := NewProgressTracker()
	state := p.Snapshot()
	if state.Percent != 0 || state.StatusText != "initializing" {
		t.Errorf("initial state = %+v, want (0, initializing)", state)
	}
}

func TestProgressTracker_Update(t *testing.T) {
	tests := []struct {
		name    string
		updates []struct {
			percent *float64
			status  string
		}
		want ProgressState
	}{
		{
			name: "percent only leaves status",
			updates: []struct {
				percent *float64
				status  string
			}{
				{float(40), ""},
			},
			want: ProgressState{Percent: 40, StatusText: "initializing"},
		},
		{
			name: "status only leaves percent",
			updates: []struct {
				percent *float64
				status  string
			}{
				{float(40), ""},
				{nil, "thinking"},
			},
			want: ProgressState{Percent: 40, StatusText: "thinking"},
		},
		{
			name: "interleaved dimensions are independent",
			updates: []struct {
				percent *float64
				status  string
			}{
				{float(10), ""},
				{nil, "thinking"},
				{float(20), ""},
				{nil, "processing observation"},
				{float(30), ""},
			},
			want: ProgressState{Percent: 30, StatusText: "processing observation"},
		},
		{
			name: "last write wins per dimension",
			updates: []struct {
				percent *float64
				status  string
			}{
				{float(80), "generating summary"},
				{float(100), "task complete"},
			},
			want: ProgressState{Percent: 100, StatusText: "task complete"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProgressTracker()
			for _, u := range tt.updates {
				p.Update(u.percent, u.status)
			}
			if got := p.Snapshot(); got != tt.want {
				t.Errorf("Snapshot() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestProgressTracker_Reset(t *testing.T) {
	p := NewProgressTracker()
	p.Update(float(75), "generating summary")
	p.Reset()
	if got := p.Snapshot(); got != (ProgressState{Percent: 0, StatusText: "initializing"}) {
		t.Errorf("after Reset() = %+v", got)
	}
}

func TestProgressTracker_SnapshotIsPureRead(t *testing.T) {
	p := NewProgressTracker()
	p.Update(float(33), "thinking")
	first := p.Snapshot()
	second := p.Snapshot()
	if first != second {
		t.Errorf("consecutive snapshots differ: %+v vs %+v", first, second)
	}
}
