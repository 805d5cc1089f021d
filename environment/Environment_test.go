package environment

import (
	"encoding/json"
	"testing"
)

func TestStep(t *testing.T) {
	s := State{Row: 2, Col: 2}
	want := map[Action]State{
		North: {Row: 1, Col: 2},
		South: {Row: 3, Col: 2},
		East:  {Row: 2, Col: 3},
		West:  {Row: 2, Col: 1},
	}

	for _, a := range Actions {
		if next := Step(s, a); next != want[a] {
			t.Errorf("step(%v, %v): want %v, have %v", s, a, want[a], next)
		}
	}

	for _, a := range []Action{-1, Action(NumActions), 42} {
		if next := Step(s, a); next != s {
			t.Errorf("step(%v, %v): want %v unchanged, have %v", s, a, s, next)
		}
	}
}

func TestActionText(t *testing.T) {
	for _, a := range Actions {
		bytes, err := json.Marshal(a)
		if err != nil {
			t.Fatal(err)
		}

		var back Action
		if err := json.Unmarshal(bytes, &back); err != nil {
			t.Fatal(err)
		}
		if back != a {
			t.Errorf("json round trip of %v gave %v", a, back)
		}
	}

	var a Action
	if err := a.UnmarshalText([]byte("south")); err != nil || a != South {
		t.Errorf("unmarshalText(south): have %v, %v", a, err)
	}
	if err := a.UnmarshalText([]byte("up")); err == nil {
		t.Error("unmarshalText(up): expected error")
	}
	if _, err := Action(7).MarshalText(); err == nil {
		t.Error("marshalText(7): expected error")
	}
}
