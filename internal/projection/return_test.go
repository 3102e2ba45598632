package projection

import (
	"encoding/json"
	"testing"
)

func TestReturnOn(t *testing.T) {
	r := ReturnOn(5000, 50000)
	value, err := r.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if value != 10 {
		t.Errorf("Value() = %v, expected 10", value)
	}
	if r.String() != "+10.00%" {
		t.Errorf("String() = %q, expected +10.00%%", r.String())
	}

	if ReturnOn(5000, 0).Defined() {
		t.Error("expected undefined return for zero investment")
	}
	if UndefinedReturn().String() != "n/a" {
		t.Errorf("String() = %q, expected n/a", UndefinedReturn().String())
	}
}

func TestReturnJSON(t *testing.T) {
	payload := struct {
		Defined   Return `json:"defined"`
		Undefined Return `json:"undefined"`
	}{
		Defined:   DefinedReturn(-12.5),
		Undefined: UndefinedReturn(),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != `{"defined":-12.5,"undefined":null}` {
		t.Errorf("Marshal() = %s", data)
	}

	var decoded struct {
		Defined   Return `json:"defined"`
		Undefined Return `json:"undefined"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded != payload {
		t.Errorf("decoded %+v, expected %+v", decoded, payload)
	}
}
