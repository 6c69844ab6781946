package booklet

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestStoreKey(t *testing.T) {
	tests := []struct {
		scheme string
		want   string
	}{
		{SchemeSHG, "u-1:shg_booklet_data"},
		{SchemeSAKHI, "u-1:sakhi_booklet_data"},
		{SchemeLOD, "u-1:lod_booklet_data"},
	}
	for _, tt := range tests {
		got, err := StoreKey("u-1", tt.scheme)
		if err != nil {
			t.Fatalf("StoreKey(%s): %v", tt.scheme, err)
		}
		if got != tt.want {
			t.Errorf("StoreKey(%s) = %q, want %q", tt.scheme, got, tt.want)
		}
	}

	if _, err := StoreKey("u-1", "PMEGP"); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("StoreKey unknown scheme err = %v, want ErrUnknownScheme", err)
	}
}

func TestSubmitPath(t *testing.T) {
	tests := []struct {
		scheme string
		want   string
	}{
		{SchemeSHG, "/loan/shg-booklet"},
		{SchemeSAKHI, "/loan/sakhi-booklet"},
		{SchemeLOD, "/loan/lod-booklet"},
	}
	for _, tt := range tests {
		got, err := SubmitPath(tt.scheme)
		if err != nil {
			t.Fatalf("SubmitPath(%s): %v", tt.scheme, err)
		}
		if got != tt.want {
			t.Errorf("SubmitPath(%s) = %q, want %q", tt.scheme, got, tt.want)
		}
	}

	if _, err := SubmitPath("PMEGP"); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("SubmitPath unknown scheme err = %v, want ErrUnknownScheme", err)
	}
}

func TestIsKnownScheme(t *testing.T) {
	for _, code := range []string{SchemeSHG, SchemeSAKHI, SchemeLOD} {
		if !IsKnownScheme(code) {
			t.Errorf("IsKnownScheme(%s) = false", code)
		}
	}
	if IsKnownScheme("shg") {
		t.Error("IsKnownScheme is case sensitive, lowercase should not match")
	}
}

func TestEnvelopeRoundTripSHG(t *testing.T) {
	draft := NewDraft(SchemeSHG)
	draft.Scalars["shgname"] = "Pragati SHG"
	draft.Scalars["noofmembers"] = "2"
	draft.Lists["members"] = []Record{
		{"role": "President", "name": "Asha"},
		{"role": "Secretary", "name": "Rekha"},
	}

	env := &Envelope{Scheme: SchemeSHG, UserData: json.RawMessage(`{"name":"BM"}`), Draft: draft}
	raw, err := env.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		t.Fatalf("payload not an object: %v", err)
	}
	for _, key := range []string{"user_data", "shg_data", "members_data"} {
		if _, ok := shape[key]; !ok {
			t.Errorf("payload missing %q key", key)
		}
	}

	got, err := ParseEnvelope(SchemeSHG, raw)
	if err != nil {
		t.Fatalf("ParseEnvelope: %v", err)
	}
	if got.Draft.Scalars["shgname"] != "Pragati SHG" {
		t.Errorf("shgname = %q after round trip", got.Draft.Scalars["shgname"])
	}
	if len(got.Draft.Lists["members"]) != 2 {
		t.Fatalf("members len = %d, want 2", len(got.Draft.Lists["members"]))
	}
	if got.Draft.Lists["members"][1]["role"] != "Secretary" {
		t.Errorf("member 2 role = %q", got.Draft.Lists["members"][1]["role"])
	}
	if string(got.UserData) != `{"name":"BM"}` {
		t.Errorf("user_data = %s after round trip", got.UserData)
	}
}

func TestEnvelopeRoundTripSAKHINestsLists(t *testing.T) {
	draft := NewDraft(SchemeSAKHI)
	draft.Scalars["customerName"] = "Sunita Devi"
	draft.Lists["legalHeirs"] = []Record{{"name": "Ravi", "age": "21", "relation": "Son"}}

	env := &Envelope{Scheme: SchemeSAKHI, UserData: json.RawMessage(`{}`), Draft: draft}
	raw, err := env.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	// Legal heirs ride inside sakhi_data, not as a sibling key.
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		t.Fatalf("payload not an object: %v", err)
	}
	if _, ok := shape["legalHeirs"]; ok {
		t.Error("legalHeirs must not appear at the top level")
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(shape["sakhi_data"], &data); err != nil {
		t.Fatalf("sakhi_data not an object: %v", err)
	}
	if _, ok := data["legalHeirs"]; !ok {
		t.Fatal("sakhi_data missing legalHeirs")
	}

	got, err := ParseEnvelope(SchemeSAKHI, raw)
	if err != nil {
		t.Fatalf("ParseEnvelope: %v", err)
	}
	if got.Draft.Scalars["customerName"] != "Sunita Devi" {
		t.Errorf("customerName = %q after round trip", got.Draft.Scalars["customerName"])
	}
	heirs := got.Draft.Lists["legalHeirs"]
	if len(heirs) != 1 || heirs[0]["relation"] != "Son" {
		t.Errorf("legalHeirs = %v after round trip", heirs)
	}
}

func TestParseEnvelopeSAKHIUnquotedNumber(t *testing.T) {
	// Drafts written by the old client sometimes stored bare numbers.
	raw := []byte(`{"user_data":{},"sakhi_data":{"annualIncome":120000,"customerName":"Sunita"}}`)
	env, err := ParseEnvelope(SchemeSAKHI, raw)
	if err != nil {
		t.Fatalf("ParseEnvelope: %v", err)
	}
	if env.Draft.Scalars["annualIncome"] != "120000" {
		t.Errorf("annualIncome = %q, want textual form kept", env.Draft.Scalars["annualIncome"])
	}
}

func TestEnvelopeRoundTripLOD(t *testing.T) {
	draft := NewDraft(SchemeLOD)
	draft.Scalars["loanType"] = "Overdraft"
	draft.Lists["borrowers"] = []Record{{"name": "Mohan", "mobile": "9876543210"}}
	draft.Lists["deposits"] = []Record{{"accNo": "100200", "termVal": "50000"}}

	env := &Envelope{Scheme: SchemeLOD, UserData: json.RawMessage(`{}`), Draft: draft}
	raw, err := env.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		t.Fatalf("payload not an object: %v", err)
	}
	for _, key := range []string{"loan_data", "borrowers_data", "deposits_data"} {
		if _, ok := shape[key]; !ok {
			t.Errorf("payload missing %q key", key)
		}
	}

	got, err := ParseEnvelope(SchemeLOD, raw)
	if err != nil {
		t.Fatalf("ParseEnvelope: %v", err)
	}
	if got.Draft.Scalars["loanType"] != "Overdraft" {
		t.Errorf("loanType = %q after round trip", got.Draft.Scalars["loanType"])
	}
	if len(got.Draft.Lists["deposits"]) != 1 || got.Draft.Lists["deposits"][0]["termVal"] != "50000" {
		t.Errorf("deposits = %v after round trip", got.Draft.Lists["deposits"])
	}
}

func TestMarshalEmptyListsAsArrays(t *testing.T) {
	env := &Envelope{Scheme: SchemeSHG, Draft: NewDraft(SchemeSHG)}
	raw, err := env.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	var shape map[string]json.RawMessage
	if err := json.Unmarshal(raw, &shape); err != nil {
		t.Fatalf("payload not an object: %v", err)
	}
	if string(shape["members_data"]) != "[]" {
		t.Errorf("members_data = %s, want []", shape["members_data"])
	}
	if string(shape["user_data"]) != "null" {
		t.Errorf("user_data = %s, want null when absent", shape["user_data"])
	}
}

func TestParseEnvelopeErrors(t *testing.T) {
	if _, err := ParseEnvelope("PMEGP", []byte(`{}`)); !errors.Is(err, ErrUnknownScheme) {
		t.Errorf("unknown scheme err = %v, want ErrUnknownScheme", err)
	}
	if _, err := ParseEnvelope(SchemeSHG, []byte(`[]`)); err == nil {
		t.Error("non-object payload should fail to parse")
	}
	env, err := ParseEnvelope(SchemeSHG, []byte(`{}`))
	if err != nil {
		t.Fatalf("empty object: %v", err)
	}
	if len(env.Draft.Scalars) != 0 || len(env.Draft.Lists["members"]) != 0 {
		t.Error("empty payload should yield an empty draft")
	}
}
