package records

import (
	"fmt"
	"testing"

	"loan-booklet-be/pkg/booklet"
)

func rosterConfig() ListConfig {
	return ListConfig{
		Fields:    []string{"name", "mobile"},
		Min:       1,
		Max:       5,
		Seed:      3,
		RoleField: "role",
		RoleOf: func(index int) string {
			switch index {
			case 0:
				return "President"
			case 1:
				return "Secretary"
			case 2:
				return "Treasurer"
			default:
				return fmt.Sprintf("Member %d", index+1)
			}
		},
	}
}

func TestSeedList(t *testing.T) {
	cfg := rosterConfig()
	list := cfg.SeedList()

	if len(list) != 3 {
		t.Fatalf("seed length = %d, want 3", len(list))
	}
	if list[0]["role"] != "President" || list[1]["role"] != "Secretary" || list[2]["role"] != "Treasurer" {
		t.Errorf("roles = %q %q %q", list[0]["role"], list[1]["role"], list[2]["role"])
	}
	if list[0]["name"] != "" || list[0]["mobile"] != "" {
		t.Errorf("seeded record not blank: %v", list[0])
	}
}

func TestAdd(t *testing.T) {
	cfg := rosterConfig()
	list := cfg.SeedList()

	list, ok := Add(list, cfg)
	if !ok || len(list) != 4 {
		t.Fatalf("add: ok=%v len=%d, want ok=true len=4", ok, len(list))
	}
	if list[3]["role"] != "Member 4" {
		t.Errorf("new record role = %q, want %q", list[3]["role"], "Member 4")
	}
}

func TestAddAtMaxIsNoop(t *testing.T) {
	cfg := rosterConfig()
	list := cfg.SeedList()
	for i := 0; i < 2; i++ {
		list, _ = Add(list, cfg)
	}
	if len(list) != 5 {
		t.Fatalf("setup: len=%d, want 5", len(list))
	}

	out, ok := Add(list, cfg)
	if ok {
		t.Error("add beyond max reported ok")
	}
	if len(out) != 5 {
		t.Errorf("add beyond max grew the list to %d", len(out))
	}
}

func TestUpdateField(t *testing.T) {
	cfg := rosterConfig()
	list := cfg.SeedList()

	out, err := UpdateField(list, 1, "name", "Rina")
	if err != nil {
		t.Fatal(err)
	}
	if out[1]["name"] != "Rina" {
		t.Errorf("updated value = %q", out[1]["name"])
	}
	if list[1]["name"] != "" {
		t.Error("input list was mutated")
	}

	if _, err := UpdateField(list, 7, "name", "x"); err == nil {
		t.Error("out-of-range update did not error")
	}
}

func TestDeleteRenumbersRoles(t *testing.T) {
	cfg := rosterConfig()
	list := cfg.SeedList()
	list, _ = UpdateField(list, 2, "name", "Third")

	out, err := Delete(list, 0, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	// The old Secretary becomes President, the filled record moves up.
	if out[0]["role"] != "President" || out[1]["role"] != "Secretary" {
		t.Errorf("roles after delete = %q %q", out[0]["role"], out[1]["role"])
	}
	if out[1]["name"] != "Third" {
		t.Errorf("record data lost on renumber: %v", out[1])
	}
}

func TestDeleteLastLeavesBlank(t *testing.T) {
	cfg := rosterConfig()
	list := []booklet.Record{{"name": "Only", "mobile": "9000000001", "role": "President"}}

	out, err := Delete(list, 0, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1 blank", len(out))
	}
	if out[0]["name"] != "" || out[0]["role"] != "President" {
		t.Errorf("replacement record = %v", out[0])
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	cfg := rosterConfig()
	if _, err := Delete(cfg.SeedList(), -1, cfg); err == nil {
		t.Error("negative index did not error")
	}
	if _, err := Delete(cfg.SeedList(), 3, cfg); err == nil {
		t.Error("index past end did not error")
	}
}
