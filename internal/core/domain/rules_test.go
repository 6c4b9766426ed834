package domain

import "testing"

func TestValidateRules(t *testing.T) {
	if err := ValidateRules(); err != nil {
		t.Fatalf("rule table invalid: %v", err)
	}
}

func TestRulesCoverEveryCollection(t *testing.T) {
	if len(Rules) != len(Collections) {
		t.Fatalf("expected %d rules, got %d", len(Collections), len(Rules))
	}
	for _, c := range Collections {
		if _, ok := Rules[c]; !ok {
			t.Errorf("collection %q has no rule", c)
		}
	}
}

func TestPermBits(t *testing.T) {
	if !PermRW.Can(PermRead) || !PermRW.Can(PermWrite) {
		t.Fatalf("rw digit must grant both bits")
	}
	if PermRead.Can(PermWrite) {
		t.Fatalf("read digit must not grant write")
	}
	if PermWrite.Can(PermRead) {
		t.Fatalf("write digit must not grant read")
	}
	if PermNone.Can(PermRead) || PermNone.Can(PermWrite) {
		t.Fatalf("none digit must grant nothing")
	}
}

func TestContractsAreDualOwned(t *testing.T) {
	rule := Rules[CollectionContracts]
	if len(rule.OwnerFields) != 2 {
		t.Fatalf("contracts must declare two owner fields, got %v", rule.OwnerFields)
	}

	rec := Record{"clientId": "a", "professionalId": "b"}
	owners := rule.Owners(rec)
	if len(owners) != 2 || owners[0] != "a" || owners[1] != "b" {
		t.Fatalf("unexpected owners: %v", owners)
	}
	if rule.CreateField() != "clientId" {
		t.Fatalf("contracts must be created as the client, got %q", rule.CreateField())
	}
}

func TestPublicReadCollections(t *testing.T) {
	public := map[string]bool{
		CollectionClients:       true,
		CollectionProfessionals: true,
		CollectionPortfolios:    true,
	}
	for name, rule := range Rules {
		if rule.Public.Can(PermRead) != public[name] {
			t.Errorf("collection %q: public read = %v, want %v", name, rule.Public.Can(PermRead), public[name])
		}
		if rule.Public.Can(PermWrite) {
			t.Errorf("collection %q: public write must never be granted", name)
		}
	}
}

func TestRuleForUnknownCollection(t *testing.T) {
	if _, err := RuleFor("invoices"); err == nil {
		t.Fatalf("expected error for unknown collection")
	}
}
