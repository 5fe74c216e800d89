package registry

import (
	"math/rand"
	"testing"
)

type fixedVariant struct{ id string }

func (v fixedVariant) ID() string    { return v.id }
func (v fixedVariant) Title() string { return "Fixed " + v.id }
func (v fixedVariant) PlaceGap(_ *rand.Rand, margin, _, _ int) int {
	return margin
}

func TestRegisterAndCreate(t *testing.T) {
	Register("test-fixed-b", func() Variant { return fixedVariant{id: "test-fixed-b"} })
	Register("test-fixed-a", func() Variant { return fixedVariant{id: "test-fixed-a"} })

	if !Exists("test-fixed-a") {
		t.Fatal("registered variant should exist")
	}
	if Exists("test-missing") {
		t.Error("unregistered variant should not exist")
	}

	v, err := Create("test-fixed-a")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if got := v.PlaceGap(nil, 20, 100, 10); got != 20 {
		t.Errorf("PlaceGap = %d, expected 20", got)
	}

	if _, err := Create("test-missing"); err == nil {
		t.Error("Create of unknown variant should fail")
	}

	// List is sorted by ID
	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] > ids[i] {
			t.Errorf("List not sorted: %v", ids)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", func() Variant { return fixedVariant{id: "test-dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test-dup", func() Variant { return fixedVariant{id: "test-dup"} })
}
