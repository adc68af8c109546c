package uuid

import (
	"github.com/google/uuid"
	"testing"
)

func TestIDService_NewID(t *testing.T) {
	idService := &IDService{}

	first := idService.NewID()
	second := idService.NewID()

	if first.String() == second.String() {
		t.Errorf("expected distinct ids, got [%v] twice", first)
	}

	parsed, err := uuid.Parse(first.String())
	if err != nil {
		t.Fatal(err)
	}

	if parsed.Version() != 4 {
		t.Errorf(
			"unexpected id version\n"+
				"expected: [%v]\n"+
				"actual:   [%v]",
			4,
			parsed.Version(),
		)
	}
}
