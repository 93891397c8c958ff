package logger

import (
	"io"
	"log/slog"
	"testing"
)

func TestComponentReusesWiredLoggers(t *testing.T) {
	oldL := L
	defer func() {
		L = oldL
		wireComponents()
	}()

	L = slog.New(slog.NewTextHandler(io.Discard, nil))
	wireComponents()

	for name, want := range map[string]*slog.Logger{
		"db":      DB,
		"tg":      TG,
		"tg.wire": TWire,
		"survey":  Survey,
		"report":  Report,
	} {
		if got := Component(name); got != want {
			t.Errorf("Component(%q) did not return the wired logger", name)
		}
	}

	if got := Component("custom"); got == nil || got == L {
		t.Error("unknown component should get a freshly scoped logger")
	}
	if got := Component(""); got != L {
		t.Error("empty component should return the base logger")
	}
}
