package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	tests := []struct {
		data    string
		unique  string
		payload string
	}{
		{"\fanswer|3|B", "answer", "3|B"},
		{"answer|3|B", "answer", "3|B"},
		{"\fanswer", "answer", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		unique, payload := ParseCallbackData(&tele.Callback{Data: tt.data})
		if unique != tt.unique || payload != tt.payload {
			t.Errorf("ParseCallbackData(%q) = (%q, %q), want (%q, %q)",
				tt.data, unique, payload, tt.unique, tt.payload)
		}
	}
}

func TestParseCallbackDataNil(t *testing.T) {
	if u, p := ParseCallbackData(nil); u != "" || p != "" {
		t.Errorf("expected empty result for nil callback, got (%q, %q)", u, p)
	}
}

type cbCtx struct {
	tele.Context
	cb *tele.Callback
}

func (c cbCtx) Callback() *tele.Callback { return c.cb }

func TestPayloadIntString(t *testing.T) {
	ctx := cbCtx{cb: &tele.Callback{Data: "\fanswer|3|B"}}
	n, s, err := PayloadIntString(ctx, "|")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 || s != "B" {
		t.Errorf("got (%d, %q), want (3, B)", n, s)
	}
}

func TestPayloadIntStringMalformed(t *testing.T) {
	for _, data := range []string{"\fanswer", "\fanswer|", "\fanswer|x|B", "\fanswer|1|2|3", "\fanswer|solo"} {
		ctx := cbCtx{cb: &tele.Callback{Data: data}}
		if _, _, err := PayloadIntString(ctx, "|"); err == nil {
			t.Errorf("PayloadIntString(%q): expected error", data)
		}
	}
}

func TestCallbackKey(t *testing.T) {
	raw := cbCtx{cb: &tele.Callback{Data: "\fanswer|3|B"}}
	if got := CallbackKey(raw); got != "answer" {
		t.Errorf("CallbackKey(raw) = %q, want answer", got)
	}

	resolved := cbCtx{cb: &tele.Callback{Unique: "answer", Data: "3|B"}}
	if got := CallbackKey(resolved); got != "answer" {
		t.Errorf("CallbackKey(resolved) = %q, want answer", got)
	}

	if got := CallbackKey(cbCtx{}); got != "" {
		t.Errorf("CallbackKey(no callback) = %q, want empty", got)
	}
}

func TestCallbackPayload(t *testing.T) {
	raw := cbCtx{cb: &tele.Callback{Data: "\fanswer|3|B"}}
	if got := CallbackPayload(raw); got != "3|B" {
		t.Errorf("CallbackPayload(raw) = %q, want 3|B", got)
	}

	resolved := cbCtx{cb: &tele.Callback{Unique: "answer", Data: "3|B"}}
	if got := CallbackPayload(resolved); got != "3|B" {
		t.Errorf("CallbackPayload(resolved) = %q, want 3|B", got)
	}
}
