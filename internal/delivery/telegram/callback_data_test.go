package telegram

import "testing"

func TestDecodeCallback(t *testing.T) {
	tests := []struct {
		name string
		data string
		want callbackEvent
	}{
		{name: "subject", data: "subj|Matematika", want: subjectEvent{Subject: "Matematika"}},
		{name: "random", data: "random", want: randomMixEvent{}},
		{name: "answer", data: "ans|3|B", want: answerEvent{QuestionIndex: 3, Letter: "B"}},
		{name: "next", data: "next", want: nextBatchEvent{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeCallback(tt.data)
			if err != nil {
				t.Fatalf("decodeCallback(%q): %v", tt.data, err)
			}
			if got != tt.want {
				t.Fatalf("decodeCallback(%q) = %#v, want %#v", tt.data, got, tt.want)
			}
		})
	}
}

func TestDecodeCallbackRejectsMalformedTokens(t *testing.T) {
	malformed := []string{
		"",
		"unknown",
		"subj|",
		"subj",
		"ans|3",
		"ans|x|B",
		"ans|3|",
		"ans|3|B|extra",
	}

	for _, data := range malformed {
		if _, err := decodeCallback(data); err == nil {
			t.Fatalf("decodeCallback(%q): expected error", data)
		}
	}
}

func TestCallbackRoundTrip(t *testing.T) {
	if got, err := decodeCallback(buildSubjectCallback("Informatika")); err != nil || got != (subjectEvent{Subject: "Informatika"}) {
		t.Fatalf("subject round trip failed: %#v, %v", got, err)
	}
	if got, err := decodeCallback(buildAnswerCallback(7, "D")); err != nil || got != (answerEvent{QuestionIndex: 7, Letter: "D"}) {
		t.Fatalf("answer round trip failed: %#v, %v", got, err)
	}
}
