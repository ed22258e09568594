package llm

import "testing"

func TestDecodeLLMJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{name: "plain", content: `{"title":"Dune"}`},
		{name: "fenced", content: "```json\n{\"title\":\"Dune\"}\n```"},
		{name: "prose", content: "Sure! Here you go: {\"title\":\"Dune\"} Enjoy."},
		{name: "empty", content: "  ", wantErr: true},
		{name: "garbage", content: "no json here", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got struct {
				Title string `json:"title"`
			}
			err := DecodeLLMJSON(tc.content, &got)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeLLMJSON returned error: %v", err)
			}
			if got.Title != "Dune" {
				t.Fatalf("unexpected title %q", got.Title)
			}
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := map[string]string{
		"```go\nfmt.Println(1)\n```": "fmt.Println(1)",
		"```\nplain\n```":            "plain",
		"```{\"a\":1}```":            `{"a":1}`,
		"no fence":                   "no fence",
	}
	for input, want := range tests {
		if got := StripCodeFence(input); got != want {
			t.Fatalf("StripCodeFence(%q) = %q, want %q", input, got, want)
		}
	}
}
