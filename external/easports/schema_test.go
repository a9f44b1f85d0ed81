package easports

import (
	"testing"

	sonic "github.com/bytedance/sonic"
)

func TestFlexIntDecoding(t *testing.T) {
	t.Parallel()

	cases := map[string]int{
		`{"v": 7}`:      7,
		`{"v": "12"}`:   12,
		`{"v": " -3 "}`: -3,
		`{"v": ""}`:     0,
		`{"v": null}`:   0,
		`{"v": 4.0}`:    4,
		`{"v": "n/a"}`:  0,
	}
	for raw, want := range cases {
		var doc struct {
			V flexInt `json:"v"`
		}
		if err := sonic.Unmarshal([]byte(raw), &doc); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if doc.V.Int() != want {
			t.Fatalf("decode %s: got %d want %d", raw, doc.V.Int(), want)
		}
	}
}

func TestNormalizeMatch_EmptyPlayers(t *testing.T) {
	t.Parallel()

	if got := NormalizeMatch(Match{MatchID: "1"}); len(got) != 0 {
		t.Fatalf("expected no lines, got %+v", got)
	}
}
