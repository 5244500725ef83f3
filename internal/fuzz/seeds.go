package fuzztests

import (
	"bytes"
	"testing"

	"glean/internal/codec"
	"glean/internal/treefile"
)

const maxFuzzInput = 1 << 16 // 64 KiB

var tomlSeeds = []string{
	"",
	"[[pattern]]\nexpression = \"a\"\n[[pattern.token]]\nkind = \"literal\"\ntext = \"a\"\nspan = [0, 1]\n",
	`case = "insensitive"
[[pattern]]
expression = "/**/x?"
[[pattern.token]]
kind = "tree"
root = true
span = [0, 4]
[[pattern.token]]
kind = "literal"
text = "x"
span = [4, 5]
[[pattern.token]]
kind = "one"
span = [5, 6]
`,
	`[[pattern]]
expression = "{a,[!b-d]}<c/:1,3>"
[[pattern.token]]
kind = "alternative"
[[pattern.token.branches]]
[[pattern.token.branches.tokens]]
kind = "literal"
text = "a"
[[pattern.token.branches]]
[[pattern.token.branches.tokens]]
kind = "class"
negated = true
archetypes = [{from = "b", to = "d"}]
[[pattern.token]]
kind = "repetition"
lower = 1
upper = 3
tokens = [{kind = "literal", text = "c"}, {kind = "separator"}]
`,
}

func addTOMLSeeds(f *testing.F) {
	for _, s := range tomlSeeds {
		f.Add([]byte(s))
	}
}

// addMsgpackSeeds encodes every TOML seed that decodes.
func addMsgpackSeeds(f *testing.F) {
	f.Add([]byte{})
	for _, s := range tomlSeeds {
		file, err := treefile.Decode(bytes.NewReader([]byte(s)), "seed.toml")
		if err != nil {
			continue
		}
		var buf bytes.Buffer
		if err := codec.Encode(&buf, file); err != nil {
			continue
		}
		f.Add(buf.Bytes())
	}
}

func clamp(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
