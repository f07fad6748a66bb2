package fuzztests

import "testing"

var expressionSeeds = []string{
	"",
	"A",
	"A + B * C",
	"( A + B ) * C",
	"A ^ B ^ C",
	"A - B - C",
	"( ( A ) )",
	"( A + B",
	"A + B )",
	") (",
	"3.14 * r ^ 2",
	"α * β + γ",
	"A+B*(C^D-E)^(F+G*H)-I",
	"x́ + \xff",
}

func addSeeds(f *testing.F) {
	for _, s := range expressionSeeds {
		f.Add(s)
	}
}
