package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Tokens bool
	Parse  bool
	Match  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Tokens = boolEnv("KDL_DEBUG_TOKENS")
	d.Parse = boolEnv("KDL_DEBUG_PARSE")
	d.Match = boolEnv("KDL_DEBUG_MATCH")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Tokens() bool {
	return d.Tokens
}
func Parse() bool {
	return d.Parse
}
func Match() bool {
	return d.Match
}
