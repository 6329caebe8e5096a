package interp

import "regexp"

// Builtin returns the default interpreter registry. Prompt patterns match the
// prompt each REPL prints when attached to a terminal; aliases cover common
// filetype and extension spellings.
func Builtin() *Registry {
	descriptors := []*Descriptor{
		{
			Name:   "python",
			Bin:    "python3",
			Prompt: regexp.MustCompile(`^(>>>|\.\.\.) `),
		},
		{
			Name:   "javascript",
			Bin:    "node",
			Prompt: regexp.MustCompile(`^(>|\.{3,}) `),
			Env:    map[string]string{"NODE_DISABLE_COLORS": "1"},
		},
		{
			Name:   "typescript",
			Bin:    "ts-node",
			Prompt: regexp.MustCompile(`^> `),
		},
		{
			Name:   "ruby",
			Bin:    "irb",
			Prompt: regexp.MustCompile(`^irb\(\w+\):\d+:\d+[>*"'] `),
		},
		{
			Name:   "haskell",
			Bin:    "ghci",
			Prompt: regexp.MustCompile(`^\w+(\.\w+)*> `),
		},
		{
			Name:   "lua",
			Bin:    "lua",
			Prompt: regexp.MustCompile(`^>>? `),
		},
		{
			Name:   "r",
			Bin:    "R",
			Args:   []string{"--quiet", "--no-save"},
			Prompt: regexp.MustCompile(`^> `),
		},
		{
			Name:   "ocaml",
			Bin:    "ocaml",
			Prompt: regexp.MustCompile(`^# `),
		},
		{
			Name:   "julia",
			Bin:    "julia",
			Prompt: regexp.MustCompile(`^julia> `),
		},
		{
			Name:   "elixir",
			Bin:    "iex",
			Prompt: regexp.MustCompile(`^iex\(\d+\)> `),
		},
		{
			Name:   "clojure",
			Bin:    "planck",
			Prompt: regexp.MustCompile(`^[\w.-]*=> `),
		},
		{
			Name:   "php",
			Bin:    "psysh",
			Prompt: regexp.MustCompile(`^>>> `),
		},
		{
			Name:   "cpp",
			Bin:    "cling",
			Prompt: regexp.MustCompile(`^\[cling\][$!?] `),
		},
		{
			// Line-based calculator; it prints no prompt at all, so the
			// empty line after each value is the marker.
			Name:   "bc",
			Bin:    "bc",
			Prompt: regexp.MustCompile(`^$`),
		},
	}

	aliases := map[string]string{
		"py":      "python",
		"python3": "python",
		"js":      "javascript",
		"node":    "javascript",
		"ts":      "typescript",
		"rb":      "ruby",
		"irb":     "ruby",
		"hs":      "haskell",
		"ghc":     "haskell",
		"ghci":    "haskell",
		"ex":      "elixir",
		"exs":     "elixir",
		"iex":     "elixir",
		"ml":      "ocaml",
		"jl":      "julia",
		"clj":     "clojure",
		"cljs":    "clojure",
		"cc":      "cpp",
		"cxx":     "cpp",
	}

	return NewRegistry(descriptors, aliases)
}
