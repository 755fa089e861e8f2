package extract

import "strings"

const fence = "```"

// Block isolates the single structured-data candidate inside raw generator
// output. Text between the first pair of ``` fences wins, minus one optional
// leading type tag such as "json". Without a fence it falls back to the span
// from the first '{' to the last '}' of the whole text; that fallback is
// greedy and keeps any unrelated trailing text that sits before a later '}'.
func Block(raw string) (string, bool) {
	if start := strings.Index(raw, fence); start >= 0 {
		rest := raw[start+len(fence):]
		if end := strings.Index(rest, fence); end >= 0 {
			return stripTypeTag(strings.TrimSpace(rest[:end])), true
		}
	}

	open := strings.IndexByte(raw, '{')
	end := strings.LastIndexByte(raw, '}')
	if open < 0 || end <= open {
		return "", false
	}
	return strings.TrimSpace(raw[open : end+1]), true
}

// stripTypeTag drops a leading word like "json" or "JSON5" from a fenced block.
func stripTypeTag(block string) string {
	i := 0
	for i < len(block) && isTagByte(block[i]) {
		i++
	}
	if i == 0 {
		return block
	}
	if i < len(block) && !isSpace(block[i]) && block[i] != '{' && block[i] != '[' {
		return block
	}
	return strings.TrimSpace(block[i:])
}

func isTagByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c == '-' || c == '+'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
