// Package link turns a single share link into a canonical proxy
// configuration record, or rejects it with a typed, scheme-aware failure.
//
// The six decoders are independent pure functions selected by a scheme
// lookup table; there is no shared state and no decoder ever returns a
// partially-populated record on failure.
package link

import (
	"strings"

	"github.com/John-Robertt/linknorm-go/internal/model"
	"github.com/John-Robertt/linknorm-go/internal/schema"
)

type decodeFunc func(line string) (model.Config, error)

// decoders maps a lowercased scheme to its decoder. hy2 is an alias that the
// hysteria decoder normalizes to the canonical hysteria2 tag.
var decoders = map[string]decodeFunc{
	"ss":        decodeSS,
	"vmess":     decodeVMess,
	"vless":     decodeVLESS,
	"trojan":    decodeTrojan,
	"hysteria":  decodeHysteria,
	"hysteria2": decodeHysteria,
	"hy2":       decodeHysteria,
	"tuic":      decodeTUIC,
}

// Decode reduces raw to its first non-blank line, dispatches on the scheme
// prefix (case-insensitive) and returns the canonical record.
//
// Only line one of a multi-line paste is interpreted. That is a deliberate
// leniency for callers pasting whole subscription dumps and is part of this
// function's contract.
func Decode(raw string) (model.Config, error) {
	line := firstNonBlankLine(raw)
	if line == "" {
		return model.Config{}, newParseError("", CodeEmptyInput, "输入为空", "", "", nil)
	}

	schemePart, _, ok := strings.Cut(line, "://")
	if !ok {
		return model.Config{}, newParseError("", CodeUnsupportedScheme,
			"无法识别的链接格式", line, "expected: <scheme>://...", nil)
	}
	scheme := strings.ToLower(strings.TrimSpace(schemePart))

	fn, ok := decoders[scheme]
	if !ok {
		return model.Config{}, newParseError(scheme, CodeUnsupportedScheme,
			"不支持的链接协议："+scheme, line,
			"supported: ss vmess vless trojan hysteria hysteria2 hy2 tuic", nil)
	}

	cfg, err := fn(line)
	if err != nil {
		return model.Config{}, err
	}

	// Enforce the cross-contamination invariant even if a decoder slips.
	schema.Prune(&cfg)
	return cfg, nil
}

func firstNonBlankLine(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			return line
		}
	}
	return ""
}
