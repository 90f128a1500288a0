package codegen

import (
	"crypto/sha256"
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// canonicalFn is the placeholder-free form of a generated function used for
// deterministic hashing: names are kept but temp/label counters are not
// (they're already baked into Body as text, which is itself deterministic
// since Generate never reads a map in iteration order to produce them).
type canonicalFn struct {
	Name string
	Body string
}

// CanonicalModule is the two-pass canonicalization target for IR hashing,
// mirroring the "canonical form with placeholders, then hash the canonical
// form" split used elsewhere in this codebase's plan hashing.
type CanonicalModule struct {
	Version uint8
	Data    string
	Fns     []canonicalFn
}

// MarshalBinary produces deterministic CBOR for the canonical module. The
// alias trick avoids cbor recursing back into MarshalBinary.
func (cm *CanonicalModule) MarshalBinary() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("codegen: building cbor encoder: %w", err)
	}
	type canonicalModuleAlias CanonicalModule
	alias := (*canonicalModuleAlias)(cm)
	data, err := encMode.Marshal(alias)
	if err != nil {
		return nil, fmt.Errorf("codegen: cbor encoding module: %w", err)
	}
	return data, nil
}

// Hash returns the SHA-256 digest of the canonical module, used by `fern
// build --hash` to fingerprint generated IR for reproducibility checks
// without depending on the textual layout of the emitted file.
func (cm *CanonicalModule) Hash() ([32]byte, error) {
	data, err := cm.MarshalBinary()
	if err != nil {
		return [32]byte{}, err
	}
	return sha256.Sum256(data), nil
}

// Fingerprint canonicalizes and hashes a single generated SSA text blob,
// splitting it into the data section and one entry per `export function`.
func Fingerprint(irText string) (string, error) {
	fns, data := splitModule(irText)
	cm := &CanonicalModule{Version: 1, Data: data, Fns: fns}
	sum, err := cm.Hash()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", sum), nil
}

func splitModule(irText string) ([]canonicalFn, string) {
	var fns []canonicalFn
	var data []byte
	var cur *canonicalFn
	var body []byte
	lines := splitLines(irText)
	for _, line := range lines {
		if len(line) >= len("export function") && line[:len("export function")] == "export function" {
			if cur != nil {
				cur.Body = string(body)
				fns = append(fns, *cur)
			}
			name := functionName(line)
			cur = &canonicalFn{Name: name}
			body = nil
			continue
		}
		if cur != nil {
			body = append(body, line...)
			body = append(body, '\n')
			if len(line) == 1 && line[0] == '}' {
				cur.Body = string(body)
				fns = append(fns, *cur)
				cur = nil
				body = nil
			}
			continue
		}
		data = append(data, line...)
		data = append(data, '\n')
	}
	if cur != nil {
		cur.Body = string(body)
		fns = append(fns, *cur)
	}
	return fns, string(data)
}

func functionName(declLine string) string {
	idx := -1
	for i := 0; i < len(declLine); i++ {
		if declLine[i] == '$' {
			idx = i
			break
		}
	}
	if idx == -1 {
		return declLine
	}
	end := idx + 1
	for end < len(declLine) && declLine[end] != '(' {
		end++
	}
	return declLine[idx+1 : end]
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
