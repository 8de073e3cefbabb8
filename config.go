//
//  Copyright 2026 The inmemfs authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//  	http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.
//

package inmemfs

import "unicode"

// Configuration is the fully-resolved configuration a Filesystem is
// built from. Parsing a raw environment/option map into this value is
// out of scope; callers build Configuration directly or through a
// resolved builder of their own.
type Configuration struct {
	Flavor           Flavor
	Separator        rune
	Roots            []string // display strings: ["/"], or ["C:\\", "D:\\", ...]
	CaseSensitivity  CaseSensitivity
	ForbiddenChars   map[rune]struct{}
	AdditionalViews  map[ViewName]struct{} // subset of {posix, dos, acl, user}
	Users            []string
	Groups           []string
	DefaultUser      string
	DefaultGroup     string
	Umask            uint16 // 9-bit permission mask
	DefaultDirectory string // absolute path used to resolve relative paths
}

// DefaultForbiddenChars returns the forbidden-character set for flavor.
// POSIX and CUSTOM forbid only the null byte (a separator never ends up
// inside a component, since paths are split on it); WINDOWS
// forbids the classic reserved set within components (':' and '\' are
// permitted only inside the root prefix, never inside a component).
func DefaultForbiddenChars(flavor Flavor) map[rune]struct{} {
	forbid := func(rs ...rune) map[rune]struct{} {
		m := make(map[rune]struct{}, len(rs))
		for _, r := range rs {
			m[r] = struct{}{}
		}

		return m
	}

	switch flavor {
	case WINDOWS:
		return forbid('\\', '/', ':', '?', '"', '<', '>', '|', 0)
	default:
		return forbid(0)
	}
}

// Validate checks the invariants a configuration must satisfy: a
// single-character separator that is not a surrogate half, combining
// mark, or symbol-class code point (e.g. U+2603), at least one root,
// and a recognized flavor/case-sensitivity pairing.
func (c Configuration) Validate() error {
	if !validSeparator(c.Separator) {
		return InvalidConfiguration
	}

	if len(c.Roots) == 0 {
		return InvalidConfiguration
	}

	if c.Flavor != WINDOWS && len(c.Roots) != 1 {
		return InvalidConfiguration
	}

	switch c.Flavor {
	case POSIX, WINDOWS, CUSTOM:
	default:
		return InvalidConfiguration
	}

	switch c.CaseSensitivity {
	case Sensitive, InsensitiveASCII, InsensitiveUnicode:
	default:
		return InvalidConfiguration
	}

	if c.Umask&^0o777 != 0 {
		return InvalidConfiguration
	}

	return nil
}

func validSeparator(r rune) bool {
	if r == 0 {
		return false
	}

	if r >= 0xD800 && r <= 0xDFFF {
		return false
	}

	if unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Me, r) {
		return false
	}

	if unicode.IsSymbol(r) {
		return false
	}

	if unicode.IsSpace(r) {
		return false
	}

	return true
}
