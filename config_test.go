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

package inmemfs_test

import (
	"testing"

	"github.com/inmemfs/inmemfs"
	"github.com/stretchr/testify/require"
)

// A custom separator "\" is accepted; U+2603
// (a symbol-class code point) is rejected with InvalidConfiguration.
func TestConfigurationCustomSeparator(t *testing.T) {
	cfg := inmemfs.Configuration{
		Flavor:    inmemfs.CUSTOM,
		Separator: '\\',
		Roots:     []string{""},
	}

	require.NoError(t, cfg.Validate())

	cfg.Separator = '\u2603'
	require.ErrorIs(t, cfg.Validate(), inmemfs.InvalidConfiguration)
}

func TestConfigurationRejectsSurrogateSeparator(t *testing.T) {
	cfg := inmemfs.Configuration{Flavor: inmemfs.CUSTOM, Separator: 0xD800, Roots: []string{""}}
	require.ErrorIs(t, cfg.Validate(), inmemfs.InvalidConfiguration)
}

func TestConfigurationRejectsZeroRoots(t *testing.T) {
	cfg := inmemfs.Configuration{Flavor: inmemfs.POSIX, Separator: '/'}
	require.ErrorIs(t, cfg.Validate(), inmemfs.InvalidConfiguration)
}

func TestConfigurationWindowsAcceptsMultipleRoots(t *testing.T) {
	cfg := inmemfs.Configuration{
		Flavor:    inmemfs.WINDOWS,
		Separator: '\\',
		Roots:     []string{"C:\\", "D:\\"},
	}
	require.NoError(t, cfg.Validate())
}

func TestConfigurationPosixRejectsMultipleRoots(t *testing.T) {
	cfg := inmemfs.Configuration{
		Flavor:    inmemfs.POSIX,
		Separator: '/',
		Roots:     []string{"/", "/other"},
	}
	require.ErrorIs(t, cfg.Validate(), inmemfs.InvalidConfiguration)
}

func TestConfigurationRejectsUmaskOutsideNineBits(t *testing.T) {
	cfg := inmemfs.Configuration{
		Flavor:    inmemfs.POSIX,
		Separator: '/',
		Roots:     []string{"/"},
		Umask:     0o1000,
	}
	require.ErrorIs(t, cfg.Validate(), inmemfs.InvalidConfiguration)
}

func TestDefaultForbiddenCharsWindowsIncludesReservedSet(t *testing.T) {
	forbidden := inmemfs.DefaultForbiddenChars(inmemfs.WINDOWS)

	for _, r := range []rune{'\\', '/', ':', '?', '"', '<', '>', '|', 0} {
		_, ok := forbidden[r]
		require.True(t, ok, "expected %q to be forbidden", r)
	}
}
