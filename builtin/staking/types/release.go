// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import "fmt"

// Release is the storage layout version of the staking module.
type Release uint8

const (
	V1_0_0 Release = iota
	V2_0_0
	V3_0_0
	V4_0_0
	V5_0_0
	V6_0_0
	V7_0_0
	V7_5_0
	V8_0_0
)

// LatestRelease is the layout the current code reads and writes.
const LatestRelease = V8_0_0

var releaseNames = [...]string{"V1_0_0", "V2_0_0", "V3_0_0", "V4_0_0", "V5_0_0", "V6_0_0", "V7_0_0", "V7_5_0", "V8_0_0"}

func (r Release) String() string {
	if int(r) < len(releaseNames) {
		return releaseNames[r]
	}
	return fmt.Sprintf("Release(%d)", uint8(r))
}

// ParseRelease parses the name form, e.g. "V7_5_0".
func ParseRelease(s string) (Release, error) {
	for i, name := range releaseNames {
		if name == s {
			return Release(i), nil
		}
	}
	return 0, fmt.Errorf("unknown release %q", s)
}
