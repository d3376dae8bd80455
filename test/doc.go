// This file is part of Regmap.
//
// Regmap is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Regmap is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Regmap.  If not, see <https://www.gnu.org/licenses/>.

// Package test bundles helper functions that remove common boilerplate from
// test functions. They are intended to be used in conjunction with the
// standard go test harness.
//
// The Expect functions report a failure with t.Errorf() and allow the test to
// continue. The Demand functions report a failure with t.Fatalf() and should
// be used when the rest of the test depends on the outcome, for example when
// checking the length of a slice before indexing it.
//
// ExpectSuccess() and ExpectFailure() test for success and failure under
// generic conditions. The documentation for those functions describe the
// currently supported types.
//
// It is worth describing how the nil value is handled because it is not
// obvious. The nil type is considered a success and consequently will cause
// ExpectFailure to fail and ExpectSuccess to succeed. This is because of how
// errors usually work (nil to indicate no error).
//
// All Expect and Demand functions accept optional tags. The tags are printed
// as a prefix to the failure message and help identify which of several
// similar tests has failed:
//
//	for i, c := range cases {
//		test.ExpectEquality(t, c.got, c.want, i)
//	}
//
// The Writer type implements the io.Writer interface and should be used to
// capture output. The Writer.Compare() function can then be used to test for
// equality.
package test
