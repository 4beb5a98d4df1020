/*
 * logger_test.go, part of goProcar.
 *
 * Copyright 2024 The goProcar authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package logging

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestWithComponentJSON(Te *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "debug", Format: "json", Output: &buf})
	defer Configure(Config{})
	l := WithComponent("vasp")
	l.Warn().Str("file", "OUTCAR").Msg("missing")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		Te.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["component"] != "vasp" || entry["level"] != "warn" || entry["file"] != "OUTCAR" {
		Te.Errorf("unexpected log entry: %v", entry)
	}
}

func TestLevelFilter(Te *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: "error", Format: "json", Output: &buf})
	defer Configure(Config{})
	l := Base()
	l.Info().Msg("hidden")
	if buf.Len() != 0 {
		Te.Errorf("info message should have been filtered: %q", buf.String())
	}
}
