// This file is part of Gophernes.
//
// Gophernes is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gophernes is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gophernes.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"go/format"
	"io"
	"os"
	"strconv"
	"strings"
)

const definitionsCSVFile = "generator/instructions.csv"
const generatedGoFile = "definitions.go"

const leadingBoilerPlate = `
// Code generated by instructions/generator from instructions.csv. DO NOT EDIT.

package instructions

// Definitions is the opcode table for the 2A03. The table is indexed by opcode.
var Definitions = [256]Definition{
`

func operatorName(mnemonic string) string {
	return mnemonic[:1] + strings.ToLower(mnemonic[1:])
}

func generate(r io.Reader) ([]byte, error) {
	rdr := csv.NewReader(r)
	rdr.Comment = '#'
	rdr.FieldsPerRecord = 9

	b := &bytes.Buffer{}

	// the license header of this file is reused for the generated file
	hdr, err := os.ReadFile("generator/generator.go")
	if err != nil {
		return nil, err
	}
	hdr, _, _ = bytes.Cut(hdr, []byte("\npackage main"))
	b.Write(hdr)
	b.WriteString(leadingBoilerPlate)

	for expectedOpcode := 0; ; expectedOpcode++ {
		rec, err := rdr.Read()
		if err == io.EOF {
			if expectedOpcode != 256 {
				return nil, fmt.Errorf("generator: only %d opcodes defined", expectedOpcode)
			}
			break
		}
		if err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}

		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}

		opcode, err := strconv.ParseUint(rec[0], 0, 8)
		if err != nil {
			return nil, fmt.Errorf("generator: %w", err)
		}
		if int(opcode) != expectedOpcode {
			return nil, fmt.Errorf("generator: opcode %#02x out of sequence", opcode)
		}

		fmt.Fprintf(b, "\t{OpCode: %#02x, Operator: %s, Bytes: %s, Cycles: %s, AddressingMode: %s, PageSensitive: %s, Effect: %s, Undocumented: %s, Unstable: %s},\n",
			opcode, operatorName(rec[1]), rec[3], rec[4], rec[2], rec[5], rec[6], rec[7], rec[8])
	}

	b.WriteString("}\n")

	return format.Source(b.Bytes())
}

func main() {
	f, err := os.Open(definitionsCSVFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(10)
	}
	defer f.Close()

	out, err := generate(f)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(10)
	}

	if err := os.WriteFile(generatedGoFile, out, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(10)
	}
}
